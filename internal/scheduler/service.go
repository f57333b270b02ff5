package scheduler

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/redditlens/persona-bot/internal/config"
)

// Service prunes expired persona reports from the local output directory on
// a fixed schedule. Only the local backend has an on-disk directory to
// prune; the Azure backend relies on container lifecycle policies instead.
type Service struct {
	config *config.Config
	cron   *cron.Cron
}

// NewService creates a new cleanup scheduler
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled report cleanup
func (s *Service) Start() error {
	if s.config.StorageBackend != "local" {
		logrus.Info("Report cleanup disabled for non-local storage backend")
		return nil
	}

	// Run daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 0 3 * * *", func() {
		if err := s.cleanupReports(); err != nil {
			logrus.Errorf("Report cleanup failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Report cleanup scheduled daily, retention %d days", s.config.ReportRetentionDays)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}

func (s *Service) cleanupReports() error {
	cutoff := time.Now().AddDate(0, 0, -s.config.ReportRetentionDays)
	removed := 0

	entries, err := os.ReadDir(s.config.OutputDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logrus.Errorf("Failed to stat %s: %v", entry.Name(), err)
			continue
		}

		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.config.OutputDir, entry.Name())
			if err := os.Remove(path); err != nil {
				logrus.Errorf("Failed to remove expired report %s: %v", path, err)
				continue
			}
			removed++
		}
	}

	logrus.Infof("Report cleanup removed %d expired reports", removed)
	return nil
}
