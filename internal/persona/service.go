package persona

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/redditlens/persona-bot/internal/analysis"
	"github.com/redditlens/persona-bot/internal/config"
	"github.com/redditlens/persona-bot/internal/models"
	"github.com/redditlens/persona-bot/internal/notifications"
	"github.com/redditlens/persona-bot/internal/storage"
)

// ErrWriteFailure is returned when a rendered report cannot be persisted.
var ErrWriteFailure = errors.New("failed to persist persona report")

const topLimit = 5

// Fetcher is the upstream boundary that loads a user's public history.
type Fetcher interface {
	FetchUserData(ctx context.Context, username string, limit int) (*models.UserProfile, error)
}

// Service runs the persona-derivation pipeline: URL to username, fetch,
// scoring, report rendering, persistence and optional notification. One
// Analyze call owns all of its derived state, so concurrent calls need no
// coordination beyond the metrics lock.
type Service struct {
	config    *config.Config
	fetcher   Fetcher
	storage   storage.StorageInterface
	notifier  notifications.NotificationInterface
	scorer    analysis.SentimentScorer
	tokenizer analysis.Tokenizer
	metrics   *Metrics
	mu        sync.RWMutex
}

// Metrics holds analysis run metrics
type Metrics struct {
	TotalAnalyses   int       `json:"total_analyses"`
	Failures        int       `json:"failures"`
	LastRun         time.Time `json:"last_run"`
	LastRunDuration string    `json:"last_run_duration"`
	LastUsername    string    `json:"last_username"`
}

// NewService creates a new persona service. notifier may be nil when no
// notification channel is configured.
func NewService(cfg *config.Config, fetcher Fetcher, store storage.StorageInterface, notifier notifications.NotificationInterface) *Service {
	return &Service{
		config:    cfg,
		fetcher:   fetcher,
		storage:   store,
		notifier:  notifier,
		scorer:    analysis.NewVaderScorer(),
		tokenizer: analysis.NewStopwordTokenizer(),
		metrics:   &Metrics{},
	}
}

// Analyze runs the full pipeline for one profile URL. On success it returns
// the stored report filename and the rendered report bytes. Any stage
// failure aborts the invocation; no partial report is ever written.
func (s *Service) Analyze(ctx context.Context, profileURL string) (string, []byte, error) {
	start := time.Now()

	username, err := analysis.ExtractUsername(profileURL)
	if err != nil {
		s.recordFailure()
		return "", nil, err
	}

	logrus.Infof("Analyzing profile of u/%s", username)

	profile, err := s.fetcher.FetchUserData(ctx, username, s.config.FetchLimit)
	if err != nil {
		s.recordFailure()
		return "", nil, fmt.Errorf("fetching user data for %s: %w", username, err)
	}

	report := s.BuildReport(profile)
	rendered := Render(report)

	filename := fmt.Sprintf("%s_persona.txt", username)
	if err := s.storage.Store(filename, rendered); err != nil {
		s.recordFailure()
		return "", nil, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendReport(username, filename, rendered); err != nil {
			// The report is already persisted; a notification failure
			// must not fail the invocation.
			logrus.Errorf("Failed to send report notification for u/%s: %v", username, err)
		}
	}

	s.recordSuccess(username, time.Since(start))
	logrus.Infof("Persona analysis for u/%s completed in %v", username, time.Since(start))
	return filename, rendered, nil
}

// BuildReport derives the persona for one fetched profile. It is pure apart
// from reading the clock for the completion timestamp.
func (s *Service) BuildReport(profile *models.UserProfile) *models.PersonaReport {
	fragments := analysis.Fragments(profile.Posts, profile.Comments)
	sentiment := analysis.AggregateSentiment(s.scorer, fragments)

	interests := analysis.ClassifyInterests(s.tokenizer, strings.Join(fragments, " "))
	topInterests := interests
	if len(topInterests) > topLimit {
		topInterests = topInterests[:topLimit]
	}

	return &models.PersonaReport{
		Username:        profile.Username,
		AccountCreated:  profile.AccountCreated,
		PostKarma:       profile.PostKarma,
		CommentKarma:    profile.CommentKarma,
		TotalPosts:      len(profile.Posts),
		TotalComments:   len(profile.Comments),
		AvgPostScore:    averagePostScore(profile.Posts),
		AvgCommentScore: averageCommentScore(profile.Comments),
		Sentiment:       sentiment,
		TopInterests:    topInterests,
		TopSubreddits:   topSubreddits(profile, topLimit),
		Insights:        analysis.Insights(len(profile.Posts), len(profile.Comments), sentiment, topInterests),
		Citations:       analysis.SelectCitations(profile.Posts, profile.Comments, topLimit),
		GeneratedAt:     time.Now(),
	}
}

func averagePostScore(posts []models.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	total := 0
	for _, post := range posts {
		total += post.Score
	}
	return float64(total) / float64(len(posts))
}

func averageCommentScore(comments []models.Comment) float64 {
	if len(comments) == 0 {
		return 0
	}
	total := 0
	for _, comment := range comments {
		total += comment.Score
	}
	return float64(total) / float64(len(comments))
}

// topSubreddits counts activity per subreddit across posts and comments.
// Counts accumulate in first-appearance order so ties stay deterministic.
func topSubreddits(profile *models.UserProfile, n int) []models.SubredditActivity {
	counts := make(map[string]int)
	var order []string

	record := func(name string) {
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	for _, post := range profile.Posts {
		record(post.Subreddit)
	}
	for _, comment := range profile.Comments {
		record(comment.Subreddit)
	}

	activity := make([]models.SubredditActivity, 0, len(order))
	for _, name := range order {
		activity = append(activity, models.SubredditActivity{Name: name, Count: counts[name]})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Count > activity[j].Count
	})

	if len(activity) > n {
		activity = activity[:n]
	}

	return activity
}

func (s *Service) recordSuccess(username string, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalAnalyses++
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.LastUsername = username
}

func (s *Service) recordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Failures++
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.metrics, "", "  ")
	if err != nil {
		logrus.Errorf("Failed to marshal metrics: %v", err)
		return "{}"
	}
	return string(data)
}
