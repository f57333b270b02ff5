package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/sirupsen/logrus"
)

// AzureStorage keeps persona reports in an Azure Blob Storage container.
// Useful when several instances of the bot should share one report archive.
type AzureStorage struct {
	client        *azblob.Client
	containerName string
}

// Ensure AzureStorage implements StorageInterface
var _ StorageInterface = (*AzureStorage)(nil)

// NewAzureStorage creates an Azure blob backend using managed identity
func NewAzureStorage(accountName, containerName string) (*AzureStorage, error) {
	if accountName == "" {
		return nil, fmt.Errorf("storage account name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClient(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	storage := &AzureStorage{
		client:        client,
		containerName: containerName,
	}

	if err := storage.ensureContainer(); err != nil {
		return nil, fmt.Errorf("failed to ensure container exists: %w", err)
	}

	return storage, nil
}

func (s *AzureStorage) ensureContainer() error {
	_, err := s.client.CreateContainer(context.Background(), s.containerName, nil)
	if err != nil {
		if !strings.Contains(err.Error(), "ContainerAlreadyExists") {
			return fmt.Errorf("failed to create container: %w", err)
		}
		logrus.Debugf("Container %s already exists", s.containerName)
	} else {
		logrus.Infof("Created container %s", s.containerName)
	}

	return nil
}

// Store uploads a rendered report
func (s *AzureStorage) Store(filename string, data []byte) error {
	_, err := s.client.UploadBuffer(context.Background(), s.containerName, filename, data, nil)
	if err != nil {
		return fmt.Errorf("failed to upload report %s: %w", filename, err)
	}

	logrus.Infof("Stored report %s in container %s", filename, s.containerName)
	return nil
}

// Retrieve downloads a stored report
func (s *AzureStorage) Retrieve(filename string) ([]byte, error) {
	response, err := s.client.DownloadStream(context.Background(), s.containerName, filename, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download report %s: %w", filename, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report content: %w", err)
	}

	return data, nil
}

// List returns the names of stored reports matching prefix
func (s *AzureStorage) List(prefix string) ([]string, error) {
	var names []string
	pager := s.client.NewListBlobsFlatPager(s.containerName, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})

	for pager.More() {
		page, err := pager.NextPage(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}

		for _, blob := range page.Segment.BlobItems {
			if blob.Name != nil {
				names = append(names, *blob.Name)
			}
		}
	}

	return names, nil
}

// Delete removes a stored report
func (s *AzureStorage) Delete(filename string) error {
	_, err := s.client.DeleteBlob(context.Background(), s.containerName, filename, nil)
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", filename, err)
	}

	logrus.Infof("Deleted report %s from container %s", filename, s.containerName)
	return nil
}
