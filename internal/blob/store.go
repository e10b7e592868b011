// Package blob archives raw attachment bytes in Azure Blob Storage,
// namespaced by the attachments folder id as a path prefix.
package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

type Store struct {
	client    *azblob.Client
	container string
}

func NewStore(accountName, container string) (*Store, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("acquire azure credential: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	return &Store{client: client, container: container}, nil
}

// Upload writes a blob under folderID/name, replacing any existing blob.
func (s *Store) Upload(ctx context.Context, folderID, name string, data []byte) error {
	key := folderID + "/" + name
	if _, err := s.client.UploadBuffer(ctx, s.container, key, data, nil); err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}
	return nil
}

// List returns the keys of every blob under the folder prefix.
func (s *Store) List(ctx context.Context, folderID string) ([]string, error) {
	prefix := folderID + "/"
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})

	var keys []string
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blobs under %s: %w", prefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				keys = append(keys, *item.Name)
			}
		}
	}
	return keys, nil
}

// Download fetches a blob's full contents by key.
func (s *Store) Download(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}
