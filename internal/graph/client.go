// Package graph talks to a Microsoft Graph document drive: listing a
// folder's children, downloading items, and uploading result files.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// DriveItem is a file or folder inside a drive folder.
type DriveItem struct {
	ID       string
	Name     string
	IsFolder bool
}

type Client struct {
	driveID string
	client  *http.Client
	baseURL string
}

// NewClient builds a drive client authenticated via the client-credential
// flow. The underlying token source refreshes tokens transparently.
func NewClient(ctx context.Context, clientID, clientSecret, tenantID, driveID string) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", tenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}
	httpClient := cc.Client(ctx)
	httpClient.Timeout = 60 * time.Second

	return &Client{
		driveID: driveID,
		client:  httpClient,
		baseURL: defaultBaseURL,
	}
}

// ListChildren returns the items directly inside a drive folder.
func (c *Client) ListChildren(ctx context.Context, folderID string) ([]DriveItem, error) {
	endpoint := fmt.Sprintf("%s/drives/%s/items/%s/children", c.baseURL, c.driveID, folderID)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("list children of %s: %w", folderID, err)
	}

	var listing struct {
		Value []struct {
			ID     string           `json:"id"`
			Name   string           `json:"name"`
			Folder *json.RawMessage `json:"folder"`
		} `json:"value"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("parse children listing: %w", err)
	}

	items := make([]DriveItem, 0, len(listing.Value))
	for _, v := range listing.Value {
		items = append(items, DriveItem{
			ID:       v.ID,
			Name:     v.Name,
			IsFolder: v.Folder != nil,
		})
	}
	return items, nil
}

// Download fetches the raw content of a drive item.
func (c *Client) Download(ctx context.Context, itemID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/drives/%s/items/%s/content", c.baseURL, c.driveID, itemID)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("download item %s: %w", itemID, err)
	}
	return body, nil
}

// Upload writes a file into a drive folder by name, replacing any existing
// file with that name.
func (c *Client) Upload(ctx context.Context, folderID, name string, data []byte) error {
	endpoint := fmt.Sprintf("%s/drives/%s/items/%s:/%s:/content",
		c.baseURL, c.driveID, folderID, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload %s: status %d: %s", name, resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
