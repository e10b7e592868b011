package assistant

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Run statuses as reported by the assistants API.
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusCancelling = "cancelling"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
	StatusExpired    = "expired"
)

// Message is one entry in a conversation thread. CreatedAt is the
// service-assigned unix timestamp; the transcript sort relies on it.
type Message struct {
	Role      string
	Text      string
	CreatedAt int64
}

// Client wraps the Azure OpenAI assistants API for a fixed assistant
// identity. The thread/run lifecycle is owned by the remote service; the
// client only carries identifiers.
type Client struct {
	api         *openai.Client
	assistantID string
}

func NewClient(apiKey, endpoint, apiVersion, assistantID string) *Client {
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	cfg.APIVersion = apiVersion
	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		assistantID: assistantID,
	}
}

func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return thread.ID, nil
}

func (c *Client) AddMessage(ctx context.Context, threadID, text string) error {
	_, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (c *Client) StartRun(ctx context.Context, threadID string) (string, error) {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: c.assistantID,
	})
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return run.ID, nil
}

func (c *Client) RunState(ctx context.Context, threadID, runID string) (string, error) {
	run, err := c.api.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return "", fmt.Errorf("retrieve run: %w", err)
	}
	return string(run.Status), nil
}

// Messages returns the full thread contents. Text content parts are joined;
// non-text parts are ignored.
func (c *Client) Messages(ctx context.Context, threadID string) ([]Message, error) {
	list, err := c.api.ListMessage(ctx, threadID, nil, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	msgs := make([]Message, 0, len(list.Messages))
	for _, m := range list.Messages {
		var parts []string
		for _, content := range m.Content {
			if content.Text != nil {
				parts = append(parts, content.Text.Value)
			}
		}
		msgs = append(msgs, Message{
			Role:      m.Role,
			Text:      strings.Join(parts, "\n"),
			CreatedAt: int64(m.CreatedAt),
		})
	}
	return msgs, nil
}
