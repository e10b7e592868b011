package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port      int
	NatsURL   string
	NatsToken string
	LogLevel  string

	DatabaseURL string

	OpenAIAPIKey   string
	OpenAIEndpoint string
	APIVersion     string
	AssistantID    string

	GraphClientID     string
	GraphClientSecret string
	GraphTenantID     string
	GraphDriveID      string

	BlobAccountName   string
	BlobContainerName string

	ChunkSize      int
	RunPollTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:      envInt("TENDER_PORT", 8760),
		NatsURL:   envStr("NATS_URL", "nats://hermes:4222"),
		NatsToken: envStr("NATS_TOKEN", ""),
		LogLevel:  envStr("LOG_LEVEL", "info"),

		DatabaseURL: envStr("DATABASE_URL", ""),

		OpenAIAPIKey:   envStr("AZURE_OPENAI_API_KEY", ""),
		OpenAIEndpoint: envStr("AZURE_OPENAI_ENDPOINT", ""),
		APIVersion:     envStr("OPENAI_API_VERSION", "2024-02-15-preview"),
		AssistantID:    envStr("ASSISTANT_ID", ""),

		GraphClientID:     envStr("MS_GRAPH_CLIENT_ID", ""),
		GraphClientSecret: envStr("MS_GRAPH_CLIENT_SECRET", ""),
		GraphTenantID:     envStr("MS_GRAPH_TENANT_ID", ""),
		GraphDriveID:      envStr("MS_GRAPH_DRIVE_ID", ""),

		BlobAccountName:   envStr("BLOB_ACCOUNT_NAME", ""),
		BlobContainerName: envStr("BLOB_CONTAINER_NAME", ""),

		ChunkSize:      envInt("CHUNK_SIZE", 100000),
		RunPollTimeout: envDuration("RUN_POLL_TIMEOUT", 15*time.Minute),
	}
}

// Validate reports every missing required setting at once so a bad deploy
// fails with one actionable error instead of a fix-one-redeploy loop.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", c.DatabaseURL},
		{"AZURE_OPENAI_API_KEY", c.OpenAIAPIKey},
		{"AZURE_OPENAI_ENDPOINT", c.OpenAIEndpoint},
		{"ASSISTANT_ID", c.AssistantID},
		{"MS_GRAPH_CLIENT_ID", c.GraphClientID},
		{"MS_GRAPH_CLIENT_SECRET", c.GraphClientSecret},
		{"MS_GRAPH_TENANT_ID", c.GraphTenantID},
		{"MS_GRAPH_DRIVE_ID", c.GraphDriveID},
		{"BLOB_ACCOUNT_NAME", c.BlobAccountName},
		{"BLOB_CONTAINER_NAME", c.BlobContainerName},
	}
	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
