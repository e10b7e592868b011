//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_JobLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	id := uuid.New()

	if err := s.CreateJob(ctx, id, "folder-attachments", "folder-response"); err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}

	job, err := s.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if job.Status != StatusQueued {
		t.Errorf("status = %q, want queued", job.Status)
	}

	if err := s.MarkRunning(ctx, id); err != nil {
		t.Fatalf("MarkRunning failed: %v", err)
	}
	job, _ = s.GetJob(ctx, id)
	if job.Status != StatusRunning {
		t.Errorf("status = %q, want running", job.Status)
	}

	artifacts := []string{"chat_history.docx", "draft_response.docx"}
	if err := s.MarkCompleted(ctx, id, 7, 6, 1, artifacts); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	job, _ = s.GetJob(ctx, id)
	if job.Status != StatusCompleted {
		t.Errorf("status = %q, want completed", job.Status)
	}
	if job.TotalPrompts != 7 || job.CompletedPrompts != 6 || job.SkippedPrompts != 1 {
		t.Errorf("prompt counts = %d/%d/%d", job.TotalPrompts, job.CompletedPrompts, job.SkippedPrompts)
	}
	if len(job.Artifacts) != 2 {
		t.Errorf("artifacts = %v", job.Artifacts)
	}
}

func TestIntegration_MarkFailed(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	id := uuid.New()

	if err := s.CreateJob(ctx, id, "a", "b"); err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	if err := s.MarkFailed(ctx, id, "thread creation failed"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	job, err := s.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if job.Status != StatusFailed {
		t.Errorf("status = %q, want failed", job.Status)
	}
	if job.Error != "thread creation failed" {
		t.Errorf("error = %q", job.Error)
	}
}

func TestIntegration_GetJob_NotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetJob(context.Background(), uuid.New()); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
