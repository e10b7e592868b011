// Package store keeps a durable record per proposal job so the trigger's
// immediate 202 can be followed up with a queryable status and result.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Job statuses.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrNotFound is returned when no job exists for an id.
var ErrNotFound = errors.New("job not found")

// Job is the durable record of one proposal request.
type Job struct {
	ID                  uuid.UUID
	AttachmentsFolderID string
	ResponseFolderID    string
	Status              string
	Error               string
	TotalPrompts        int
	CompletedPrompts    int
	SkippedPrompts      int
	Artifacts           []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Migrate creates the jobs table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS proposal_jobs (
			id UUID PRIMARY KEY,
			attachments_folder_id TEXT NOT NULL,
			response_folder_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'queued',
			error TEXT NOT NULL DEFAULT '',
			total_prompts INT NOT NULL DEFAULT 0,
			completed_prompts INT NOT NULL DEFAULT 0,
			skipped_prompts INT NOT NULL DEFAULT 0,
			artifacts TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create proposal_jobs table: %w", err)
	}
	return nil
}

func (s *Store) CreateJob(ctx context.Context, id uuid.UUID, attachmentsFolderID, responseFolderID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO proposal_jobs (id, attachments_folder_id, response_folder_id, status)
		VALUES ($1, $2, $3, $4)`,
		id, attachmentsFolderID, responseFolderID, StatusQueued)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *Store) MarkRunning(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, StatusRunning, "")
}

func (s *Store) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	return s.setStatus(ctx, id, StatusFailed, errMsg)
}

func (s *Store) MarkCompleted(ctx context.Context, id uuid.UUID, total, completed, skipped int, artifacts []string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE proposal_jobs
		SET status = $2, total_prompts = $3, completed_prompts = $4,
		    skipped_prompts = $5, artifacts = $6, updated_at = now()
		WHERE id = $1`,
		id, StatusCompleted, total, completed, skipped, artifacts)
	if err != nil {
		return fmt.Errorf("mark job completed: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var job Job
	err := s.pool.QueryRow(ctx, `
		SELECT id, attachments_folder_id, response_folder_id, status, error,
		       total_prompts, completed_prompts, skipped_prompts, artifacts,
		       created_at, updated_at
		FROM proposal_jobs WHERE id = $1`, id).Scan(
		&job.ID, &job.AttachmentsFolderID, &job.ResponseFolderID, &job.Status,
		&job.Error, &job.TotalPrompts, &job.CompletedPrompts, &job.SkippedPrompts,
		&job.Artifacts, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

func (s *Store) setStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE proposal_jobs SET status = $2, error = $3, updated_at = now()
		WHERE id = $1`, id, status, errMsg)
	if err != nil {
		return fmt.Errorf("set job status %s: %w", status, err)
	}
	return nil
}
