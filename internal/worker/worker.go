// Package worker runs the proposal pipeline for one job event: gather
// attachments from the drive, archive them, extract and chunk their text,
// drive the assistant conversation, and upload the result documents.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/tender/internal/bus"
	"github.com/MikeSquared-Agency/tender/internal/chunk"
	"github.com/MikeSquared-Agency/tender/internal/extract"
	"github.com/MikeSquared-Agency/tender/internal/graph"
	"github.com/MikeSquared-Agency/tender/internal/orchestrator"
	"github.com/MikeSquared-Agency/tender/internal/report"
)

// Drive is the document-share bridge (implemented by graph.Client).
type Drive interface {
	ListChildren(ctx context.Context, folderID string) ([]graph.DriveItem, error)
	Download(ctx context.Context, itemID string) ([]byte, error)
	Upload(ctx context.Context, folderID, name string, data []byte) error
}

// Archive is the raw-bytes blob store (implemented by blob.Store).
type Archive interface {
	Upload(ctx context.Context, folderID, name string, data []byte) error
	List(ctx context.Context, folderID string) ([]string, error)
	Download(ctx context.Context, key string) ([]byte, error)
}

// JobLedger records job progress (implemented by store.Store).
type JobLedger interface {
	MarkRunning(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, total, completed, skipped int, artifacts []string) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}

// Conversation drives the prompt batch (implemented by orchestrator.Orchestrator).
type Conversation interface {
	Run(ctx context.Context, prompts []string) (*orchestrator.Result, error)
}

// Publisher emits lifecycle events (implemented by bus.Client).
type Publisher interface {
	Publish(subject string, data any) error
}

type Worker struct {
	drive     Drive
	archive   Archive
	jobs      JobLedger
	conv      Conversation
	pub       Publisher
	chunkSize int
	logger    *slog.Logger
}

func New(drive Drive, archive Archive, jobs JobLedger, conv Conversation, pub Publisher, chunkSize int, logger *slog.Logger) *Worker {
	return &Worker{
		drive:     drive,
		archive:   archive,
		jobs:      jobs,
		conv:      conv,
		pub:       pub,
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// HandleProposalRequested is the bus handler for tender.proposal.requested.
// The job runs to completion here; its outcome lands in the job ledger and
// on the bus.
func (w *Worker) HandleProposalRequested(subject string, data []byte) {
	ctx := context.Background()

	var evt bus.ProposalRequest
	if err := json.Unmarshal(data, &evt); err != nil {
		w.logger.Error("failed to parse proposal request", "error", err)
		return
	}

	jobID, err := uuid.Parse(evt.JobID)
	if err != nil {
		w.logger.Error("invalid job id", "job_id", evt.JobID, "error", err)
		return
	}

	logger := w.logger.With("job_id", evt.JobID)
	logger.Info("processing proposal request",
		"attachments_folder_id", evt.AttachmentsFolderID,
		"response_folder_id", evt.ResponseFolderID,
	)

	if err := w.jobs.MarkRunning(ctx, jobID); err != nil {
		logger.Error("failed to mark job running", "error", err)
	}

	result, err := w.process(ctx, logger, evt)
	if err != nil {
		logger.Error("proposal processing failed", "error", err)
		if merr := w.jobs.MarkFailed(ctx, jobID, err.Error()); merr != nil {
			logger.Error("failed to mark job failed", "error", merr)
		}
		if perr := w.pub.Publish(bus.SubjectProposalFailed, map[string]any{
			"job_id": evt.JobID,
			"error":  err.Error(),
		}); perr != nil {
			logger.Error("failed to publish failure event", "error", perr)
		}
		return
	}

	artifacts := []string{report.TranscriptName, report.DraftName}
	if err := w.jobs.MarkCompleted(ctx, jobID, result.Total, result.Completed, result.Skipped, artifacts); err != nil {
		logger.Error("failed to mark job completed", "error", err)
	}
	if err := w.pub.Publish(bus.SubjectProposalCompleted, map[string]any{
		"job_id":            evt.JobID,
		"thread_id":         result.ThreadID,
		"prompts_total":     result.Total,
		"prompts_completed": result.Completed,
		"prompts_skipped":   result.Skipped,
		"artifacts":         artifacts,
	}); err != nil {
		logger.Error("failed to publish completion event", "error", err)
	}

	logger.Info("proposal processed",
		"prompts_completed", result.Completed,
		"prompts_skipped", result.Skipped,
	)
}

func (w *Worker) process(ctx context.Context, logger *slog.Logger, evt bus.ProposalRequest) (*orchestrator.Result, error) {
	// Stage 1: pull attachments from the drive into the archive. A single
	// bad attachment is logged and dropped, not fatal.
	items, err := w.drive.ListChildren(ctx, evt.AttachmentsFolderID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	logger.Info("attachments listed", "count", len(items))

	for _, item := range items {
		if item.IsFolder {
			continue
		}
		content, err := w.drive.Download(ctx, item.ID)
		if err != nil {
			logger.Error("failed to download attachment", "name", item.Name, "error", err)
			continue
		}
		if err := w.archive.Upload(ctx, evt.AttachmentsFolderID, item.Name, content); err != nil {
			logger.Error("failed to archive attachment", "name", item.Name, "error", err)
		}
	}

	// Stage 2: read everything back from the archive and extract text.
	// Extraction failures degrade to error text inside the content.
	keys, err := w.archive.List(ctx, evt.AttachmentsFolderID)
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	var docs []chunk.Document
	for _, key := range keys {
		data, err := w.archive.Download(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("download archived %s: %w", key, err)
		}
		name := path.Base(key)
		docs = append(docs, chunk.Document{Name: name, Text: extract.Text(name, data)})
	}

	// Stage 3: chunk, build the prompt sequence, run the conversation.
	chunks := chunk.Split(docs, w.chunkSize)
	prompts := chunk.Prompts(chunks)
	logger.Info("prompt sequence prepared",
		"documents", len(docs),
		"chunks", len(chunks),
		"prompts", len(prompts),
	)

	result, err := w.conv.Run(ctx, prompts)
	if err != nil {
		return nil, fmt.Errorf("run conversation: %w", err)
	}

	// Stage 4: assemble and upload the artifacts.
	transcript, err := report.Transcript(result.Transcript)
	if err != nil {
		return nil, fmt.Errorf("assemble transcript: %w", err)
	}
	draft, err := report.Draft(result.Draft)
	if err != nil {
		return nil, fmt.Errorf("assemble draft: %w", err)
	}

	if err := w.drive.Upload(ctx, evt.ResponseFolderID, report.TranscriptName, transcript); err != nil {
		return nil, fmt.Errorf("upload transcript: %w", err)
	}
	if err := w.drive.Upload(ctx, evt.ResponseFolderID, report.DraftName, draft); err != nil {
		return nil, fmt.Errorf("upload draft: %w", err)
	}

	return result, nil
}
