package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/MikeSquared-Agency/tender/internal/assistant"
)

// StatusTimedOut is reported when a run is still active at the poll
// deadline. It is distinct from the remote terminal statuses so a stuck run
// is observable rather than blocking the batch forever.
const StatusTimedOut = "timed_out"

// ThreadAPI is the slice of the assistants API the orchestrator drives.
// assistant.Client implements it; tests use a scripted fake.
type ThreadAPI interface {
	CreateThread(ctx context.Context) (string, error)
	AddMessage(ctx context.Context, threadID, text string) error
	StartRun(ctx context.Context, threadID string) (string, error)
	RunState(ctx context.Context, threadID, runID string) (string, error)
	Messages(ctx context.Context, threadID string) ([]assistant.Message, error)
}

// Result is the outcome of one prompt batch.
type Result struct {
	ThreadID   string
	Transcript []assistant.Message
	Draft      string
	Total      int
	Completed  int
	Skipped    int
}

// Orchestrator runs a prompt sequence against a single conversation thread.
// A prompt that exhausts its retries or whose run ends in a non-completed
// state is logged and skipped; the batch continues with the transcript as of
// the last successful prompt. Only thread creation failure aborts the batch.
type Orchestrator struct {
	api    ThreadAPI
	logger *slog.Logger

	RetryAttempts int
	RetryInterval time.Duration
	PollInterval  time.Duration
	PollTimeout   time.Duration
}

func New(api ThreadAPI, pollTimeout time.Duration, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		api:           api,
		logger:        logger,
		RetryAttempts: 3,
		RetryInterval: time.Second,
		PollInterval:  time.Second,
		PollTimeout:   pollTimeout,
	}
}

// Run executes every prompt in order on one new thread. The returned
// transcript is the full thread contents sorted ascending by creation time,
// as of the last prompt whose run completed; Draft is the text of the
// chronologically last message.
func (o *Orchestrator) Run(ctx context.Context, prompts []string) (*Result, error) {
	threadID, err := o.api.CreateThread(ctx)
	if err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	o.logger.Info("thread created", "thread_id", threadID, "prompts", len(prompts))

	result := &Result{ThreadID: threadID, Total: len(prompts)}

	for i, prompt := range prompts {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		if err := o.withRetry(ctx, func() error {
			return o.api.AddMessage(ctx, threadID, prompt)
		}); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			o.logger.Error("giving up on prompt after retries",
				"prompt", i+1, "total", len(prompts), "error", err)
			result.Skipped++
			continue
		}
		o.logger.Info("prompt added to thread", "prompt", i+1, "total", len(prompts))

		var runID string
		if err := o.withRetry(ctx, func() error {
			id, err := o.api.StartRun(ctx, threadID)
			if err == nil {
				runID = id
			}
			return err
		}); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			o.logger.Error("giving up on running thread after retries",
				"prompt", i+1, "total", len(prompts), "error", err)
			result.Skipped++
			continue
		}

		status, err := o.pollRun(ctx, threadID, runID)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			o.logger.Error("run polling failed",
				"prompt", i+1, "total", len(prompts), "run_id", runID, "error", err)
			result.Skipped++
			continue
		}
		if status != assistant.StatusCompleted {
			o.logger.Error("run did not complete",
				"prompt", i+1, "total", len(prompts), "run_id", runID, "status", status)
			result.Skipped++
			continue
		}

		msgs, err := o.api.Messages(ctx, threadID)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			o.logger.Error("failed to list messages",
				"prompt", i+1, "total", len(prompts), "error", err)
			result.Skipped++
			continue
		}

		sort.SliceStable(msgs, func(a, b int) bool {
			return msgs[a].CreatedAt < msgs[b].CreatedAt
		})
		result.Transcript = msgs
		result.Completed++
	}

	if n := len(result.Transcript); n > 0 {
		result.Draft = result.Transcript[n-1].Text
	}

	o.logger.Info("prompt batch finished",
		"thread_id", threadID,
		"completed", result.Completed,
		"skipped", result.Skipped,
	)
	return result, nil
}

// withRetry runs op up to RetryAttempts times with RetryInterval between
// attempts, returning the last error on exhaustion.
func (o *Orchestrator) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < o.RetryAttempts; attempt++ {
		if attempt > 0 {
			if serr := sleep(ctx, o.RetryInterval); serr != nil {
				return serr
			}
		}
		if err = op(); err == nil {
			return nil
		}
	}
	return err
}

// pollRun waits for the run to leave its active states, checking every
// PollInterval up to PollTimeout. A run still active at the deadline yields
// StatusTimedOut rather than looping forever.
func (o *Orchestrator) pollRun(ctx context.Context, threadID, runID string) (string, error) {
	deadline := time.Now().Add(o.PollTimeout)
	status := assistant.StatusQueued
	for isActive(status) {
		if time.Now().After(deadline) {
			return StatusTimedOut, nil
		}
		if err := sleep(ctx, o.PollInterval); err != nil {
			return "", err
		}
		s, err := o.api.RunState(ctx, threadID, runID)
		if err != nil {
			return "", err
		}
		status = s
	}
	return status, nil
}

func isActive(status string) bool {
	switch status {
	case assistant.StatusQueued, assistant.StatusInProgress, assistant.StatusCancelling:
		return true
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
