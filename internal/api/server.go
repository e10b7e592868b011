package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/tender/internal/bus"
	"github.com/MikeSquared-Agency/tender/internal/store"
)

// JobStore is the slice of the job ledger the API needs.
type JobStore interface {
	CreateJob(ctx context.Context, id uuid.UUID, attachmentsFolderID, responseFolderID string) error
	GetJob(ctx context.Context, id uuid.UUID) (*store.Job, error)
}

// Publisher dispatches proposal job events onto the bus.
type Publisher interface {
	Publish(subject string, data any) error
}

type Server struct {
	router *chi.Mux
	port   int
	jobs   JobStore
	pub    Publisher
	logger *slog.Logger
}

func NewServer(port int, jobs JobStore, pub Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		jobs:   jobs,
		pub:    pub,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/tender/status", s.status)
	router.Post("/api/v1/proposals", s.createProposal)
	router.Get("/api/v1/proposals/{id}", s.getProposal)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

type createProposalRequest struct {
	AttachmentsFolderID string `json:"attachments_folder_id"`
	ResponseFolderID    string `json:"response_folder_id"`
}

// createProposal validates the trigger, records the job, and hands it to the
// worker via the bus. The 202 goes out before any drive or AI call happens;
// progress is observable through the job record.
func (s *Server) createProposal(w http.ResponseWriter, r *http.Request) {
	var req createProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.AttachmentsFolderID == "" || req.ResponseFolderID == "" {
		writeError(w, http.StatusBadRequest, "attachments_folder_id and response_folder_id are required")
		return
	}

	jobID := uuid.New()
	if err := s.jobs.CreateJob(r.Context(), jobID, req.AttachmentsFolderID, req.ResponseFolderID); err != nil {
		s.logger.Error("failed to create job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	if err := s.pub.Publish(bus.SubjectProposalRequested, bus.ProposalRequest{
		JobID:               jobID.String(),
		AttachmentsFolderID: req.AttachmentsFolderID,
		ResponseFolderID:    req.ResponseFolderID,
	}); err != nil {
		s.logger.Error("failed to publish job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to dispatch job")
		return
	}

	s.logger.Info("proposal job accepted",
		"job_id", jobID,
		"attachments_folder_id", req.AttachmentsFolderID,
		"response_folder_id", req.ResponseFolderID,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"job_id": jobID.String(),
		"status": store.StatusQueued,
	})
}

type jobResponse struct {
	JobID               string   `json:"job_id"`
	AttachmentsFolderID string   `json:"attachments_folder_id"`
	ResponseFolderID    string   `json:"response_folder_id"`
	Status              string   `json:"status"`
	Error               string   `json:"error,omitempty"`
	TotalPrompts        int      `json:"total_prompts"`
	CompletedPrompts    int      `json:"completed_prompts"`
	SkippedPrompts      int      `json:"skipped_prompts"`
	Artifacts           []string `json:"artifacts,omitempty"`
}

func (s *Server) getProposal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.jobs.GetJob(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get job", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(jobResponse{
		JobID:               job.ID.String(),
		AttachmentsFolderID: job.AttachmentsFolderID,
		ResponseFolderID:    job.ResponseFolderID,
		Status:              job.Status,
		Error:               job.Error,
		TotalPrompts:        job.TotalPrompts,
		CompletedPrompts:    job.CompletedPrompts,
		SkippedPrompts:      job.SkippedPrompts,
		Artifacts:           job.Artifacts,
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"agent":  "tender",
		"status": "ready",
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
