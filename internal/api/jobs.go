package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	qerrors "github.com/kwyip/qroute/pkg/errors"
	"github.com/kwyip/qroute/pkg/jobs"
	"github.com/kwyip/qroute/pkg/pipeline"
	"github.com/kwyip/qroute/pkg/route"
)

// handleSubmitJob queues an asynchronous routing job and responds 202 with
// the queued job. Clients poll GET /api/v1/jobs/{id} until it finishes.
func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var req jobs.Request
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		respondError(w, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	// Reject obviously bad requests now; the worker revalidates when it
	// loads the inputs.
	opts := req.PipelineOptions()
	if err := opts.ValidateForLoad(); err != nil {
		respondError(w, err)
		return
	}
	if err := opts.ValidateForEmit(); err != nil {
		respondError(w, err)
		return
	}

	job := jobs.New(req)
	if err := s.jobs.Put(r.Context(), job); err != nil {
		respondError(w, qerrors.Wrap(qerrors.ErrCodeStoreFailure, err, "store job"))
		return
	}

	select {
	case s.queue <- job.ID:
	default:
		_ = s.jobs.Delete(r.Context(), job.ID)
		w.Header().Set("Retry-After", "5")
		respondError(w, qerrors.New(qerrors.ErrCodeBusy, "job queue is full, retry later"))
		return
	}

	s.logger.Info("job queued", "job", job.ID, "topology", req.Topology)
	respondJSON(w, http.StatusAccepted, job)
}

// handleListJobs lists jobs, newest first. The limit query parameter caps
// the page size (default 50, max 500).
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, qerrors.New(qerrors.ErrCodeInvalidInput,
				"limit must be a positive integer, got %q", raw))
			return
		}
		limit = min(n, 500)
	}

	list, err := s.jobs.List(r.Context(), limit)
	if err != nil {
		respondError(w, qerrors.Wrap(qerrors.ErrCodeStoreFailure, err, "list jobs"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"jobs":  list,
		"count": len(list),
	})
}

// handleGetJob fetches one job by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := s.jobs.Get(r.Context(), id)
	if errors.Is(err, jobs.ErrNotFound) {
		respondError(w, qerrors.New(qerrors.ErrCodeJobNotFound, "job %s not found", id))
		return
	}
	if err != nil {
		respondError(w, qerrors.Wrap(qerrors.ErrCodeStoreFailure, err, "get job"))
		return
	}
	respondJSON(w, http.StatusOK, job)
}

// handleDeleteJob removes a job.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.jobs.Delete(r.Context(), id)
	if errors.Is(err, jobs.ErrNotFound) {
		respondError(w, qerrors.New(qerrors.ErrCodeJobNotFound, "job %s not found", id))
		return
	}
	if err != nil {
		respondError(w, qerrors.Wrap(qerrors.ErrCodeStoreFailure, err, "delete job"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runJob executes one queued job through the pipeline and stores the
// outcome on the job.
func (s *Server) runJob(ctx context.Context, id string) {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		s.logger.Warn("job vanished before execution", "job", id, "error", err)
		return
	}

	job.Start()
	if err := s.jobs.Put(ctx, job); err != nil {
		s.logger.Warn("mark job running", "job", id, "error", err)
	}

	start := time.Now()
	res, err := s.executeRequest(ctx, s.pipelineOptions(job.Request.PipelineOptions()))
	if err != nil {
		job.Fail(err)
		s.logger.Warn("job failed", "job", id, "duration", time.Since(start), "error", err)
	} else {
		job.Complete(res)
		s.logger.Info("job done", "job", id, "swaps", res.SwapCount, "duration", time.Since(start))
	}

	if err := s.jobs.Put(ctx, job); err != nil {
		s.logger.Error("store job result", "job", id, "error", err)
	}
}

// executeRequest runs load → route for a server-side request. Topology
// specs resolve to presets or registered custom topologies only.
func (s *Server) executeRequest(ctx context.Context, opts pipeline.Options) (*route.Result, error) {
	c, err := pipeline.LoadCircuit(opts)
	if err != nil {
		return nil, err
	}
	topo, g, err := s.resolveTopology(ctx, opts.Topology)
	if err != nil {
		return nil, err
	}
	res, _, err := s.runner.RouteWithCacheInfo(ctx, c, topo, g, opts)
	return res, err
}
