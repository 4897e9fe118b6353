// Package api implements the qroute HTTP API server.
//
// # Endpoints
//
//	POST   /api/v1/route                     Route a circuit synchronously
//	POST   /api/v1/jobs                      Submit an asynchronous routing job
//	GET    /api/v1/jobs                      List jobs, newest first
//	GET    /api/v1/jobs/{id}                 Fetch one job
//	DELETE /api/v1/jobs/{id}                 Delete a job
//	GET    /api/v1/topologies                List preset topology families
//	POST   /api/v1/topologies                Register a custom named topology
//	GET    /api/v1/topologies/{spec}         Describe a topology
//	GET    /api/v1/topologies/{spec}/render  Render a topology as SVG
//	GET    /healthz                          Liveness probe
//
// Synchronous routing blocks the request until the result is ready, which
// suits small circuits. Larger circuits go through the job queue: submit
// returns immediately with a job ID, a worker pool executes the pipeline,
// and clients poll the job until it finishes.
//
// Requests carry circuits inline; the server never reads file paths from
// request bodies. Topology specs are either presets ("grid:3x3") or names
// registered via POST /api/v1/topologies.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kwyip/qroute/pkg/jobs"
	"github.com/kwyip/qroute/pkg/pipeline"
	"github.com/kwyip/qroute/pkg/route"
)

// Default server parameters.
const (
	// DefaultWorkers is the default number of job worker goroutines.
	DefaultWorkers = 2

	// DefaultQueueSize is the default job queue capacity. Submissions
	// beyond it are rejected with 503 rather than queued unboundedly.
	DefaultQueueSize = 64

	// DefaultJobRetention is how long finished jobs stay retrievable.
	DefaultJobRetention = 24 * time.Hour

	// maxBodyBytes bounds request body size.
	maxBodyBytes = 16 << 20
)

// Config holds server configuration.
type Config struct {
	// Workers is the number of job worker goroutines.
	Workers int

	// QueueSize is the job queue capacity.
	QueueSize int

	// JobRetention is how long finished jobs are kept before cleanup.
	JobRetention time.Duration

	// Threads is the routing thread configuration, resolved once at the
	// process boundary. The server marks it OuterParallel: request
	// handlers and job workers already run concurrently, so each routing
	// call stays single threaded unless ForceMultithreading is set.
	Threads route.ThreadConfig

	// Logger receives request and job logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server wires the routing pipeline, the job store, and the HTTP handlers.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	jobs   jobs.Store
	queue  chan string
	logger *log.Logger
	wg     sync.WaitGroup
}

// NewServer creates a server around a pipeline runner and a job store.
func NewServer(cfg Config, runner *pipeline.Runner, store jobs.Store) *Server {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.JobRetention <= 0 {
		cfg.JobRetention = DefaultJobRetention
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	cfg.Threads.OuterParallel = true

	return &Server{
		cfg:    cfg,
		runner: runner,
		jobs:   store,
		queue:  make(chan string, cfg.QueueSize),
		logger: cfg.Logger,
	}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/route", s.handleRoute)

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", s.handleSubmitJob)
			r.Get("/", s.handleListJobs)
			r.Get("/{id}", s.handleGetJob)
			r.Delete("/{id}", s.handleDeleteJob)
		})

		r.Route("/topologies", func(r chi.Router) {
			r.Get("/", s.handleListTopologies)
			r.Post("/", s.handleRegisterTopology)
			r.Get("/{spec}", s.handleGetTopology)
			r.Get("/{spec}/render", s.handleRenderTopology)
		})
	})

	return r
}

// StartWorkers launches the job worker pool and the retention janitor.
// Workers exit when ctx is canceled; Wait blocks until they are gone.
func (s *Server) StartWorkers(ctx context.Context) {
	for i := 0; i < s.cfg.Workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case id := <-s.queue:
					s.runJob(ctx, id)
				}
			}
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.jobs.Cleanup(ctx, s.cfg.JobRetention)
				if err != nil {
					s.logger.Warn("job cleanup failed", "error", err)
				} else if removed > 0 {
					s.logger.Info("cleaned up finished jobs", "removed", removed)
				}
			}
		}
	}()
}

// Wait blocks until all workers have exited.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Close releases the runner's resources.
func (s *Server) Close() error {
	return s.runner.Close()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pipelineOptions prepares request options for server-side execution.
func (s *Server) pipelineOptions(opts pipeline.Options) pipeline.Options {
	opts.Logger = s.logger
	opts.Threads = s.cfg.Threads
	return opts
}
