// Package jobs provides asynchronous routing job management for the API
// server.
//
// A job records one routing request and its lifecycle. The Store interface
// has implementations for different backends:
//   - memory: In-memory storage for development and single-instance servers
//   - mongo: MongoDB-backed storage for multi-instance deployments
//
// # Architecture
//
// Jobs move through a fixed lifecycle: queued → running → done or failed.
// The API server creates a job for each asynchronous routing request, a
// worker executes the pipeline and stores the outcome on the same job, and
// clients poll the job by ID until it finishes. Finished jobs stay around
// for retrieval until Cleanup removes them.
//
// # Usage
//
// Create a store and submit a job:
//
//	store := jobs.NewMemoryStore()
//
//	job := jobs.New(jobs.Request{
//	    Circuit:       qasmText,
//	    CircuitFormat: "qasm",
//	    Topology:      "grid:3x3",
//	})
//	store.Put(ctx, job)
//
// Execute and finish it:
//
//	job.Start()
//	store.Put(ctx, job)
//
//	res, err := runner.Execute(ctx, job.Request.PipelineOptions())
//	if err != nil {
//	    job.Fail(err)
//	} else {
//	    job.Complete(res.Routed)
//	}
//	store.Put(ctx, job)
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kwyip/qroute/pkg/pipeline"
	"github.com/kwyip/qroute/pkg/route"
)

// ErrNotFound is returned when a job does not exist.
var ErrNotFound = errors.New("job not found")

// Status is the lifecycle state of a job.
type Status string

// Job lifecycle states.
const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Request is the persisted form of a routing request. It carries exactly
// the fields a job needs to be re-executed; runtime concerns like loggers
// and thread configuration stay out of storage.
type Request struct {
	Circuit       string   `json:"circuit" bson:"circuit"`
	CircuitFormat string   `json:"circuit_format" bson:"circuit_format"`
	Topology      string   `json:"topology" bson:"topology"`
	Seed          uint64   `json:"seed,omitempty" bson:"seed"`
	Trials        int      `json:"trials,omitempty" bson:"trials"`
	AttemptCap    int      `json:"attempt_cap,omitempty" bson:"attempt_cap"`
	Layout        []int    `json:"layout,omitempty" bson:"layout,omitempty"`
	Formats       []string `json:"formats,omitempty" bson:"formats,omitempty"`
}

// PipelineOptions converts the stored request into pipeline options.
func (r Request) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Circuit:       r.Circuit,
		CircuitFormat: r.CircuitFormat,
		Topology:      r.Topology,
		Seed:          r.Seed,
		Trials:        r.Trials,
		AttemptCap:    r.AttemptCap,
		Layout:        r.Layout,
		Formats:       r.Formats,
	}
}

// Job is one routing request and its outcome.
type Job struct {
	ID         string        `json:"id" bson:"_id"`
	Status     Status        `json:"status" bson:"status"`
	Request    Request       `json:"request" bson:"request"`
	Result     *route.Result `json:"result,omitempty" bson:"result,omitempty"`
	Error      string        `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	StartedAt  *time.Time    `json:"started_at,omitempty" bson:"started_at,omitempty"`
	FinishedAt *time.Time    `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}

// New creates a queued job for the given request with a fresh ID.
func New(req Request) *Job {
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}
}

// Start marks the job as running.
func (j *Job) Start() {
	now := time.Now().UTC()
	j.Status = StatusRunning
	j.StartedAt = &now
}

// Complete marks the job as done and attaches its result.
func (j *Job) Complete(res *route.Result) {
	now := time.Now().UTC()
	j.Status = StatusDone
	j.Result = res
	j.FinishedAt = &now
}

// Fail marks the job as failed and records the error message.
func (j *Job) Fail(err error) {
	now := time.Now().UTC()
	j.Status = StatusFailed
	j.Error = err.Error()
	j.FinishedAt = &now
}

// Finished reports whether the job has reached a terminal state.
func (j *Job) Finished() bool {
	return j.Status == StatusDone || j.Status == StatusFailed
}

// Store is the interface for job storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a job by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Job, error)

	// Put inserts or replaces a job.
	Put(ctx context.Context, job *Job) error

	// List returns jobs ordered by creation time, newest first.
	// A limit of zero means no limit.
	List(ctx context.Context, limit int) ([]*Job, error)

	// Delete removes a job. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Cleanup removes finished jobs older than the given age and returns
	// how many were removed. Queued and running jobs are never touched.
	Cleanup(ctx context.Context, olderThan time.Duration) (int, error)

	// Close releases any underlying resources.
	Close(ctx context.Context) error
}
