package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kwyip/qroute/internal/api"
	"github.com/kwyip/qroute/pkg/cache"
	"github.com/kwyip/qroute/pkg/jobs"
	"github.com/kwyip/qroute/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string        // listen address
	workers   int           // job worker goroutines
	queueSize int           // job queue capacity
	retention time.Duration // how long finished jobs are kept
	redisURL  string        // redis cache backend (empty = file cache)
	mongoURI  string        // mongo job store (empty = in-memory)
	mongoDB   string        // mongo database name
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the routing HTTP API",
		Long: `Run the routing service: synchronous routing, asynchronous jobs with a
worker pool, and topology management over HTTP.

By default results are cached on disk and jobs live in memory. Point
--redis at a Redis instance to share the result cache across replicas,
and --mongo at a MongoDB instance to persist jobs across restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&opts.workers, "workers", api.DefaultWorkers, "job worker goroutines")
	cmd.Flags().IntVar(&opts.queueSize, "queue-size", api.DefaultQueueSize, "job queue capacity")
	cmd.Flags().DurationVar(&opts.retention, "job-retention", api.DefaultJobRetention, "how long finished jobs are kept")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for the result cache (default: file cache)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the job store (default: in-memory)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "qroute", "MongoDB database name")

	return cmd
}

// runServe wires the cache, job store, and server, then serves until ctx
// is canceled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, keyer, err := c.newServeCache(ctx, opts.redisURL)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	jobStore, err := newJobStore(ctx, opts.mongoURI, opts.mongoDB)
	if err != nil {
		return fmt.Errorf("initialize job store: %w", err)
	}
	defer jobStore.Close(context.Background())

	threads, err := threadConfig(0, false)
	if err != nil {
		return err
	}

	srv := api.NewServer(api.Config{
		Workers:      opts.workers,
		QueueSize:    opts.queueSize,
		JobRetention: opts.retention,
		Threads:      threads,
		Logger:       c.Logger,
	}, runner, jobStore)
	srv.StartWorkers(ctx)

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr, "workers", opts.workers)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		srv.Wait()
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeCache picks the cache backend for the server: redis when a URL
// is given, the local file cache otherwise. Redis keys are scoped under a
// "qroute:" prefix so a shared instance can host other applications.
func (c *CLI) newServeCache(ctx context.Context, redisURL string) (cache.Cache, cache.Keyer, error) {
	if redisURL != "" {
		store, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, cache.NewScopedKeyer(nil, "qroute:"), nil
	}
	store, err := c.newCache()
	return store, nil, err
}

// newJobStore picks the job store backend: mongo when a URI is given, an
// in-memory store otherwise.
func newJobStore(ctx context.Context, mongoURI, mongoDB string) (jobs.Store, error) {
	if mongoURI != "" {
		return jobs.NewMongoStore(ctx, mongoURI, mongoDB)
	}
	return jobs.NewMemoryStore(), nil
}
