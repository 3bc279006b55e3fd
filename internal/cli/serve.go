package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/automata"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Addr string

	// RedisAddr selects a Redis catalog; the in-memory store is used when empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	ShutdownTimeout time.Duration
}

// Server is a configured HTTP server and the catalog plumbing around it.
type Server struct {
	HTTP     *http.Server
	Store    ports.DefinitionStore
	Registry *prometheus.Registry

	loader *loam.Loader
	logger *slog.Logger
	close  func() error
}

// NewServer wires the engine, metrics, catalog store and HTTP handler.
// When opts.Dir is set, the store is seeded from the directory and kept in sync with it.
func NewServer(ctx context.Context, opts Options, sopts ServeOptions, logger *slog.Logger) (*Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	hooks := metrics.Hooks()
	if opts.Debug {
		hooks = observability.Chain(hooks, observability.LogHooks(logger))
	}

	// The HTTP engine resolves names through the store, not the directory.
	engOpts := opts
	engOpts.Dir = ""
	eng, err := NewEngine(engOpts, logger, automata.WithLifecycleHooks(hooks))
	if err != nil {
		return nil, err
	}

	s := &Server{Registry: reg, logger: logger, close: func() error { return nil }}
	if sopts.RedisAddr != "" {
		var redisOpts []redis.Option
		if sopts.RedisTTL > 0 {
			redisOpts = append(redisOpts, redis.WithTTL(sopts.RedisTTL))
		}
		store := redis.New(sopts.RedisAddr, sopts.RedisPassword, sopts.RedisDB, redisOpts...)
		s.Store = store
		s.close = store.Close
		logger.Info("using redis catalog", "addr", sopts.RedisAddr)
	} else {
		s.Store = memory.NewStore()
	}

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithStore(s.Store),
		httpAdapter.WithGatherer(reg),
		httpAdapter.WithLogger(logger),
	}
	if opts.Dir != "" {
		if s.loader, err = loam.Open(opts.Dir); err != nil {
			return nil, fmt.Errorf("error opening catalog: %w", err)
		}
		n, err := Sync(ctx, s.loader, s.Store)
		if err != nil {
			return nil, fmt.Errorf("error seeding catalog: %w", err)
		}
		logger.Info("catalog loaded", "dir", opts.Dir, "definitions", n)
		handlerOpts = append(handlerOpts, httpAdapter.WithWatcher(s.loader))
	}

	handler, err := httpAdapter.NewHandler(eng, handlerOpts...)
	if err != nil {
		return nil, err
	}
	s.HTTP = &http.Server{
		Addr:              sopts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	defer s.close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting automata server", "addr", s.HTTP.Addr)
		if err := s.HTTP.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if s.loader != nil {
		g.Go(func() error {
			return WatchAndSync(ctx, s.loader, s.loader, s.Store, s.logger)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.HTTP.Shutdown(shutdownCtx); err != nil {
			s.HTTP.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		s.logger.Info("automata server stopped gracefully")
		return nil
	})
	return g.Wait()
}
