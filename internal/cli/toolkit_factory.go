package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/tinkit"
	"github.com/aretw0/tinkit/internal/config"
	"github.com/aretw0/tinkit/pkg/adapters/memory"
	"github.com/aretw0/tinkit/pkg/adapters/redis"
	"github.com/aretw0/tinkit/pkg/observability"
	"github.com/aretw0/tinkit/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Options carries the global flags shared by every command.
type Options struct {
	ConfigPath string
	Debug      bool
}

// App is a fully wired toolkit plus the infrastructure it was built with.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Toolkit  *tinkit.Toolkit
	Metrics  *observability.Metrics
	Registry *prometheus.Registry

	closers []func() error
}

// Setup loads configuration and builds the toolkit with the standard CLI conventions.
func Setup(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger, err := createLogger(opts.Debug, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger}
	tkOpts := []tinkit.Option{tinkit.WithLogger(logger)}

	// 1. Metrics
	if cfg.Metrics.Enabled {
		app.Registry = prometheus.NewRegistry()
		app.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		app.Metrics = observability.NewMetrics(app.Registry)
		tkOpts = append(tkOpts, tinkit.WithMetrics(app.Metrics))
	}

	// 2. Cache
	cache, err := app.createCache(ctx)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		tkOpts = append(tkOpts, tinkit.WithCache(cache))
	}

	app.Toolkit = tinkit.New(tkOpts...)
	return app, nil
}

func (a *App) createCache(ctx context.Context) (ports.CentroidCache, error) {
	c := a.Config.Cache
	switch c.Backend {
	case config.CacheMemory:
		a.Logger.Debug("centroid cache enabled", "backend", c.Backend, "ttl", c.TTL)
		return memory.NewCache(memory.WithTTL(c.TTL)), nil

	case config.CacheRedis:
		opts := []redis.Option{redis.WithTTL(c.TTL)}
		if c.Prefix != "" {
			opts = append(opts, redis.WithPrefix(c.Prefix))
		}
		rc := redis.New(c.Redis.Addr, c.Redis.Password, c.Redis.DB, opts...)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("centroid cache unavailable at %s: %w", c.Redis.Addr, err)
		}
		a.closers = append(a.closers, rc.Close)
		a.Logger.Debug("centroid cache enabled", "backend", c.Backend, "addr", c.Redis.Addr, "ttl", c.TTL)
		return rc, nil
	}
	return nil, nil
}

// Close releases the cache connection, if any.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
