package careermate

import (
	"log/slog"

	"github.com/Chinh13571113/careermate-web-sub001/internal/logging"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/memory"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/engine"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/lock"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

// Version is the library version, surfaced by the CLI.
var Version = "0.3.0"

// Engine is the high-level entry point for the library. It wraps the
// session engine and provides a simplified wiring API for consumers.
type Engine = engine.Engine

// config collects the wiring choices before the engine is built.
type config struct {
	store       ports.SessionStore
	locker      ports.SessionLocker
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	questionCap int
}

// Option defines a functional option for configuring the Engine wiring.
type Option func(*config)

// WithStore injects a custom session store. Defaults to the in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(locker ports.SessionLocker) Option {
	return func(c *config) {
		c.locker = locker
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithQuestionCap overrides the per-session question limit.
func WithQuestionCap(cap int) Option {
	return func(c *config) {
		c.questionCap = cap
	}
}

// New initializes a session engine with the given interviewer and
// reporter services. By default it stores sessions in memory; inject a
// file or redis store for durability.
func New(interviewer ports.Interviewer, reporter ports.Reporter, opts ...Option) *Engine {
	cfg := &config{
		logger:      logging.NewNop(),
		questionCap: domain.DefaultQuestionCap,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.store == nil {
		cfg.store = memory.NewStore()
	}

	lockOpts := []lock.Option{lock.WithLogger(cfg.logger)}
	if cfg.locker != nil {
		lockOpts = append(lockOpts, lock.WithLocker(cfg.locker))
	}

	return engine.New(cfg.store, interviewer, reporter,
		engine.WithLogger(cfg.logger),
		engine.WithLifecycleHooks(cfg.hooks),
		engine.WithQuestionCap(cfg.questionCap),
		engine.WithLockRegistry(lock.NewRegistry(lockOpts...)),
	)
}
