// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const DefaultShutdownTimeout = 15 * time.Second

type hook struct {
	name string
	fn   func(ctx context.Context) error
}

// App manages application lifecycle with graceful shutdown support.
type App struct {
	mu              sync.Mutex
	hooks           []hook
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

type Option func(*App)

func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) { a.shutdownTimeout = d }
}

func New(logger *zap.Logger, opts ...Option) *App {
	a := &App{shutdownTimeout: DefaultShutdownTimeout, logger: logger.Named("bootstrap")}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddShutdownHook registers a function to call during shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, hook{name: name, fn: fn})
}

// Run executes run until it returns or SIGINT/SIGTERM arrives, then runs the shutdown
// hooks within the shutdown timeout. Errors from run and from the hooks are joined.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
		shutdownErr := a.shutdown()
		// run usually returns once its server has been shut down by a hook.
		select {
		case runErr = <-errCh:
		case <-time.After(a.shutdownTimeout):
			runErr = errors.New("run did not return after shutdown")
		}
		return errors.Join(runErr, shutdownErr)
	case runErr = <-errCh:
		return errors.Join(runErr, a.shutdown())
	}
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.mu.Lock()
	hooks := make([]hook, len(a.hooks))
	copy(hooks, a.hooks)
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].fn(ctx); err != nil {
			a.logger.Warn("shutdown hook failed", zap.String("hook", hooks[i].name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", hooks[i].name, err))
		}
	}
	return errors.Join(errs...)
}
