// Package shutdown coordinates cleanup when an interactive session ends.
//
// The REPL registers hooks (close the token store, save history) and the
// handler runs them in reverse order on SIGINT/SIGTERM or on an explicit
// Trigger when the user types exit.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Handler runs registered hooks once, on signal or explicit trigger.
type Handler struct {
	timeout time.Duration
	hooks   []func(context.Context) error
	mu      sync.Mutex
	once    sync.Once
	done    chan struct{}
}

// NewHandler creates a shutdown handler with the given hook deadline.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a hook. Hooks run in reverse registration order.
func (h *Handler) OnShutdown(hook func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Watch runs the hooks when SIGINT or SIGTERM arrives. It returns
// immediately; use Done to wait for completion.
func (h *Handler) Watch() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		h.Trigger()
	}()
}

// Trigger runs the hooks now. Subsequent calls are no-ops.
func (h *Handler) Trigger() error {
	var lastErr error
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := make([]func(context.Context) error, len(h.hooks))
		copy(hooks, h.hooks)
		h.mu.Unlock()

		for i := len(hooks) - 1; i >= 0; i-- {
			if err := hooks[i](ctx); err != nil {
				lastErr = err
			}
		}
		close(h.done)
	})
	return lastErr
}

// Done closes when shutdown has completed.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
