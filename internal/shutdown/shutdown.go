// Package shutdown provides graceful shutdown handling for the scanner.
//
// The first interrupt cancels the scan context so workers drain their
// in-flight probes and partial results are still reported. A second
// interrupt skips the drain and runs cleanup immediately.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Callback is a cleanup function run during shutdown.
type Callback func(ctx context.Context) error

// Config holds shutdown configuration.
type Config struct {
	Timeout time.Duration
	Signals []os.Signal
	OnStart func()
	OnDone  func(elapsed time.Duration, errors []error)
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Handler manages graceful shutdown.
type Handler struct {
	mu            sync.Mutex
	callbacks     []Callback
	callbackNames []string

	shuttingDown atomic.Bool
	forced       atomic.Bool
	done         chan struct{}
	timeout      time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	sigChan chan os.Signal
	onStart func()
	onDone  func(elapsed time.Duration, errors []error)
}

// New creates a shutdown handler and starts listening for signals.
func New(cfg Config) *Handler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if len(cfg.Signals) == 0 {
		cfg.Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	ctx, cancel := context.WithCancel(context.Background())

	h := &Handler{
		done:    make(chan struct{}),
		timeout: cfg.Timeout,
		ctx:     ctx,
		cancel:  cancel,
		sigChan: make(chan os.Signal, 2),
		onStart: cfg.OnStart,
		onDone:  cfg.OnDone,
	}

	signal.Notify(h.sigChan, cfg.Signals...)
	go h.listen()

	return h
}

// NewDefault creates a handler with default configuration.
func NewDefault() *Handler {
	return New(DefaultConfig())
}

func (h *Handler) listen() {
	select {
	case <-h.sigChan:
	case <-h.ctx.Done():
		return
	}

	// Second signal during drain forces immediate cleanup.
	go func() {
		select {
		case <-h.sigChan:
			h.forced.Store(true)
		case <-h.done:
		}
	}()

	h.Shutdown()
}

// Register registers a named cleanup callback.
func (h *Handler) Register(name string, callback Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.callbacks = append(h.callbacks, callback)
	h.callbackNames = append(h.callbackNames, name)
}

// RegisterFunc registers a simple cleanup function.
func (h *Handler) RegisterFunc(name string, fn func()) {
	h.Register(name, func(ctx context.Context) error {
		fn()
		return nil
	})
}

// Context returns the scan context, cancelled when shutdown begins.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// IsShuttingDown reports whether shutdown is in progress.
func (h *Handler) IsShuttingDown() bool {
	return h.shuttingDown.Load()
}

// Forced reports whether a second interrupt demanded an immediate stop.
func (h *Handler) Forced() bool {
	return h.forced.Load()
}

// Done returns a channel closed when shutdown completes.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

// Shutdown cancels the scan context and runs callbacks in reverse
// registration order.
func (h *Handler) Shutdown() {
	if !h.shuttingDown.CompareAndSwap(false, true) {
		return
	}

	start := time.Now()

	if h.onStart != nil {
		h.onStart()
	}

	h.cancel()

	cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), h.timeout)
	defer cleanupCancel()

	h.mu.Lock()
	callbacks := make([]Callback, len(h.callbacks))
	names := make([]string, len(h.callbackNames))
	copy(callbacks, h.callbacks)
	copy(names, h.callbackNames)
	h.mu.Unlock()

	var errors []error
	for i := len(callbacks) - 1; i >= 0; i-- {
		if err := h.runCallback(cleanupCtx, names[i], callbacks[i]); err != nil {
			errors = append(errors, err)
		}
	}

	if h.onDone != nil {
		h.onDone(time.Since(start), errors)
	}

	close(h.done)
}

func (h *Handler) runCallback(ctx context.Context, name string, callback Callback) error {
	done := make(chan error, 1)

	go func() {
		done <- callback(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return &TimeoutError{CallbackName: name}
	}
}

// Trigger initiates shutdown programmatically, as if a signal arrived.
func (h *Handler) Trigger() {
	select {
	case h.sigChan <- syscall.SIGTERM:
	default:
	}
}

// Stop detaches signal handling without running callbacks, for scans
// that finish normally.
func (h *Handler) Stop() {
	signal.Stop(h.sigChan)
	h.cancel()
}

// TimeoutError is returned when a callback exceeds the cleanup timeout.
type TimeoutError struct {
	CallbackName string
}

func (e *TimeoutError) Error() string {
	return "shutdown callback timed out: " + e.CallbackName
}
