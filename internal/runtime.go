package internal

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrDisposed is returned (or panicked with, in strict mode) when a disposed
// observable is used.
var ErrDisposed = errors.New("rx: observable is disposed")

type Runtime struct {
	logger *slog.Logger

	// panic on use of a disposed observable instead of logging
	strict bool

	tracker *Tracker
}

func NewRuntime(logger *slog.Logger, strict bool) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runtime{
		logger:  logger,
		strict:  strict,
		tracker: NewTracker(),
	}
}

func (r *Runtime) Logger() *slog.Logger { return r.logger }

func (r *Runtime) Strict() bool { return r.strict }

func (r *Runtime) Tracker() *Tracker { return r.tracker }

// Misuse reports a contract violation on a disposed observable.
func (r *Runtime) Misuse(op string, attrs ...any) {
	err := fmt.Errorf("%s: %w", op, ErrDisposed)
	if r.strict {
		panic(err)
	}

	r.logger.Warn("ignoring use of disposed observable", append([]any{"op", op}, attrs...)...)
}

// CurrentOwner returns the owner that newly created subscriptions attach to.
func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

// AddCleanup registers fn on the current owner and returns a function that
// unregisters it. Outside any owner fn is dropped and remove is a no-op.
func (r *Runtime) AddCleanup(fn func()) (remove func()) {
	owner := r.CurrentOwner()
	if owner == nil {
		return func() {}
	}

	return owner.AddCleanup(fn)
}

// OnCleanup registers fn on the current owner, if any.
// It reports whether an owner took it.
func (r *Runtime) OnCleanup(fn func()) bool {
	owner := r.CurrentOwner()
	if owner == nil {
		return false
	}

	owner.OnCleanup(fn)
	return true
}
