// Package rx is a small push-based reactive value graph.
//
// Leaf cells ([Assign], [Manual], [Dirty]) hold values and notify their
// subscribers when they change. [Reactive] cells recompute from their sources
// on every source notice, and [Binder] writes a computed value into a cell it
// does not own. Propagation is synchronous and depth first: a leaf write
// returns once every dependent has been recomputed.
//
// A callback that is already running on the calling goroutine's notification
// chain is never re-entered, which makes cyclic graphs terminate.
package rx

import (
	"log/slog"

	"github.com/scenegraph-go/rx/internal"
)

// ErrDisposed is reported when a disposed cell is written, noticed or subscribed to.
var ErrDisposed = internal.ErrDisposed

// SubscriptionID identifies a subscription on one Observable. Zero is never issued.
type SubscriptionID uint64

// Source is anything an Observer can subscribe to.
type Source interface {
	Subscribe(fn func()) SubscriptionID
	SubscribeCallback(cb *Callback) SubscriptionID
	Unsubscribe(id SubscriptionID)
}

// Value is a readable Source.
type Value[T any] interface {
	Source
	Get() T
}

// Target is a cell a Binder can write into.
type Target[T any] interface {
	Set(v T)
}

// Callback is a subscriber identity. Subscribing the same Callback to several
// sources makes them share one entry on the reentrancy guard.
type Callback struct {
	cb *internal.Callback
}

// NewCallback wraps fn in a new identity.
func NewCallback(fn func()) *Callback {
	return &Callback{internal.NewCallback(fn)}
}

type config struct {
	logger *slog.Logger
	strict bool
}

// Option configures a Runtime.
type Option func(*config)

// WithLogger sets the logger used for debug traces and misuse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithStrict makes use of a disposed cell panic with an error wrapping
// ErrDisposed instead of logging a warning.
func WithStrict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// Runtime holds the notification chain and the misuse policy.
// Cells bind to the runtime that is current when they are created.
type Runtime struct {
	rt *internal.Runtime
}

// NewRuntime creates a runtime. It is not current anywhere until Run is called.
func NewRuntime(opts ...Option) *Runtime {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Runtime{internal.NewRuntime(cfg.logger, cfg.strict)}
}

// Default returns the calling goroutine's runtime.
func Default() *Runtime {
	return &Runtime{internal.GetRuntime()}
}

// Run makes r the calling goroutine's runtime while fn runs.
func (r *Runtime) Run(fn func()) {
	internal.WithRuntime(r.rt, fn)
}

// Logger returns the logger used for debug traces and misuse warnings.
func (r *Runtime) Logger() *slog.Logger { return r.rt.Logger() }

// Strict reports whether use of a disposed cell panics.
func (r *Runtime) Strict() bool { return r.rt.Strict() }
