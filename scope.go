package rx

import "github.com/scenegraph-go/rx/internal"

// Scope owns the observers, reactives and binders created inside Run and
// closes them, newest first, when disposed.
type Scope struct {
	owner *internal.Owner
}

// NewScope creates a scope, nested in the current one if any.
func NewScope() *Scope {
	return &Scope{
		internal.GetRuntime().NewOwner(),
	}
}

// Run a function within this scope.
func (s *Scope) Run(fn func() error) error {
	var err error
	s.owner.Run(func() { err = fn() })
	return err
}

// Dispose nested scopes, then run this scope's cleanups.
func (s *Scope) Dispose() { s.owner.Dispose() }

// Disposed reports whether Dispose has run.
func (s *Scope) Disposed() bool { return s.owner.Disposed() }

// OnCleanup adds a function to be called when the scope is disposed.
func (s *Scope) OnCleanup(fn func()) { s.owner.OnCleanup(fn) }

// OnError adds a function to be called when Run panics.
// Without any, the panic propagates as usual.
func (s *Scope) OnError(fn func(any)) { s.owner.OnError(fn) }

// OnCleanup registers fn on the current scope. Outside any scope it is dropped.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}
