package rx

import (
	"slices"

	"github.com/scenegraph-go/rx/internal"
)

// Binder writes a computed value into a target cell it does not own,
// immediately and again on every notice from any source. Several binders
// may share one target; the last write wins.
//
// A binder does not write a target that is notifying further up the chain:
// the value that target is announcing (a direct write, or another binder's
// result) is kept, even when the target is one of the binder's own sources.
type Binder[T any] struct {
	target  Target[T]
	compute func() T

	reaction *reaction

	// drops the scope cleanup registered for b
	release func()
}

// NewBinder binds target to compute over sources and writes it once.
func NewBinder[T any](target Target[T], compute func() T, sources ...Source) *Binder[T] {
	b := &Binder[T]{
		target:  target,
		compute: compute,
	}
	b.reaction = newReaction(sources, b.update)
	b.own()

	b.update()
	return b
}

func (b *Binder[T]) own() {
	b.release = internal.GetRuntime().AddCleanup(b.Close)
}

func (b *Binder[T]) update() {
	if t, ok := b.target.(interface{ noticing() bool }); ok && t.noticing() {
		return
	}

	b.target.Set(b.compute())
}

// Target returns the cell b writes into.
func (b *Binder[T]) Target() Target[T] {
	return b.target
}

// Sources returns the cells b depends on.
func (b *Binder[T]) Sources() []Source {
	return slices.Clone(b.reaction.sources)
}

// Active reports whether b still follows its sources.
func (b *Binder[T]) Active() bool {
	return b.reaction.active()
}

// Clone binds the same target to the same sources with independent subscriptions.
// It does not write until a source notices.
func (b *Binder[T]) Clone() *Binder[T] {
	c := &Binder[T]{
		target:  b.target,
		compute: b.compute,
	}
	c.reaction = newReaction(b.reaction.sources, c.update)
	c.own()

	return c
}

// Move transfers the subscriptions to a new Binder owned by the current scope. b stops writing.
func (b *Binder[T]) Move() *Binder[T] {
	m := &Binder[T]{
		target:  b.target,
		compute: b.compute,
	}
	m.reaction = b.reaction.move(m.update)
	m.own()

	b.disown()
	return m
}

// Close unsubscribes from the sources. The target keeps its last value.
func (b *Binder[T]) Close() {
	b.disown()
	b.reaction.close()
}

func (b *Binder[T]) disown() {
	if b.release != nil {
		b.release()
		b.release = nil
	}
}

// Bind1 is NewBinder over one typed source.
func Bind1[T, A any](target Target[T], fn func(A) T, a Value[A]) *Binder[T] {
	return NewBinder(target, func() T { return fn(a.Get()) }, a)
}

// Bind2 is NewBinder over two typed sources.
func Bind2[T, A, B any](target Target[T], fn func(A, B) T, a Value[A], b Value[B]) *Binder[T] {
	return NewBinder(target, func() T { return fn(a.Get(), b.Get()) }, a, b)
}

// Bind3 is NewBinder over three typed sources.
func Bind3[T, A, B, C any](target Target[T], fn func(A, B, C) T, a Value[A], b Value[B], c Value[C]) *Binder[T] {
	return NewBinder(target, func() T { return fn(a.Get(), b.Get(), c.Get()) }, a, b, c)
}
