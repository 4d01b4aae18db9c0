package rx

import (
	"slices"

	"github.com/scenegraph-go/rx/internal"
)

// reaction is the subscription side shared by Reactive and Binder:
// one Observer per source, all sharing a single Callback identity.
type reaction struct {
	sources   []Source
	cb        *Callback
	observers []*Observer
}

func newReaction(sources []Source, fn func()) *reaction {
	r := &reaction{
		sources: slices.Clone(sources),
		cb:      NewCallback(fn),
	}

	r.observers = make([]*Observer, 0, len(r.sources))
	for _, src := range r.sources {
		r.observers = append(r.observers, observe(src, r.cb))
	}

	return r
}

// move hands the subscriptions over to fn's owner. r is left without any.
func (r *reaction) move(fn func()) *reaction {
	moved := &reaction{
		sources:   r.sources,
		cb:        r.cb,
		observers: make([]*Observer, 0, len(r.observers)),
	}
	for _, ob := range r.observers {
		moved.observers = append(moved.observers, ob.move())
	}
	moved.cb.cb.Retarget(fn)

	r.cb = NewCallback(nil)
	r.observers = nil
	return moved
}

func (r *reaction) close() {
	for _, ob := range r.observers {
		ob.Close()
	}
	r.observers = nil
}

func (r *reaction) active() bool {
	return slices.ContainsFunc(r.observers, (*Observer).Active)
}

// Reactive is a cell computed from its sources. It recomputes eagerly on
// every notice from any source, reading the current value of all of them,
// and then notices its own subscribers. There is no batching: two source
// writes mean two recomputations.
type Reactive[T any] struct {
	Observable

	value   T
	compute func() T

	reaction *reaction

	// drops the scope cleanup registered for r
	release func()
}

// NewReactive computes the initial value (without noticing) and subscribes
// to every source. compute must only read the sources.
func NewReactive[T any](compute func() T, sources ...Source) *Reactive[T] {
	r := &Reactive[T]{
		value:   compute(),
		compute: compute,
	}
	r.bind()
	r.reaction = newReaction(sources, r.update)
	r.own()

	return r
}

func (r *Reactive[T]) own() {
	r.release = internal.GetRuntime().AddCleanup(r.Close)
}

func (r *Reactive[T]) update() {
	r.value = r.compute()
	r.Notice()
}

// Get returns the value computed at the last source notice.
func (r *Reactive[T]) Get() T {
	return r.value
}

// Sources returns the cells r depends on.
func (r *Reactive[T]) Sources() []Source {
	return slices.Clone(r.reaction.sources)
}

// Active reports whether r still follows its sources.
func (r *Reactive[T]) Active() bool {
	return r.reaction.active()
}

// Clone returns a Reactive with the same value and compute function,
// subscribed to the same sources on its own.
func (r *Reactive[T]) Clone() *Reactive[T] {
	c := &Reactive[T]{
		value:   r.value,
		compute: r.compute,
	}
	c.bind()
	c.reaction = newReaction(r.reaction.sources, c.update)
	c.own()

	return c
}

// Move transfers the source subscriptions to a new Reactive, which starts
// without subscribers of its own. r keeps its last value and stops updating.
func (r *Reactive[T]) Move() *Reactive[T] {
	m := &Reactive[T]{
		value:   r.value,
		compute: r.compute,
	}
	m.bind()
	m.reaction = r.reaction.move(m.update)
	m.own()

	return m
}

// Close unsubscribes from the sources and disposes r. Get keeps returning
// the last value.
func (r *Reactive[T]) Close() {
	if r.release != nil {
		r.release()
		r.release = nil
	}

	r.reaction.close()
	r.Dispose()
}

// Derive1 is NewReactive over one typed source.
func Derive1[T, A any](fn func(A) T, a Value[A]) *Reactive[T] {
	return NewReactive(func() T { return fn(a.Get()) }, a)
}

// Derive2 is NewReactive over two typed sources.
func Derive2[T, A, B any](fn func(A, B) T, a Value[A], b Value[B]) *Reactive[T] {
	return NewReactive(func() T { return fn(a.Get(), b.Get()) }, a, b)
}

// Derive3 is NewReactive over three typed sources.
func Derive3[T, A, B, C any](fn func(A, B, C) T, a Value[A], b Value[B], c Value[C]) *Reactive[T] {
	return NewReactive(func() T { return fn(a.Get(), b.Get(), c.Get()) }, a, b, c)
}
