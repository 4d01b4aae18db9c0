package internal

import (
	"slices"
	"sync"
)

type subscription struct {
	id uint64
	cb *Callback
}

// Observable is the untyped notification core: an ordered registry of
// callbacks and a guarded Notice.
type Observable struct {
	mu sync.Mutex

	rt *Runtime

	// last issued id, ids start at 1 and are never reused
	lastID uint64

	// in registration order
	subs []subscription

	disposed bool
}

func (r *Runtime) NewObservable() *Observable {
	return &Observable{rt: r}
}

func (o *Observable) Runtime() *Runtime { return o.rt }

// Subscribe registers cb and returns its id. It returns 0 if o is disposed.
func (o *Observable) Subscribe(cb *Callback) uint64 {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		o.rt.Misuse("subscribe")
		return 0
	}

	o.lastID++
	id := o.lastID
	o.subs = append(o.subs, subscription{id: id, cb: cb})
	o.mu.Unlock()

	return id
}

// Unsubscribe removes the subscription with the given id. Unknown ids are ignored.
func (o *Observable) Unsubscribe(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.subs = slices.DeleteFunc(o.subs, func(s subscription) bool { return s.id == id })
}

func (o *Observable) subscribed(id uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return slices.ContainsFunc(o.subs, func(s subscription) bool { return s.id == id })
}

// Len returns the number of active subscriptions.
func (o *Observable) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.subs)
}

// Notice invokes every registered callback in registration order.
// Callbacks already on the calling goroutine's notification chain are skipped.
func (o *Observable) Notice() {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		o.rt.Misuse("notice")
		return
	}

	// clonning so callbacks can (un)subscribe during the notice
	subs := slices.Clone(o.subs)
	o.mu.Unlock()

	tracker := GetRuntime().Tracker()
	tracker.pushNotice(o)
	defer tracker.popNotice()

	for _, sub := range subs {
		// removed by an earlier callback of this same notice
		if !o.subscribed(sub.id) {
			continue
		}

		if tracker.Active(sub.cb) {
			o.rt.logger.Debug("skipping reentrant notice",
				"subscription", sub.id,
				"depth", tracker.Depth(),
			)
			continue
		}

		tracker.Invoke(sub.cb)
	}
}

// Dispose drops every subscription and marks o as dead.
func (o *Observable) Dispose() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.disposed = true
	o.subs = nil
}

func (o *Observable) Disposed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.disposed
}
