package internal

import "slices"

// Callback is the identity used by the reentrancy guard.
// Subscribing the same *Callback to several observables shares that identity.
type Callback struct {
	fn func()
}

func NewCallback(fn func()) *Callback {
	return &Callback{fn: fn}
}

// Retarget swaps the function behind cb, keeping its identity and subscriptions.
func (cb *Callback) Retarget(fn func()) {
	cb.fn = fn
}

type Tracker struct {
	// callbacks currently executing, outermost first
	chain []*Callback

	// observables whose Notice is in progress, outermost first
	noticing []*Observable

	currentOwner *Owner // for lifecycle/cleanup tracking
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	fn()
}

func (t *Tracker) CurrentOwner() *Owner {
	return t.currentOwner
}

// Active reports whether cb is on the current notification chain.
func (t *Tracker) Active(cb *Callback) bool {
	return slices.Contains(t.chain, cb)
}

// Noticing reports whether o is notifying its subscribers further up the chain.
func (t *Tracker) Noticing(o *Observable) bool {
	return slices.Contains(t.noticing, o)
}

func (t *Tracker) pushNotice(o *Observable) {
	t.noticing = append(t.noticing, o)
}

func (t *Tracker) popNotice() {
	t.noticing[len(t.noticing)-1] = nil
	t.noticing = t.noticing[:len(t.noticing)-1]
}

// Depth is the length of the current notification chain.
func (t *Tracker) Depth() int {
	return len(t.chain)
}

// Invoke runs cb with it pushed on the chain. The chain is popped on every
// exit path, panics included.
func (t *Tracker) Invoke(cb *Callback) {
	t.chain = append(t.chain, cb)
	defer func() {
		t.chain[len(t.chain)-1] = nil
		t.chain = t.chain[:len(t.chain)-1]
	}()

	if cb.fn != nil {
		cb.fn()
	}
}
