package internal

import (
	"iter"
	"slices"
)

type cleanup struct {
	fn func() // nil once removed or run
}

type Owner struct {
	rt *Runtime

	// cleanup functions to be called when the owner is disposed
	cleanups []*cleanup

	// panic error handlers
	catchers []func(any)

	disposed bool

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

// NewOwner creates an owner, attached as a child of the current owner if there is one.
func (r *Runtime) NewOwner() *Owner {
	o := &Owner{
		rt:       r,
		cleanups: make([]*cleanup, 0),
	}

	if parent := r.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

func (o *Owner) Run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if len(o.catchers) == 0 {
				panic(r)
			}

			for _, catcher := range o.catchers {
				catcher(r)
			}
		}
	}()

	WithRuntime(o.rt, func() {
		o.rt.tracker.RunWithOwner(o, fn)
	})
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (parent *Owner) removeChild(child *Owner) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else if parent.childrenHead == child {
		parent.childrenHead = child.nextSibling
	}

	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	}

	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// Children iterates over the children, most recently added first.
func (n *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := n.childrenHead

		for child != nil {
			next := child.nextSibling
			if !yield(child) {
				return
			}

			child = next
		}
	}
}

// Dispose disposes the children, then runs the cleanups in reverse registration order.
func (n *Owner) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true

	n.DisposeChildren()

	// detached first so cleanups that remove themselves do not touch the list being run
	cleanups := n.cleanups
	n.cleanups = nil

	for i := len(cleanups) - 1; i >= 0; i-- {
		if fn := cleanups[i].fn; fn != nil {
			cleanups[i].fn = nil
			fn()
		}
	}

	if n.parent != nil {
		n.parent.removeChild(n)
	}
}

func (n *Owner) DisposeChildren() {
	for child := range n.Children() {
		child.Dispose()
	}
	n.childrenHead = nil
}

func (n *Owner) Disposed() bool {
	return n.disposed
}

// OnCleanup registers fn to run on Dispose. On an already disposed owner fn runs immediately.
func (n *Owner) OnCleanup(fn func()) {
	n.AddCleanup(fn)
}

// AddCleanup is OnCleanup returning a function that unregisters fn without running it.
func (n *Owner) AddCleanup(fn func()) (remove func()) {
	if n.disposed {
		fn()
		return func() {}
	}

	c := &cleanup{fn: fn}
	n.cleanups = append(n.cleanups, c)

	return func() {
		if c.fn == nil {
			return
		}

		c.fn = nil
		n.cleanups = slices.DeleteFunc(n.cleanups, func(other *cleanup) bool { return other == c })
	}
}

// Cleanups returns the number of registered cleanups.
func (n *Owner) Cleanups() int {
	return len(n.cleanups)
}

func (n *Owner) OnError(fn func(any)) {
	n.catchers = append(n.catchers, fn)
}
