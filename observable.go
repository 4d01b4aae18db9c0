package rx

import (
	"sync"

	"github.com/scenegraph-go/rx/internal"
)

// noCopy trips go vet's copylocks check. Use Clone to copy a cell.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Observable is the notification core embedded by every cell.
// Constructors bind it to the runtime current at creation. The zero value is
// also usable and binds to the runtime of the goroutine that first uses it.
type Observable struct {
	_ noCopy

	once sync.Once
	obs  *internal.Observable
}

// NewObservable creates a value-less observable.
func NewObservable() *Observable {
	o := &Observable{}
	o.bind()
	return o
}

// bind attaches o to the current runtime. Called by constructors only.
func (o *Observable) bind() {
	o.obs = internal.GetRuntime().NewObservable()
}

func (o *Observable) core() *internal.Observable {
	o.once.Do(func() {
		if o.obs == nil {
			o.bind()
		}
	})

	return o.obs
}

// Subscribe registers fn under a fresh Callback identity.
func (o *Observable) Subscribe(fn func()) SubscriptionID {
	return o.SubscribeCallback(NewCallback(fn))
}

// SubscribeCallback registers cb. It returns 0 if the observable is disposed.
func (o *Observable) SubscribeCallback(cb *Callback) SubscriptionID {
	return SubscriptionID(o.core().Subscribe(cb.cb))
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (o *Observable) Unsubscribe(id SubscriptionID) {
	o.core().Unsubscribe(uint64(id))
}

// Notice invokes every subscriber in registration order, skipping those
// already running on this goroutine's notification chain.
func (o *Observable) Notice() {
	o.core().Notice()
}

// Subscribers returns the number of active subscriptions.
func (o *Observable) Subscribers() int {
	return o.core().Len()
}

// Dispose drops all subscriptions. Further writes, notices and subscriptions
// are reported as misuse by the runtime.
func (o *Observable) Dispose() {
	o.core().Dispose()
}

// Disposed reports whether Dispose was called.
func (o *Observable) Disposed() bool {
	return o.core().Disposed()
}

// alive reports whether o can still be used, reporting misuse otherwise.
func (o *Observable) alive(op string) bool {
	c := o.core()
	if c.Disposed() {
		c.Runtime().Misuse(op)
		return false
	}

	return true
}

// noticing reports whether o is notifying further up the calling goroutine's chain.
func (o *Observable) noticing() bool {
	return internal.GetRuntime().Tracker().Noticing(o.core())
}

// Observer is a scoped subscription. Close unsubscribes exactly once.
// Observers created inside Scope.Run are closed when the scope is disposed.
type Observer struct {
	_ noCopy

	src Source
	id  SubscriptionID

	// drops the scope cleanup registered for this observer
	release func()
}

// NewObserver subscribes fn to src.
func NewObserver(src Source, fn func()) *Observer {
	return NewCallbackObserver(src, NewCallback(fn))
}

// NewCallbackObserver subscribes cb to src.
func NewCallbackObserver(src Source, cb *Callback) *Observer {
	ob := observe(src, cb)
	ob.own()
	return ob
}

// observe subscribes without attaching to the current scope.
func observe(src Source, cb *Callback) *Observer {
	return &Observer{
		src: src,
		id:  src.SubscribeCallback(cb),
	}
}

// own registers ob with the current scope.
func (ob *Observer) own() {
	ob.release = internal.GetRuntime().AddCleanup(ob.Close)
}

// Close unsubscribes. Calling it again is a no-op.
func (ob *Observer) Close() {
	ob.disown()

	if ob.src == nil {
		return
	}

	ob.src.Unsubscribe(ob.id)
	ob.src = nil
}

func (ob *Observer) disown() {
	if ob.release != nil {
		ob.release()
		ob.release = nil
	}
}

// Active reports whether ob still holds its subscription.
func (ob *Observer) Active() bool {
	return ob.src != nil && ob.id != 0
}

// Move transfers the subscription to a new Observer owned by the current
// scope. ob becomes inert.
func (ob *Observer) Move() *Observer {
	moved := ob.move()
	moved.own()
	return moved
}

func (ob *Observer) move() *Observer {
	ob.disown()

	moved := &Observer{src: ob.src, id: ob.id}
	ob.src = nil
	ob.id = 0
	return moved
}
