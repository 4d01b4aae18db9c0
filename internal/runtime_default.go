//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the runtime bound to the calling goroutine,
// creating one with default settings on first use.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime(nil, false)
	runtimes.Store(gid, r)
	return r
}

// WithRuntime binds r to the calling goroutine while fn runs.
func WithRuntime(r *Runtime, fn func()) {
	gid := goid.Get()

	prev, hadPrev := runtimes.Load(gid)
	runtimes.Store(gid, r)
	defer func() {
		if hadPrev {
			runtimes.Store(gid, prev)
		} else {
			runtimes.Delete(gid)
		}
	}()

	fn()
}
