//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime(nil, false)
	})

	return globalRuntime
}

// WithRuntime swaps the global runtime while fn runs (wasm is single threaded).
func WithRuntime(r *Runtime, fn func()) {
	prev := GetRuntime()
	globalRuntime = r
	defer func() { globalRuntime = prev }()

	fn()
}
