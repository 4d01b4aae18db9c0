package uniform

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/scenegraph-go/rx"
)

var (
	ErrDuplicate = errors.New("uniform: name already bound")
	ErrUnknown   = errors.New("uniform: name not bound")
)

// Uniform is a named value ready for upload.
type Uniform struct {
	Name  string
	Value Value
}

type entry struct {
	name     string
	get      func() Value
	observer *rx.Observer
	pending  bool
}

// Table follows bound cells and tracks which uniforms changed since the last Flush.
// Like the cells it follows, a Table is used from one goroutine.
type Table struct {
	entries []*entry // binding order
	byName  map[string]*entry

	logger *slog.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger for binding traces.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// NewTable creates an empty table.
func NewTable(opts ...Option) *Table {
	t := &Table{
		byName: make(map[string]*entry),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Bind follows src under name, converting its value with convert.
// A new binding is pending until the next Flush.
func Bind[T any](t *Table, name string, src rx.Value[T], convert func(T) Value) error {
	if _, ok := t.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}

	e := &entry{
		name:    name,
		get:     func() Value { return convert(src.Get()) },
		pending: true,
	}
	e.observer = rx.NewObserver(src, func() { e.pending = true })

	t.entries = append(t.entries, e)
	t.byName[name] = e

	t.logger.Debug("bound uniform", "name", name, "kind", e.get().Kind())
	return nil
}

// BindInt binds name to an int source.
func BindInt(t *Table, name string, src rx.Value[int]) error {
	return Bind(t, name, src, func(v int) Value { return Int(v) })
}

// BindFloat binds name to a float source.
func BindFloat(t *Table, name string, src rx.Value[float32]) error {
	return Bind(t, name, src, func(v float32) Value { return Float(v) })
}

// BindVec2 binds name to a vec2 source.
func BindVec2(t *Table, name string, src rx.Value[mgl32.Vec2]) error {
	return Bind(t, name, src, func(v mgl32.Vec2) Value { return Vec2(v) })
}

// BindVec3 binds name to a vec3 source.
func BindVec3(t *Table, name string, src rx.Value[mgl32.Vec3]) error {
	return Bind(t, name, src, func(v mgl32.Vec3) Value { return Vec3(v) })
}

// BindMat3 binds name to a mat3 source.
func BindMat3(t *Table, name string, src rx.Value[mgl32.Mat3]) error {
	return Bind(t, name, src, func(v mgl32.Mat3) Value { return Mat3(v) })
}

// BindMat4 binds name to a mat4 source.
func BindMat4(t *Table, name string, src rx.Value[mgl32.Mat4]) error {
	return Bind(t, name, src, func(v mgl32.Mat4) Value { return Mat4(v) })
}

// Unbind stops following name.
func (t *Table) Unbind(name string) error {
	e, ok := t.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	e.observer.Close()
	delete(t.byName, name)
	for i, other := range t.entries {
		if other == e {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}

	return nil
}

// Get returns the current value of name.
func (t *Table) Get(name string) (Value, bool) {
	e, ok := t.byName[name]
	if !ok {
		return nil, false
	}

	return e.get(), true
}

// Pending returns the names noticed since the last Flush, in binding order.
func (t *Table) Pending() []string {
	var names []string
	for _, e := range t.entries {
		if e.pending {
			names = append(names, e.name)
		}
	}

	return names
}

// Flush hands every pending uniform to upload, in binding order, and
// clears the pending set. It returns how many were uploaded.
func (t *Table) Flush(upload func(name string, v Value)) int {
	n := 0
	for _, e := range t.entries {
		if !e.pending {
			continue
		}

		e.pending = false
		upload(e.name, e.get())
		n++
	}

	return n
}

// Snapshot returns every bound uniform, pending or not.
func (t *Table) Snapshot() []Uniform {
	out := make([]Uniform, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, Uniform{Name: e.name, Value: e.get()})
	}

	return out
}

// Len returns the number of bound uniforms.
func (t *Table) Len() int {
	return len(t.entries)
}

// Close unbinds everything.
func (t *Table) Close() {
	for _, e := range t.entries {
		e.observer.Close()
	}

	t.entries = nil
	t.byName = make(map[string]*entry)
}
