package rx

// Assign notices on every Set, whether or not the value changed.
type Assign[T any] struct {
	Observable

	value T
}

// NewAssign creates an Assign cell bound to the current runtime.
func NewAssign[T any](initial T) *Assign[T] {
	a := &Assign[T]{value: initial}
	a.bind()
	return a
}

// Get returns the last stored value.
func (a *Assign[T]) Get() T {
	return a.value
}

// Set stores v and notices.
func (a *Assign[T]) Set(v T) {
	if !a.alive("set") {
		return
	}

	a.value = v
	a.Notice()
}

// Clone copies the value into a cell with no subscribers.
func (a *Assign[T]) Clone() *Assign[T] {
	return NewAssign(a.value)
}

// Manual is mutated in place through Ref and published with Notice.
type Manual[T any] struct {
	Observable

	value T
}

// NewManual creates a Manual cell bound to the current runtime.
func NewManual[T any](initial T) *Manual[T] {
	m := &Manual[T]{value: initial}
	m.bind()
	return m
}

// Get returns the held value, including unpublished edits made through Ref.
func (m *Manual[T]) Get() T {
	return m.value
}

// Ref gives direct access to the held value. Nothing is noticed until Notice is called.
func (m *Manual[T]) Ref() *T {
	return &m.value
}

// Set stores v and notices.
func (m *Manual[T]) Set(v T) {
	if !m.alive("set") {
		return
	}

	m.value = v
	m.Notice()
}

// Clone copies the value into a cell with no subscribers.
func (m *Manual[T]) Clone() *Manual[T] {
	return NewManual(m.value)
}

// DirtyFunc stores writes silently and notices from Check when the value
// differs from the one seen at the previous notice, according to equal.
type DirtyFunc[T any] struct {
	Observable

	value    T
	baseline T

	equal func(a, b T) bool
}

// NewDirtyFunc creates a dirty-checked cell comparing values with equal.
func NewDirtyFunc[T any](initial T, equal func(a, b T) bool) *DirtyFunc[T] {
	d := &DirtyFunc[T]{
		value:    initial,
		baseline: initial,
		equal:    equal,
	}
	d.bind()
	return d
}

// Get returns the held value, checked or not.
func (d *DirtyFunc[T]) Get() T {
	return d.value
}

// Ref gives direct access to the held value, for field-by-field edits.
func (d *DirtyFunc[T]) Ref() *T {
	return &d.value
}

// Set stores v without noticing.
func (d *DirtyFunc[T]) Set(v T) {
	if !d.alive("set") {
		return
	}

	d.value = v
}

// Dirty reports whether the value differs from the baseline.
func (d *DirtyFunc[T]) Dirty() bool {
	return !d.equal(d.value, d.baseline)
}

// Check notices once if the value differs from the baseline, then moves the
// baseline to the current value. It reports whether it noticed.
func (d *DirtyFunc[T]) Check() bool {
	if !d.Dirty() {
		return false
	}

	if !d.alive("check") {
		return false
	}

	d.baseline = d.value
	d.Notice()
	return true
}

// Clone copies the value and the baseline into a cell with no subscribers.
func (d *DirtyFunc[T]) Clone() *DirtyFunc[T] {
	c := NewDirtyFunc(d.value, d.equal)
	c.baseline = d.baseline
	return c
}

// Dirty is DirtyFunc with exact == comparison. Floats and vectors are not
// compared with a tolerance.
type Dirty[T comparable] struct {
	DirtyFunc[T]
}

// NewDirty creates a dirty-checked cell comparing values with ==.
func NewDirty[T comparable](initial T) *Dirty[T] {
	d := &Dirty[T]{
		DirtyFunc: DirtyFunc[T]{
			value:    initial,
			baseline: initial,
			equal:    func(a, b T) bool { return a == b },
		},
	}
	d.bind()
	return d
}

// Clone copies the value and the baseline into a cell with no subscribers.
func (d *Dirty[T]) Clone() *Dirty[T] {
	c := NewDirty(d.value)
	c.baseline = d.baseline
	return c
}
