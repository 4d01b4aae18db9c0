package rx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReactive(t *testing.T) {
	add := func(a, b int) int { return a + b }

	t.Run("derives value from sources", func(t *testing.T) {
		a := NewAssign(1)
		b := NewAssign(0)
		c := Derive2(add, a, b)

		assert.Equal(t, 1, c.Get())

		b.Set(2)
		assert.Equal(t, 3, c.Get())

		a.Set(3)
		assert.Equal(t, 5, c.Get())
	})

	t.Run("initial compute does not notice", func(t *testing.T) {
		log := []string{}

		a := NewAssign(1)
		c := NewReactive(func() int {
			log = append(log, "computing")
			return a.Get() * 2
		}, a)
		NewObserver(c, func() { log = append(log, fmt.Sprintf("noticed %d", c.Get())) })

		a.Set(2)

		assert.Equal(t, []string{
			"computing",
			"computing",
			"noticed 4",
		}, log)
	})

	t.Run("recomputes once per source notice", func(t *testing.T) {
		log := []int{}

		a := NewAssign(0)
		b := NewAssign(0)
		c := NewReactive(func() int {
			v := a.Get() + b.Get()
			log = append(log, v)
			return v
		}, a, b)

		a.Set(1)
		b.Set(2)

		// the second recompute sees both new values
		assert.Equal(t, []int{0, 1, 3}, log)
		assert.Equal(t, 3, c.Get())
	})

	t.Run("chained", func(t *testing.T) {
		count := NewAssign(1)
		double := Derive1(func(v int) int { return v * 2 }, count)
		plustwo := Derive1(func(v int) int { return v + 2 }, double)

		count.Set(10)

		assert.Equal(t, 20, double.Get())
		assert.Equal(t, 22, plustwo.Get())
	})

	t.Run("copy follows the same sources", func(t *testing.T) {
		a := NewAssign(3)
		b := NewAssign(2)
		c := Derive2(add, a, b)

		copied := c.Clone()
		assert.Equal(t, c.Get(), copied.Get())

		b.Set(5)
		assert.Equal(t, 8, copied.Get())
		assert.Equal(t, 8, c.Get())

		copied.Close()
		b.Set(1)
		assert.Equal(t, 4, c.Get())
		assert.Equal(t, 8, copied.Get())
	})

	t.Run("move transfers the subscriptions", func(t *testing.T) {
		a := NewAssign(3)
		b := NewAssign(2)
		c := Derive2(add, a, b)
		b.Set(5)

		moved := c.Move()
		assert.Equal(t, 8, moved.Get())
		assert.False(t, c.Active())
		assert.True(t, moved.Active())

		b.Set(6)
		assert.Equal(t, 9, moved.Get())
		assert.NotEqual(t, 9, c.Get())

		// sources keep one subscription each
		assert.Equal(t, 1, a.Subscribers())
		assert.Equal(t, 1, b.Subscribers())
	})

	t.Run("moved reactive starts without subscribers", func(t *testing.T) {
		count := 0

		a := NewAssign(0)
		c := Derive1(func(v int) int { return v }, a)
		NewObserver(c, func() { count++ })

		moved := c.Move()
		a.Set(1)

		assert.Equal(t, 0, count)
		assert.Equal(t, 0, moved.Subscribers())
	})

	t.Run("zero sources is a constant", func(t *testing.T) {
		c := NewReactive(func() string { return "const" })

		assert.Equal(t, "const", c.Get())
		assert.False(t, c.Active())
		assert.Empty(t, c.Sources())
	})

	t.Run("close stops updates", func(t *testing.T) {
		a := NewAssign(1)
		c := Derive1(func(v int) int { return v * 10 }, a)

		c.Close()
		a.Set(2)

		assert.Equal(t, 10, c.Get())
		assert.Equal(t, 0, a.Subscribers())
		assert.True(t, c.Disposed())
	})

	t.Run("diamond sees a transient mix", func(t *testing.T) {
		log := []int{}

		a := NewAssign(0)
		x := Derive1(func(v int) int { return v * 2 }, a)
		y := Derive1(func(v int) int { return v * 3 }, a)
		z := Derive2(add, x, y)
		NewObserver(z, func() { log = append(log, z.Get()) })

		a.Set(1)

		// x is registered first, so z first sees new x with old y
		assert.Equal(t, []int{2, 5}, log)
	})

	t.Run("cyclic reactives terminate", func(t *testing.T) {
		a := NewAssign(1)
		b := NewAssign(0)

		toB := NewBinder[int](b, func() int { return a.Get() + 1 }, a)
		toA := NewBinder[int](a, func() int { return b.Get() + 1 }, b)
		defer toB.Close()
		defer toA.Close()

		assert.Equal(t, 3, a.Get())
		assert.Equal(t, 4, b.Get())

		a.Set(10)

		assert.Equal(t, 11, b.Get())
		assert.Equal(t, 10, a.Get())
	})
}
