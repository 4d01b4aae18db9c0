package rx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservable(t *testing.T) {
	t.Run("notices in registration order", func(t *testing.T) {
		log := []string{}

		o := NewObservable()
		o.Subscribe(func() { log = append(log, "first") })
		o.Subscribe(func() { log = append(log, "second") })
		o.Subscribe(func() { log = append(log, "third") })

		o.Notice()

		assert.Equal(t, []string{"first", "second", "third"}, log)
	})

	t.Run("ids are unique and unsubscribe ignores unknown ids", func(t *testing.T) {
		o := NewObservable()
		a := o.Subscribe(func() {})
		b := o.Subscribe(func() {})

		assert.NotZero(t, a)
		assert.NotEqual(t, a, b)

		o.Unsubscribe(a)
		o.Unsubscribe(a)
		o.Unsubscribe(12345)
		assert.Equal(t, 1, o.Subscribers())

		c := o.Subscribe(func() {})
		assert.NotEqual(t, a, c)
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var o Observable
		count := 0

		o.Subscribe(func() { count++ })
		o.Notice()

		assert.Equal(t, 1, count)
	})

	t.Run("unsubscribed during notice is not called", func(t *testing.T) {
		log := []string{}

		o := NewObservable()
		var second SubscriptionID
		o.Subscribe(func() {
			log = append(log, "first")
			o.Unsubscribe(second)
		})
		second = o.Subscribe(func() { log = append(log, "second") })

		o.Notice()

		assert.Equal(t, []string{"first"}, log)
	})

	t.Run("subscribed during notice waits for the next one", func(t *testing.T) {
		log := []string{}

		o := NewObservable()
		o.Subscribe(func() {
			log = append(log, "first")
			o.Subscribe(func() { log = append(log, "late") })
		})

		o.Notice()
		assert.Equal(t, []string{"first"}, log)
	})

	t.Run("cycle terminates", func(t *testing.T) {
		log := []string{}

		a := NewAssign(0)
		b := NewAssign(0)

		NewObserver(a, func() {
			log = append(log, "a")
			b.Set(b.Get() + 1)
		})
		NewObserver(b, func() {
			log = append(log, "b")
			a.Set(a.Get() + 1)
		})

		a.Set(1)

		assert.Equal(t, []string{"a", "b"}, log)
		assert.Equal(t, 2, a.Get())
		assert.Equal(t, 1, b.Get())
	})

	t.Run("self notice is suppressed", func(t *testing.T) {
		count := 0

		a := NewAssign(0)
		NewObserver(a, func() {
			count++
			a.Set(a.Get() + 1)
		})

		a.Set(10)

		assert.Equal(t, 1, count)
		assert.Equal(t, 11, a.Get())
	})

	t.Run("guard is per callback identity", func(t *testing.T) {
		log := []string{}

		a := NewObservable()
		b := NewObservable()

		shared := NewCallback(func() {
			log = append(log, "shared")
			b.Notice()
		})
		a.SubscribeCallback(shared)
		b.SubscribeCallback(shared)
		b.Subscribe(func() { log = append(log, "other") })

		a.Notice()

		// b's notice skips the shared callback, already running for a
		assert.Equal(t, []string{"shared", "other"}, log)
	})

	t.Run("chain is unwound after a panic", func(t *testing.T) {
		count := 0

		a := NewAssign(0)
		NewObserver(a, func() {
			count++
			if a.Get() == 1 {
				panic("boom")
			}
		})

		assert.Panics(t, func() { a.Set(1) })

		a.Set(2)
		assert.Equal(t, 2, count)
	})

	t.Run("logs skipped reentries", func(t *testing.T) {
		var buf bytes.Buffer
		rt := NewRuntime(WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))

		rt.Run(func() {
			a := NewAssign(0)
			NewObserver(a, func() { a.Set(a.Get() + 1) })
			a.Set(1)
		})

		require.Contains(t, buf.String(), "skipping reentrant notice")
	})
}

func TestObserver(t *testing.T) {
	t.Run("close unsubscribes once", func(t *testing.T) {
		count := 0

		a := NewAssign(0)
		ob := NewObserver(a, func() { count++ })
		assert.True(t, ob.Active())

		a.Set(1)
		ob.Close()
		ob.Close()
		a.Set(2)

		assert.Equal(t, 1, count)
		assert.False(t, ob.Active())
		assert.Equal(t, 0, a.Subscribers())
	})

	t.Run("move transfers the subscription", func(t *testing.T) {
		count := 0

		a := NewAssign(0)
		ob := NewObserver(a, func() { count++ })
		other := NewObserver(a, func() {})

		moved := ob.Move()
		assert.False(t, ob.Active())
		assert.True(t, moved.Active())

		// closing the moved-from observer must not drop the subscription
		ob.Close()
		a.Set(1)
		assert.Equal(t, 1, count)

		moved.Close()
		a.Set(2)
		assert.Equal(t, 1, count)
		assert.Equal(t, 1, a.Subscribers())

		other.Close()
	})

	t.Run("subscribing to a disposed cell is inert", func(t *testing.T) {
		a := NewAssign(0)
		a.Dispose()

		ob := NewObserver(a, func() {})
		assert.False(t, ob.Active())
		ob.Close()
	})
}
