package bus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()

	var got1, got2 []Invalidation
	b.Subscribe(func(ev Invalidation) { got1 = append(got1, ev) })
	b.Subscribe(func(ev Invalidation) { got2 = append(got2, ev) })

	ev := Invalidation{Reason: "token rejected", At: time.Now()}
	b.Publish(ev)

	require.Len(t, got1, 1)
	require.Len(t, got2, 1)
	assert.Equal(t, "token rejected", got1[0].Reason)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()

	var calls int
	cancel := b.Subscribe(func(Invalidation) { calls++ })

	b.Publish(Invalidation{Reason: "one"})
	cancel()
	cancel() // idempotent
	b.Publish(Invalidation{Reason: "two"})

	assert.Equal(t, 1, calls)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()

	var calls int
	b.Subscribe(func(Invalidation) { calls++ })

	b.Close()
	b.Publish(Invalidation{Reason: "late"})

	assert.Zero(t, calls)
}

func TestSubscribeFromHandlerDoesNotDeadlock(t *testing.T) {
	b := New()

	done := make(chan struct{})
	b.Subscribe(func(Invalidation) {
		b.Subscribe(func(Invalidation) {})
		close(done)
	})

	b.Publish(Invalidation{Reason: "nested"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish deadlocked while handler subscribed")
	}
}

func TestConcurrentPublish(t *testing.T) {
	b := New()

	var mu sync.Mutex
	var calls int
	b.Subscribe(func(Invalidation) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(Invalidation{Reason: "race"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, calls)
}
