package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalReplaysCurrentValueToNewSubscribers(t *testing.T) {
	sig := NewSignal("alice")

	var seen []string
	cancel := sig.Subscribe(func(v string) {
		seen = append(seen, v)
	})
	defer cancel()

	assert.Equal(t, []string{"alice"}, seen)
}

func TestSignalNotifiesEverySubscriber(t *testing.T) {
	sig := NewSignal(false)

	var first, second []bool
	cancelFirst := sig.Subscribe(func(v bool) { first = append(first, v) })
	defer cancelFirst()

	sig.set(true)

	// Late subscriber still converges on the current value.
	cancelSecond := sig.Subscribe(func(v bool) { second = append(second, v) })
	defer cancelSecond()

	sig.set(false)

	assert.Equal(t, []bool{false, true, false}, first)
	assert.Equal(t, []bool{true, false}, second)
	assert.False(t, sig.Get())
}

func TestSignalCancelStopsNotifications(t *testing.T) {
	sig := NewSignal(0)

	var seen []int
	cancel := sig.Subscribe(func(v int) { seen = append(seen, v) })

	sig.set(1)
	cancel()
	cancel() // repeated cancel is a no-op
	sig.set(2)

	assert.Equal(t, []int{0, 1}, seen)
	assert.Equal(t, 2, sig.Get())
}

func TestSignalDeliveryOrderUnderConcurrentSet(t *testing.T) {
	sig := NewSignal(0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 200; i++ {
			sig.set(i)
		}
	}()

	// The setter emits strictly increasing values, so every subscriber must
	// observe a non-decreasing sequence: the replayed value may never arrive
	// after a newer notification.
	for i := 0; i < 50; i++ {
		var mu sync.Mutex
		var seen []int
		cancel := sig.Subscribe(func(v int) {
			mu.Lock()
			seen = append(seen, v)
			mu.Unlock()
		})

		mu.Lock()
		for j := 1; j < len(seen); j++ {
			assert.LessOrEqual(t, seen[j-1], seen[j])
		}
		mu.Unlock()
		cancel()
	}
	<-done
}

func TestSignalSubscriberMayReadSignal(t *testing.T) {
	sig := NewSignal("start")

	var observed string
	cancel := sig.Subscribe(func(string) {
		// Reading back from inside the callback must not deadlock.
		observed = sig.Get()
	})
	defer cancel()

	sig.set("next")
	assert.Equal(t, "next", observed)
}
