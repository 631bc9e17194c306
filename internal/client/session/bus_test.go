package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	b := NewBus()
	var got1, got2 []string
	b.Subscribe(func(ev AuthChanged) { got1 = append(got1, ev.Email) })
	b.Subscribe(func(ev AuthChanged) { got2 = append(got2, ev.Email) })

	b.Publish(AuthChanged{Email: "a@b.com"})

	require.Equal(t, []string{"a@b.com"}, got1)
	require.Equal(t, []string{"a@b.com"}, got2)
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	var got []string
	unsub := b.Subscribe(func(ev AuthChanged) { got = append(got, ev.Email) })

	b.Publish(AuthChanged{Email: "first"})
	unsub()
	unsub() // double unsubscribe is harmless
	b.Publish(AuthChanged{Email: "second"})

	require.Equal(t, []string{"first"}, got)
}

func TestBusSubscriberMayResubscribeDuringCallback(t *testing.T) {
	b := NewBus()
	var calls int
	var unsub func()
	unsub = b.Subscribe(func(AuthChanged) {
		calls++
		unsub()
		b.Subscribe(func(AuthChanged) { calls++ })
	})

	b.Publish(AuthChanged{})
	b.Publish(AuthChanged{})
	require.Equal(t, 2, calls)
}

func TestBusConcurrentPublishAndSubscribe(t *testing.T) {
	b := NewBus()
	var mu sync.Mutex
	count := 0
	b.Subscribe(func(AuthChanged) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Publish(AuthChanged{})
		}()
		go func() {
			defer wg.Done()
			unsub := b.Subscribe(func(AuthChanged) {})
			unsub()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 10, count)
}
