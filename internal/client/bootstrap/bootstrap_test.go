package bootstrap

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/client/session"
)

func newStore(t *testing.T) *session.FileStore {
	t.Helper()
	return session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestEstablishPersistsAllFieldsThenFiresOnce(t *testing.T) {
	store := newStore(t)
	bus := session.NewBus()

	// before any auth flow, no session exists
	_, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok)

	var events []session.AuthChanged
	var sessionAtEventTime session.Session
	bus.Subscribe(func(ev session.AuthChanged) {
		events = append(events, ev)
		// ordering guarantee: by the time the event fires, the full
		// session must already be on disk
		s, ok, err := store.Load()
		require.NoError(t, err)
		require.True(t, ok)
		sessionAtEventTime = s
	})

	b := New(store, bus, nil)
	require.NoError(t, b.Establish("tok-1", "a@b.com"))

	require.Len(t, events, 1)
	require.Equal(t, "a@b.com", events[0].Email)
	require.Equal(t, "tok-1", sessionAtEventTime.Token)
	require.Equal(t, "1", sessionAtEventTime.Registered)
	require.Equal(t, "a@b.com", sessionAtEventTime.Email)
}

func TestEstablishRejectsPartialCredentialsWithoutEvent(t *testing.T) {
	store := newStore(t)
	bus := session.NewBus()
	fired := 0
	bus.Subscribe(func(session.AuthChanged) { fired++ })

	b := New(store, bus, nil)
	require.ErrorIs(t, b.Establish("", "a@b.com"), session.ErrIncomplete)
	require.ErrorIs(t, b.Establish("tok-1", ""), session.ErrIncomplete)

	require.Zero(t, fired, "no event on failed save")
	_, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok)
}

type failingStore struct{ err error }

func (f *failingStore) Save(session.Session) error { return f.err }
func (f *failingStore) Load() (session.Session, bool, error) {
	return session.Session{}, false, nil
}
func (f *failingStore) Clear() error { return f.err }

func TestEstablishPropagatesStoreErrorWithoutEvent(t *testing.T) {
	bus := session.NewBus()
	fired := 0
	bus.Subscribe(func(session.AuthChanged) { fired++ })

	boom := errors.New("disk full")
	b := New(&failingStore{err: boom}, bus, nil)
	require.ErrorIs(t, b.Establish("tok-1", "a@b.com"), boom)
	require.Zero(t, fired)
}

func TestEstablishOverwritesPriorSession(t *testing.T) {
	store := newStore(t)
	bus := session.NewBus()
	var events []session.AuthChanged
	bus.Subscribe(func(ev session.AuthChanged) { events = append(events, ev) })

	b := New(store, bus, nil)
	require.NoError(t, b.Establish("tok-1", "a@b.com"))
	require.NoError(t, b.Establish("tok-2", "c@d.com"))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-2", got.Token)
	require.Equal(t, "c@d.com", got.Email)
	require.Len(t, events, 2, "one event per successful flow")
}

func TestEstablishNavigatesHomeAfterDelay(t *testing.T) {
	store := newStore(t)
	navigated := make(chan string, 1)

	b := New(store, session.NewBus(), NavigatorFunc(func(path string) { navigated <- path }))
	b.Delay = 10 * time.Millisecond

	require.NoError(t, b.Establish("tok-1", "a@b.com"))

	select {
	case <-navigated:
		t.Fatal("navigated before the delay elapsed")
	default:
	}

	select {
	case path := <-navigated:
		require.Equal(t, "/", path)
	case <-time.After(time.Second):
		t.Fatal("never navigated")
	}
}

func TestClearPublishesEmptyIdentity(t *testing.T) {
	store := newStore(t)
	bus := session.NewBus()
	var events []session.AuthChanged
	bus.Subscribe(func(ev session.AuthChanged) { events = append(events, ev) })

	b := New(store, bus, nil)
	require.NoError(t, b.Establish("tok-1", "a@b.com"))
	require.NoError(t, b.Clear())

	require.Len(t, events, 2)
	require.Empty(t, events[1].Email)

	_, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok)
}
