package core

import (
	"errors"
	"testing"
	"time"
)

// fakeClock is a controllable time source for the store.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration, max int) (*SessionStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	st := NewSessionStore(ttl, max, DefaultViewOptions())
	st.now = clock.now
	return st, clock
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	st, _ := newTestStore(time.Hour, 0)

	s := st.Create()
	if s.ID == "" {
		t.Fatal("Create() returned an empty ID")
	}
	got, err := st.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != s {
		t.Error("Get() returned a different session")
	}
	if _, err := st.Get("unknown"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrSessionNotFound", err)
	}
	if other := st.Create(); other.ID == s.ID {
		t.Error("Create() reused a session ID")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	st, clock := newTestStore(time.Hour, 0)
	s := st.Create()

	clock.advance(50 * time.Minute)
	if _, err := st.Get(s.ID); err != nil {
		t.Fatalf("Get() before TTL error = %v", err)
	}

	// Get refreshed the session, so the window slides.
	clock.advance(50 * time.Minute)
	if _, err := st.Get(s.ID); err != nil {
		t.Fatalf("Get() after refresh error = %v", err)
	}

	clock.advance(61 * time.Minute)
	if _, err := st.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after TTL error = %v, want ErrSessionNotFound", err)
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expired Get", st.Len())
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	st, clock := newTestStore(time.Hour, 0)
	old := st.Create()
	clock.advance(45 * time.Minute)
	fresh := st.Create()
	clock.advance(30 * time.Minute)

	if removed := st.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if _, err := st.Get(old.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("old session still present: %v", err)
	}
	if _, err := st.Get(fresh.ID); err != nil {
		t.Errorf("fresh session removed: %v", err)
	}
}

func TestSessionStore_SweepWithoutTTL(t *testing.T) {
	st, clock := newTestStore(0, 0)
	st.Create()
	clock.advance(1000 * time.Hour)

	if removed := st.Sweep(); removed != 0 {
		t.Errorf("Sweep() = %d, want 0 without a TTL", removed)
	}
}

func TestSessionStore_EvictsOldest(t *testing.T) {
	st, clock := newTestStore(time.Hour, 2)
	first := st.Create()
	clock.advance(time.Minute)
	second := st.Create()
	clock.advance(time.Minute)

	// Touch first so second becomes the least recently seen.
	if _, err := st.Get(first.ID); err != nil {
		t.Fatal(err)
	}
	clock.advance(time.Minute)
	third := st.Create()

	if st.Len() != 2 {
		t.Errorf("Len() = %d, want 2", st.Len())
	}
	if _, err := st.Get(second.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second session not evicted: %v", err)
	}
	for _, s := range []*Session{first, third} {
		if _, err := st.Get(s.ID); err != nil {
			t.Errorf("session %s evicted: %v", s.ID, err)
		}
	}
}

func TestSessionStore_GetOrCreate(t *testing.T) {
	st, _ := newTestStore(time.Hour, 0)

	s, created := st.GetOrCreate("")
	if !created {
		t.Error("GetOrCreate(\"\") created = false")
	}
	again, created := st.GetOrCreate(s.ID)
	if created || again != s {
		t.Errorf("GetOrCreate(existing) = %p, %v, want %p, false", again, created, s)
	}
	if _, created := st.GetOrCreate("stale-cookie"); !created {
		t.Error("GetOrCreate(unknown) created = false")
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d, want 2", st.Len())
	}
}

func TestSessionStore_SweepDoesNotWaitOnBusySession(t *testing.T) {
	st, clock := newTestStore(time.Hour, 0)
	busy := st.Create()
	idle := st.Create()
	clock.advance(2 * time.Hour)
	busy.Touch(clock.now())

	// Hold the session lock the way a long View() does.
	busy.mu.Lock()
	defer busy.mu.Unlock()

	done := make(chan int, 1)
	go func() { done <- st.Sweep() }()

	select {
	case removed := <-done:
		if removed != 1 {
			t.Errorf("Sweep() = %d, want 1", removed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Sweep() blocked on a locked session")
	}
	if _, err := st.Get(idle.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(idle) error = %v, want ErrSessionNotFound", err)
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
}
