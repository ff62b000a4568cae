package inactivity

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type memoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *memoryStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *memoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

type recorder struct {
	mu      sync.Mutex
	routes  []string
	notices []string
}

func (r *recorder) navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, msg)
}

func (r *recorder) snapshot() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...), append([]string(nil), r.notices...)
}

func newTestMonitor(timeout time.Duration, store *memoryStore, rec *recorder) *Monitor {
	return New(Config{
		Timeout:  timeout,
		Store:    store,
		Navigate: rec.navigate,
		Notify:   rec.notify,
		Logger:   zerolog.Nop(),
	})
}

func TestMonitor_ExpiresOnce(t *testing.T) {
	store := &memoryStore{token: "jwt"}
	rec := &recorder{}
	m := newTestMonitor(30*time.Millisecond, store, rec)

	if !m.Start() {
		t.Fatalf("expected monitor to start with a stored token")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		routes, _ := rec.snapshot()
		if len(routes) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("monitor never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Give a second firing a chance to happen; it must not.
	time.Sleep(80 * time.Millisecond)

	routes, notices := rec.snapshot()
	if len(routes) != 1 || routes[0] != AuthRoute {
		t.Fatalf("unexpected navigations: %v", routes)
	}
	if len(notices) != 1 || notices[0] != ExpiredNotice {
		t.Fatalf("unexpected notices: %v", notices)
	}
	if store.Token() != "" {
		t.Fatalf("expected credentials cleared on expiry")
	}
}

func TestMonitor_ActivityDefersExpiry(t *testing.T) {
	store := &memoryStore{token: "jwt"}
	rec := &recorder{}
	m := newTestMonitor(100*time.Millisecond, store, rec)

	m.Start()
	defer m.Stop()

	for i := 0; i < 5; i++ {
		time.Sleep(40 * time.Millisecond)
		m.Observe(SignalPointerMove)
	}

	routes, _ := rec.snapshot()
	if len(routes) != 0 {
		t.Fatalf("expired despite steady activity: %v", routes)
	}
	if store.Token() == "" {
		t.Fatalf("credentials cleared despite activity")
	}
}

func TestMonitor_StartWithoutToken(t *testing.T) {
	store := &memoryStore{}
	rec := &recorder{}
	m := newTestMonitor(10*time.Millisecond, store, rec)

	if m.Start() {
		t.Fatalf("expected no-op start without a token")
	}

	time.Sleep(50 * time.Millisecond)
	routes, notices := rec.snapshot()
	if len(routes) != 0 || len(notices) != 0 {
		t.Fatalf("monitor acted without a session: %v %v", routes, notices)
	}
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	store := &memoryStore{token: "jwt"}
	rec := &recorder{}
	m := newTestMonitor(time.Hour, store, rec)

	// Stop before any start must not panic or block.
	m.Stop()

	m.Start()
	m.Stop()
	m.Stop()

	if store.Token() == "" {
		t.Fatalf("Stop must not clear credentials")
	}
	routes, _ := rec.snapshot()
	if len(routes) != 0 {
		t.Fatalf("Stop must not navigate: %v", routes)
	}
}

func TestMonitor_StopRaces(t *testing.T) {
	store := &memoryStore{token: "jwt"}
	rec := &recorder{}

	for i := 0; i < 500; i++ {
		m := newTestMonitor(time.Hour, store, rec)
		m.Start()

		var wg sync.WaitGroup
		for j := 0; j < 16; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m.Stop()
			}()
		}
		wg.Wait()
	}

	if store.Token() == "" {
		t.Fatalf("Stop must not clear credentials")
	}
}

func TestMonitor_RestartsAfterExpiry(t *testing.T) {
	store := &memoryStore{token: "jwt"}
	rec := &recorder{}
	m := newTestMonitor(20*time.Millisecond, store, rec)

	m.Start()

	deadline := time.Now().Add(2 * time.Second)
	for {
		routes, _ := rec.snapshot()
		if len(routes) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("monitor never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// A fresh login stores a new token and starts a new countdown.
	store.mu.Lock()
	store.token = "jwt-2"
	store.mu.Unlock()

	if !m.Start() {
		t.Fatalf("expected restart after a new login")
	}
	m.Stop()
}
