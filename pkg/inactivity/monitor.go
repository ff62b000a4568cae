// Package inactivity implements the client-side auto-logout countdown: a
// rolling deadline that user activity pushes forward and whose expiry purges
// the locally held session.
package inactivity

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout is how long the session survives without any activity.
const DefaultTimeout = 5 * time.Minute

// AuthRoute is where an expired session navigates to.
const AuthRoute = "/auth"

// ExpiredNotice is the message emitted once when the deadline elapses.
const ExpiredNotice = "Your session has expired due to inactivity. Please log in again."

// Signal identifies one of the tracked user-activity events. Any of them
// resets the countdown; the distinction only matters to the caller wiring
// up its event sources.
type Signal string

const (
	SignalKeyPress    Signal = "keypress"
	SignalPointerMove Signal = "pointermove"
	SignalPointerDown Signal = "pointerdown"
	SignalTouchMove   Signal = "touchmove"
)

// CredentialStore holds the session the monitor protects. Clear removes the
// token and any cached user data.
type CredentialStore interface {
	Token() string
	Clear()
}

// Config wires a Monitor. Store and Navigate are required; the zero Timeout
// means DefaultTimeout.
type Config struct {
	Timeout  time.Duration
	Store    CredentialStore
	Navigate func(route string)
	// Notify receives the session-expired notice. Optional.
	Notify func(message string)
	Logger zerolog.Logger
}

// Monitor runs a single cooperative countdown. Each Activity call cancels
// and restarts the timer; timers never stack. All methods are safe for
// concurrent use.
type Monitor struct {
	timeout  time.Duration
	store    CredentialStore
	navigate func(string)
	notify   func(string)
	log      zerolog.Logger

	mu       sync.Mutex
	activity chan struct{}
	quit     chan struct{}
	done     chan struct{}
	running  bool
	stopping bool
}

func New(cfg Config) *Monitor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	notify := cfg.Notify
	if notify == nil {
		notify = func(string) {}
	}
	return &Monitor{
		timeout:  timeout,
		store:    cfg.Store,
		navigate: cfg.Navigate,
		notify:   notify,
		log:      cfg.Logger,
	}
}

// Start begins the countdown and reports whether it is running. With no
// stored token there is nothing to protect and Start is a no-op. Calling
// Start on a running monitor is also a no-op.
func (m *Monitor) Start() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return true
	}
	if m.store.Token() == "" {
		m.log.Debug().Msg("no token found, skipping inactivity timer")
		return false
	}

	m.activity = make(chan struct{}, 1)
	m.quit = make(chan struct{})
	m.done = make(chan struct{})
	m.running = true
	m.stopping = false
	go m.run(m.activity, m.quit, m.done)

	m.log.Debug().Dur("timeout", m.timeout).Msg("inactivity timer started")
	return true
}

// Observe feeds one tracked activity signal into the countdown.
func (m *Monitor) Observe(_ Signal) {
	m.Activity()
}

// Activity resets the countdown. Resets coalesce: a burst of events causes
// at most one pending reset. Safe to call when the monitor is not running.
func (m *Monitor) Activity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	select {
	case m.activity <- struct{}{}:
	default:
	}
}

// Stop tears the countdown down without touching the stored session.
// Idempotent and safe to call when no timer is running. The stopping flag is
// flipped under the lock so exactly one caller closes quit, no matter how
// many Stop calls race.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running || m.stopping {
		m.mu.Unlock()
		return
	}
	m.stopping = true
	quit, done := m.quit, m.done
	m.mu.Unlock()

	close(quit)
	<-done
}

func (m *Monitor) run(activity, quit, done chan struct{}) {
	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		close(done)
	}()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			m.expire()
			return
		case <-activity:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(m.timeout)
		case <-quit:
			return
		}
	}
}

// expire purges the session exactly once per countdown: the run loop
// returns right after, so a second firing is impossible.
func (m *Monitor) expire() {
	m.log.Warn().Msg("user inactive, logging out")
	m.store.Clear()
	if m.navigate != nil {
		m.navigate(AuthRoute)
	}
	m.notify(ExpiredNotice)
}
