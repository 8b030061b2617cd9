package theme

import (
	"errors"
	"strings"
	"sync"
)

// ErrUnsupported is returned by a SchemeSignal that cannot report the OS
// color scheme.
var ErrUnsupported = errors.New("theme: color scheme signal unsupported")

// SchemeSignal answers "does the OS prefer dark?".
type SchemeSignal interface {
	PrefersDark() (bool, error)
}

// Listener receives OS color scheme changes. Registrations are matched by
// pointer, so removing a listener never affects another one with the same func.
type Listener struct {
	fn func(dark bool)
}

// NewListener wraps fn for registration on a notifier.
func NewListener(fn func(dark bool)) *Listener {
	return &Listener{fn: fn}
}

// Notify delivers a change to the wrapped func.
func (l *Listener) Notify(dark bool) {
	if l != nil && l.fn != nil {
		l.fn(dark)
	}
}

// ChangeNotifier is the current change registration API.
type ChangeNotifier interface {
	AddChangeListener(l *Listener)
	RemoveChangeListener(l *Listener)
}

// LegacyNotifier is the older callback registration API.
type LegacyNotifier interface {
	AddListener(l *Listener)
	RemoveListener(l *Listener)
}

// MediaQuery is a settable OS color scheme signal with ChangeNotifier
// registration. It reports ErrUnsupported until the first Set.
type MediaQuery struct {
	mu        sync.Mutex
	known     bool
	dark      bool
	listeners []*Listener
}

// NewMediaQuery returns a signal that has not reported a scheme yet.
func NewMediaQuery() *MediaQuery {
	return &MediaQuery{}
}

// NewMediaQueryWith returns a signal already reporting dark.
func NewMediaQueryWith(dark bool) *MediaQuery {
	return &MediaQuery{known: true, dark: dark}
}

func (q *MediaQuery) PrefersDark() (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.known {
		return false, ErrUnsupported
	}
	return q.dark, nil
}

// Set records the OS scheme and notifies listeners if it changed. Listeners
// run after the lock is released so they may query the signal.
func (q *MediaQuery) Set(dark bool) {
	q.mu.Lock()
	if q.known && q.dark == dark {
		q.mu.Unlock()
		return
	}
	q.known = true
	q.dark = dark
	listeners := append([]*Listener(nil), q.listeners...)
	q.mu.Unlock()

	for _, l := range listeners {
		l.Notify(dark)
	}
}

func (q *MediaQuery) AddChangeListener(l *Listener) {
	if l == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.listeners = append(q.listeners, l)
}

func (q *MediaQuery) RemoveChangeListener(l *Listener) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, existing := range q.listeners {
		if existing == l {
			q.listeners = append(q.listeners[:i], q.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount reports how many listeners are registered.
func (q *MediaQuery) ListenerCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.listeners)
}

// LegacyMediaQuery exposes a MediaQuery through LegacyNotifier only, for
// environments without the current registration API.
type LegacyMediaQuery struct {
	q *MediaQuery
}

func NewLegacyMediaQuery(q *MediaQuery) *LegacyMediaQuery {
	return &LegacyMediaQuery{q: q}
}

func (l *LegacyMediaQuery) PrefersDark() (bool, error) { return l.q.PrefersDark() }
func (l *LegacyMediaQuery) AddListener(fn *Listener)    { l.q.AddChangeListener(fn) }
func (l *LegacyMediaQuery) RemoveListener(fn *Listener) { l.q.RemoveChangeListener(fn) }

// ClientHint parses a Sec-CH-Prefers-Color-Scheme header value. ok is false
// when the header is absent or carries an unknown token.
func ClientHint(header string) (dark bool, ok bool) {
	v := strings.ToLower(strings.Trim(strings.TrimSpace(header), `"`))
	switch v {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}
