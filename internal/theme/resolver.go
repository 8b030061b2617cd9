package theme

import (
	"log"
	"sync"
)

// DefaultStorageKey is used until Initialize names another key.
const DefaultStorageKey = "theme"

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sends storage and signal warnings to logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStorageKey sets the key SetTheme writes to before Initialize runs.
func WithStorageKey(key string) Option {
	return func(r *Resolver) {
		if key != "" {
			r.key = key
		}
	}
}

// Resolver owns the theme state of one page session. Every operation holds
// mu until it returns, so SetTheme, Initialize and OS change callbacks never
// interleave and the last call wins.
type Resolver struct {
	mu      sync.Mutex
	signal  SchemeSignal
	storage Storage
	target  RenderTarget
	logger  *log.Logger
	key     string

	initialized bool
	closed      bool
	pref        Preference
	resolved    Resolved
	sub         *subscription
}

type subscription struct {
	listener *Listener
	once     sync.Once
	remove   func()
}

func (s *subscription) release() {
	s.once.Do(s.remove)
}

// NewResolver wires a resolver to its collaborators. A nil signal or storage
// behaves as unavailable; a nil target discards applied themes.
func NewResolver(signal SchemeSignal, storage Storage, target RenderTarget, opts ...Option) *Resolver {
	r := &Resolver{
		signal:  signal,
		storage: storage,
		target:  target,
		logger:  log.Default(),
		key:     DefaultStorageKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize adopts the preference persisted under storageKey, or
// defaultPreference when nothing valid is stored, then resolves and applies
// it. It always returns a usable pair.
func (r *Resolver) Initialize(defaultPreference Preference, storageKey string) (Preference, Resolved) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if storageKey != "" {
		r.key = storageKey
	}
	if !defaultPreference.Valid() {
		defaultPreference = PreferenceSystem
	}

	pref := defaultPreference
	if stored, ok := r.readLocked(); ok {
		pref = stored
	}

	r.pref = pref
	r.initialized = true
	r.applyLocked()
	r.syncSubscriptionLocked()
	return r.pref, r.resolved
}

// SetTheme makes p the session preference, persists it best-effort and
// returns the theme now applied. Unknown values are ignored with a warning.
func (r *Resolver) SetTheme(p Preference) Resolved {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !p.Valid() {
		r.logger.Printf("Warning: ignoring unknown theme preference %q", p)
		return r.resolved
	}

	r.pref = p
	r.initialized = true
	if r.storage == nil {
		r.logger.Printf("Warning: theme storage unavailable, %q not persisted", p)
	} else if err := r.storage.Set(r.key, string(p)); err != nil {
		r.logger.Printf("Warning: could not persist theme preference %q: %v", p, err)
	}
	r.applyLocked()
	r.syncSubscriptionLocked()
	return r.resolved
}

// SubscribeToSystemChanges follows OS color scheme changes while the
// preference is system. Outside that period it returns a no-op. Repeated
// calls during one period share a single registration.
func (r *Resolver) SubscribeToSystemChanges() (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := r.subscribeLocked()
	if sub == nil {
		return func() {}
	}
	return func() {
		r.mu.Lock()
		if r.sub == sub {
			r.sub = nil
		}
		r.mu.Unlock()
		sub.release()
	}
}

// Close ends the session and releases the OS signal subscription.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.dropSubscriptionLocked()
}

func (r *Resolver) Preference() Preference {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pref
}

func (r *Resolver) Resolved() Resolved {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return StateUninitialized
	}
	return stateOf(r.pref, r.resolved)
}

// Initialized reports whether Initialize or SetTheme has run.
func (r *Resolver) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Subscribed reports whether an OS change listener is registered.
func (r *Resolver) Subscribed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sub != nil
}

func (r *Resolver) readLocked() (Preference, bool) {
	if r.storage == nil {
		r.logger.Printf("Warning: theme storage unavailable, using default preference")
		return "", false
	}
	v, ok, err := r.storage.Get(r.key)
	if err != nil {
		r.logger.Printf("Warning: could not read theme preference %q: %v", r.key, err)
		return "", false
	}
	if !ok {
		return "", false
	}
	// Foreign or corrupted values are dropped silently.
	return ParsePreference(v)
}

func (r *Resolver) resolveLocked() Resolved {
	if r.pref != PreferenceSystem {
		return Resolved(r.pref)
	}
	if r.signal == nil {
		r.logger.Printf("Warning: color scheme signal unavailable, using light theme")
		return ResolvedLight
	}
	dark, err := r.signal.PrefersDark()
	if err != nil {
		r.logger.Printf("Warning: could not query color scheme, using light theme: %v", err)
		return ResolvedLight
	}
	return resolvedFromDark(dark)
}

func (r *Resolver) applyLocked() {
	r.resolved = r.resolveLocked()
	if r.target != nil {
		r.target.ApplyTheme(r.resolved)
	}
}

func (r *Resolver) syncSubscriptionLocked() {
	if r.pref == PreferenceSystem {
		r.subscribeLocked()
		return
	}
	r.dropSubscriptionLocked()
}

func (r *Resolver) subscribeLocked() *subscription {
	if r.closed || r.pref != PreferenceSystem {
		return nil
	}
	if r.sub != nil {
		return r.sub
	}
	sub := &subscription{}
	sub.listener = NewListener(func(bool) { r.onSchemeChange(sub) })
	sub.remove = Subscribe(r.signal, sub.listener)
	r.sub = sub
	return sub
}

func (r *Resolver) dropSubscriptionLocked() {
	if r.sub == nil {
		return
	}
	r.sub.release()
	r.sub = nil
}

// onSchemeChange treats a notification as "the scheme changed" and reads the
// current value back from the signal. Concurrent notifications may arrive out
// of order, so their payload is not trusted.
func (r *Resolver) onSchemeChange(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sub != sub || r.pref != PreferenceSystem {
		return
	}
	r.applyLocked()
}
