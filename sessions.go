package main

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/theme"
)

// rootClasses are always present on <html> next to the theme marker.
var rootClasses = []string{"scroll-smooth"}

// session is the theme state of one visitor.
type session struct {
	resolver *theme.Resolver
	scheme   *theme.MediaQuery
	root     *theme.ClassList
	lastSeen time.Time
}

type sessions struct {
	mu          sync.Mutex
	byID        map[string]*session
	maxSessions int
	storage     func(visitorID string) theme.Storage
	cfg         config.ThemeConfig
	logger      *log.Logger
	quiet       *log.Logger
	now         func() time.Time
}

func newSessions(cfg config.ThemeConfig, maxSessions int, storage func(visitorID string) theme.Storage, logger *log.Logger) *sessions {
	return &sessions{
		byID:        make(map[string]*session),
		maxSessions: maxSessions,
		storage:     storage,
		cfg:         cfg,
		logger:      logger,
		quiet:       log.New(io.Discard, "", 0),
		now:         time.Now,
	}
}

// get returns the visitor's session, creating and initializing it on first
// use. A known OS scheme (from the client hint) is fed into the session's
// signal, which re-resolves the theme if the visitor follows the system.
// Once maxSessions are live, new visitors get a transient session.
func (s *sessions) get(visitorID string, dark, known bool) *session {
	s.mu.Lock()
	sess, ok := s.byID[visitorID]
	if ok {
		sess.lastSeen = s.now()
	}
	full := !ok && len(s.byID) >= s.maxSessions
	s.mu.Unlock()

	if ok {
		if known {
			sess.scheme.Set(dark)
		}
		return sess
	}
	if full {
		return s.transient(visitorID, dark, known)
	}

	// Initialize runs outside the lock; a racing request for the same
	// visitor keeps whichever session was stored first.
	created := s.newSession(visitorID, dark, known, s.logger)
	s.mu.Lock()
	if _, ok := s.byID[visitorID]; ok {
		s.mu.Unlock()
		created.resolver.Close()
		return s.get(visitorID, dark, known)
	}
	created.lastSeen = s.now()
	s.byID[visitorID] = created
	s.mu.Unlock()
	return created
}

// transient builds a session that is never stored, for requests that do not
// carry a visitor cookie yet (first visits, crawlers) or arrive while the
// session table is full. Its warnings are discarded.
func (s *sessions) transient(visitorID string, dark, known bool) *session {
	sess := s.newSession(visitorID, dark, known, s.quiet)
	sess.resolver.Close()
	return sess
}

func (s *sessions) newSession(visitorID string, dark, known bool, logger *log.Logger) *session {
	scheme := theme.NewMediaQuery()
	if known {
		scheme = theme.NewMediaQueryWith(dark)
	}
	root := theme.NewClassList(rootClasses...)
	resolver := theme.NewResolver(scheme, s.storage(visitorID), root,
		theme.WithLogger(logger),
		theme.WithStorageKey(s.cfg.StorageKey),
	)
	resolver.Initialize(s.cfg.Default, s.cfg.StorageKey)
	return &session{resolver: resolver, scheme: scheme, root: root}
}

// sweep closes sessions idle for longer than maxIdle and reports how many
// were removed.
func (s *sessions) sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.byID {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.byID, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.resolver.Close()
	}
	return len(expired)
}

// run sweeps idle sessions every interval until ctx is done.
func (s *sessions) run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(maxIdle); n > 0 {
				log.Printf("Closed %d idle theme sessions", n)
			}
		}
	}
}

func (s *sessions) closeAll() {
	s.mu.Lock()
	all := s.byID
	s.byID = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.resolver.Close()
	}
}

func (s *sessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// memoryPreferences keeps preferences per visitor in process memory, used
// when the database is unavailable. A visitor gets an entry only once a
// preference is actually written.
type memoryPreferences struct {
	mu        sync.Mutex
	byVisitor map[string]map[string]string
}

func newMemoryPreferences() *memoryPreferences {
	return &memoryPreferences{byVisitor: make(map[string]map[string]string)}
}

func (m *memoryPreferences) storage(visitorID string) theme.Storage {
	return visitorPreferences{m: m, visitorID: visitorID}
}

func (m *memoryPreferences) visitors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byVisitor)
}

type visitorPreferences struct {
	m         *memoryPreferences
	visitorID string
}

func (v visitorPreferences) Get(key string) (string, bool, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	value, ok := v.m.byVisitor[v.visitorID][key]
	return value, ok, nil
}

func (v visitorPreferences) Set(key, value string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	prefs, ok := v.m.byVisitor[v.visitorID]
	if !ok {
		prefs = make(map[string]string)
		v.m.byVisitor[v.visitorID] = prefs
	}
	prefs[key] = value
	return nil
}
