package main

import (
	"bytes"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/theme"
)

func newTestSessions(now *time.Time) *sessions {
	return newCappedSessions(now, config.Default().Session.MaxSessions, newMemoryPreferences())
}

func newCappedSessions(now *time.Time, maxSessions int, memory *memoryPreferences) *sessions {
	s := newSessions(config.Default().Theme, maxSessions, memory.storage, log.New(&bytes.Buffer{}, "", 0))
	s.now = func() time.Time { return *now }
	return s
}

func TestSessions_ReuseByVisitor(t *testing.T) {
	now := time.Now()
	s := newTestSessions(&now)

	a := s.get("visitor-a", false, false)
	assert.Same(t, a, s.get("visitor-a", false, false))
	assert.NotSame(t, a, s.get("visitor-b", false, false))
	assert.Equal(t, 2, s.count())
}

func TestSessions_HintDrivesSystemSession(t *testing.T) {
	now := time.Now()
	s := newTestSessions(&now)

	sess := s.get("visitor", true, true)
	assert.Equal(t, theme.ResolvedDark, sess.resolver.Resolved())

	s.get("visitor", false, true)
	assert.Equal(t, theme.ResolvedLight, sess.resolver.Resolved())
	assert.Equal(t, "scroll-smooth light", sess.root.String())
}

func TestSessions_SweepClosesIdle(t *testing.T) {
	now := time.Now()
	s := newTestSessions(&now)
	idle := s.get("idle", false, true)
	assert.Equal(t, 1, idle.scheme.ListenerCount())

	now = now.Add(time.Hour)
	s.get("active", false, true)

	assert.Equal(t, 1, s.sweep(30*time.Minute))
	assert.Equal(t, 1, s.count())
	assert.Zero(t, idle.scheme.ListenerCount())
}

func TestSessions_MemoryStorageSurvivesSweep(t *testing.T) {
	now := time.Now()
	s := newTestSessions(&now)
	s.get("visitor", false, true).resolver.SetTheme(theme.PreferenceDark)

	now = now.Add(time.Hour)
	s.sweep(time.Minute)

	assert.Equal(t, theme.PreferenceDark, s.get("visitor", false, true).resolver.Preference())
}

func TestSessions_CapServesTransient(t *testing.T) {
	now := time.Now()
	s := newCappedSessions(&now, 2, newMemoryPreferences())
	s.get("a", false, true)
	s.get("b", false, true)

	extra := s.get("c", true, true)

	assert.Equal(t, 2, s.count())
	assert.Equal(t, theme.ResolvedDark, extra.resolver.Resolved())
	assert.Zero(t, extra.scheme.ListenerCount())
	assert.NotSame(t, extra, s.get("c", true, true))
}

func TestSessions_TransientNotStored(t *testing.T) {
	now := time.Now()
	memory := newMemoryPreferences()
	s := newCappedSessions(&now, 10, memory)

	for i := 0; i < 100; i++ {
		s.transient(fmt.Sprintf("crawler-%d", i), false, false)
	}

	assert.Zero(t, s.count())
	assert.Zero(t, memory.visitors())
}

func TestMemoryPreferences_EntryOnlyAfterWrite(t *testing.T) {
	memory := newMemoryPreferences()
	prefs := memory.storage("visitor")

	_, ok, err := prefs.Get("theme")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, memory.visitors())

	assert.NoError(t, prefs.Set("theme", "dark"))
	v, ok, err := memory.storage("visitor").Get("theme")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.Equal(t, 1, memory.visitors())
}
