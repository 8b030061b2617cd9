package theme_test

import (
	"testing"

	"github.com/Zachkp/portfolio/internal/theme"
	"github.com/stretchr/testify/assert"
)

type dualNotifier struct {
	*theme.MediaQuery
	legacyAdds int
}

func (d *dualNotifier) AddListener(l *theme.Listener) { d.legacyAdds++ }
func (d *dualNotifier) RemoveListener(*theme.Listener) {}

type staticSignal bool

func (s staticSignal) PrefersDark() (bool, error) { return bool(s), nil }

func TestSubscribe_PrefersChangeNotifier(t *testing.T) {
	d := &dualNotifier{MediaQuery: theme.NewMediaQueryWith(false)}

	unsubscribe := theme.Subscribe(d, theme.NewListener(func(bool) {}))

	assert.Equal(t, 1, d.ListenerCount())
	assert.Zero(t, d.legacyAdds)
	unsubscribe()
	assert.Zero(t, d.ListenerCount())
}

func TestSubscribe_FallsBackToLegacy(t *testing.T) {
	q := theme.NewMediaQueryWith(false)
	legacy := theme.NewLegacyMediaQuery(q)

	var got []bool
	unsubscribe := theme.Subscribe(legacy, theme.NewListener(func(dark bool) { got = append(got, dark) }))
	q.Set(true)
	unsubscribe()
	q.Set(false)

	assert.Equal(t, []bool{true}, got)
}

func TestSubscribe_WithoutRegistrationAPI(t *testing.T) {
	unsubscribe := theme.Subscribe(staticSignal(true), theme.NewListener(func(bool) {}))
	assert.NotPanics(t, unsubscribe)

	assert.NotPanics(t, theme.Subscribe(nil, theme.NewListener(func(bool) {})))
}

func TestSubscribe_RemovesOnlyOwnListener(t *testing.T) {
	q := theme.NewMediaQueryWith(false)
	var a, b int
	unsubscribeA := theme.Subscribe(q, theme.NewListener(func(bool) { a++ }))
	theme.Subscribe(q, theme.NewListener(func(bool) { b++ }))

	unsubscribeA()
	unsubscribeA()
	q.Set(true)

	assert.Zero(t, a)
	assert.Equal(t, 1, b)
}

func TestResolver_LegacySignalFollowsChanges(t *testing.T) {
	q := theme.NewMediaQueryWith(true)
	target := theme.NewClassList()
	r := theme.NewResolver(theme.NewLegacyMediaQuery(q), nil, target)

	r.SetTheme(theme.PreferenceSystem)
	assert.Equal(t, theme.ResolvedDark, target.Theme())

	q.Set(false)
	assert.Equal(t, theme.ResolvedLight, target.Theme())
	assert.Equal(t, theme.PreferenceSystem, r.Preference())
}

func TestResolver_StaticSignalNeverNotifies(t *testing.T) {
	r := theme.NewResolver(staticSignal(true), theme.NewMemoryStorage(), nil)

	pref, resolved := r.Initialize(theme.PreferenceSystem, "theme")

	assert.Equal(t, theme.PreferenceSystem, pref)
	assert.Equal(t, theme.ResolvedDark, resolved)
	assert.True(t, r.Subscribed())
}
