package theme_test

import (
	"testing"

	"github.com/Zachkp/portfolio/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaQuery_UnknownUntilSet(t *testing.T) {
	q := theme.NewMediaQuery()
	_, err := q.PrefersDark()
	require.ErrorIs(t, err, theme.ErrUnsupported)

	q.Set(true)
	dark, err := q.PrefersDark()
	require.NoError(t, err)
	assert.True(t, dark)
}

func TestMediaQuery_NotifiesOnlyOnChange(t *testing.T) {
	q := theme.NewMediaQueryWith(false)
	calls := 0
	q.AddChangeListener(theme.NewListener(func(bool) { calls++ }))

	q.Set(false)
	q.Set(true)
	q.Set(true)

	assert.Equal(t, 1, calls)
}

func TestClientHint(t *testing.T) {
	tests := []struct {
		header string
		dark   bool
		ok     bool
	}{
		{`"dark"`, true, true},
		{"dark", true, true},
		{` "Light" `, false, true},
		{"", false, false},
		{"no-preference", false, false},
	}
	for _, tt := range tests {
		dark, ok := theme.ClientHint(tt.header)
		assert.Equal(t, tt.dark, dark, tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
	}
}

func TestClassList_ApplyThemeSwapsMarker(t *testing.T) {
	c := theme.NewClassList("font-sans", "light")

	c.ApplyTheme(theme.ResolvedDark)
	assert.Equal(t, []string{"font-sans", "dark"}, c.Classes())
	assert.Equal(t, "font-sans dark", c.String())

	c.ApplyTheme(theme.ResolvedDark)
	assert.Equal(t, "font-sans dark", c.String())

	c.Remove("font-sans")
	c.ApplyTheme(theme.ResolvedLight)
	assert.Equal(t, "light", c.String())
	assert.Equal(t, theme.ResolvedLight, c.Theme())
}

func TestParsePreference(t *testing.T) {
	for _, v := range []string{"light", "dark", "system"} {
		p, ok := theme.ParsePreference(v)
		assert.True(t, ok)
		assert.Equal(t, v, string(p))
	}
	_, ok := theme.ParsePreference("System")
	assert.False(t, ok)
}
