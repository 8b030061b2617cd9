// Package theme resolves the rendered light/dark theme for a visitor session
// from an explicit preference, best-effort storage and the OS color scheme.
package theme

// Preference is the visitor's chosen theme, or delegation to the OS.
type Preference string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system"
)

// Valid reports whether p is one of the three known preferences.
func (p Preference) Valid() bool {
	switch p {
	case PreferenceLight, PreferenceDark, PreferenceSystem:
		return true
	}
	return false
}

// ParsePreference converts a stored or submitted value. Anything unknown
// yields ok == false.
func ParsePreference(s string) (Preference, bool) {
	p := Preference(s)
	return p, p.Valid()
}

// Resolved is the concrete theme applied to the page. Never "system".
type Resolved string

const (
	ResolvedLight Resolved = "light"
	ResolvedDark  Resolved = "dark"
)

func resolvedFromDark(dark bool) Resolved {
	if dark {
		return ResolvedDark
	}
	return ResolvedLight
}

// Opposite returns the other concrete theme.
func (r Resolved) Opposite() Resolved {
	if r == ResolvedDark {
		return ResolvedLight
	}
	return ResolvedDark
}

// State is the resolver's position in its state machine.
type State int

const (
	StateUninitialized State = iota
	StateLight
	StateDark
	StateSystemLight
	StateSystemDark
)

func (s State) String() string {
	switch s {
	case StateLight:
		return "light"
	case StateDark:
		return "dark"
	case StateSystemLight:
		return "system-resolved-light"
	case StateSystemDark:
		return "system-resolved-dark"
	default:
		return "uninitialized"
	}
}

func stateOf(p Preference, r Resolved) State {
	switch {
	case p == PreferenceSystem && r == ResolvedDark:
		return StateSystemDark
	case p == PreferenceSystem:
		return StateSystemLight
	case r == ResolvedDark:
		return StateDark
	default:
		return StateLight
	}
}
