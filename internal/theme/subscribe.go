package theme

// Subscribe registers l for OS color scheme changes using the first API the
// signal supports: ChangeNotifier, then LegacyNotifier. When neither exists
// the registration is a no-op. The returned func removes exactly l.
func Subscribe(signal SchemeSignal, l *Listener) (unsubscribe func()) {
	switch n := signal.(type) {
	case ChangeNotifier:
		n.AddChangeListener(l)
		return func() { n.RemoveChangeListener(l) }
	case LegacyNotifier:
		n.AddListener(l)
		return func() { n.RemoveListener(l) }
	default:
		return func() {}
	}
}
