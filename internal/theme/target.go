package theme

import (
	"strings"
	"sync"
)

// RenderTarget receives the resolved theme. The resolver is its only writer.
type RenderTarget interface {
	ApplyTheme(t Resolved)
}

// ClassList is the class set of the document root. The theme marker is the
// class "light" or "dark"; other classes are left alone.
type ClassList struct {
	mu      sync.RWMutex
	classes []string
}

func NewClassList(classes ...string) *ClassList {
	c := &ClassList{}
	for _, class := range classes {
		c.add(class)
	}
	return c
}

// ApplyTheme swaps the theme marker in one step, so readers never observe
// both markers or neither.
func (c *ClassList) ApplyTheme(t Resolved) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(string(t.Opposite()))
	c.add(string(t))
}

// Theme returns the marker currently applied, or "" before the first apply.
func (c *ClassList) Theme() Resolved {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, class := range c.classes {
		switch Resolved(class) {
		case ResolvedLight, ResolvedDark:
			return Resolved(class)
		}
	}
	return ""
}

func (c *ClassList) Add(class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(class)
}

func (c *ClassList) Remove(class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(class)
}

func (c *ClassList) Has(class string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index(class) >= 0
}

// Classes returns a copy of the classes in insertion order.
func (c *ClassList) Classes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.classes...)
}

// String renders the list as an HTML class attribute value.
func (c *ClassList) String() string {
	return strings.Join(c.Classes(), " ")
}

func (c *ClassList) add(class string) {
	if class == "" || c.index(class) >= 0 {
		return
	}
	c.classes = append(c.classes, class)
}

func (c *ClassList) remove(class string) {
	if i := c.index(class); i >= 0 {
		c.classes = append(c.classes[:i], c.classes[i+1:]...)
	}
}

func (c *ClassList) index(class string) int {
	for i, existing := range c.classes {
		if existing == class {
			return i
		}
	}
	return -1
}
