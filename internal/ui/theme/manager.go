package theme

import (
	"sort"
	"sync"
)

var registry = &manager{themes: make(map[string]Theme)}

type manager struct {
	mu          sync.RWMutex
	themes      map[string]Theme
	currentName string
	current     Theme
}

// RegisterTheme adds a theme to the registry.
// The first registered theme becomes the active one.
func RegisterTheme(name string, t Theme) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.themes[name] = t
	if registry.current == nil {
		registry.currentName = name
		registry.current = t
	}
}

// SetTheme switches to a registered theme by name.
// Returns true if the theme was found and set.
func SetTheme(name string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	t, ok := registry.themes[name]
	if !ok {
		return false
	}
	registry.currentName = name
	registry.current = t
	return true
}

// Current returns the active theme.
func Current() Theme {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.current
}

// CurrentName returns the name of the active theme.
func CurrentName() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.currentName
}

// Available returns all registered theme names in sorted order.
func Available() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.sortedNames()
}

// CycleTheme switches to the next theme in sorted order and returns its name.
func CycleTheme() string {
	return registry.cycle(1)
}

// CyclePreviousTheme switches to the previous theme in sorted order.
func CyclePreviousTheme() string {
	return registry.cycle(-1)
}

func (m *manager) cycle(step int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := m.sortedNames()
	if len(names) == 0 {
		return ""
	}
	idx := sort.SearchStrings(names, m.currentName)
	if idx >= len(names) || names[idx] != m.currentName {
		idx = 0
	}
	next := names[(idx+step+len(names))%len(names)]
	m.currentName = next
	m.current = m.themes[next]
	return next
}

func (m *manager) sortedNames() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
