package catalog

import (
	"strings"

	"prism/internal/accent"
)

// InCategory returns the applications in c. The Dock category follows Dock
// order and only includes applications whose domain and path both match a
// Dock item.
func (c *Catalog) InCategory(category Category) []*Application {
	switch category {
	case CategoryAny:
		return append([]*Application(nil), c.Apps...)
	case CategoryDock:
		var out []*Application
		for _, id := range c.Identifiers[CategoryDock] {
			for _, app := range c.Apps {
				if app.Identifier == id {
					out = append(out, app)
					break
				}
			}
		}
		return out
	}
	var out []*Application
	for _, app := range c.Apps {
		if app.Categories.Has(category) {
			out = append(out, app)
		}
	}
	return out
}

// Preferred is what a category shows by default: for any, every
// application that is not deprecating; otherwise InCategory.
func (c *Catalog) Preferred(category Category) []*Application {
	if category != CategoryAny {
		return c.InCategory(category)
	}
	var out []*Application
	for _, app := range c.Apps {
		if !app.Categories.Has(CategoryDeprecating) {
			out = append(out, app)
		}
	}
	return out
}

// Search filters apps case-insensitively. An application matches when the
// whole query is a substring of its domain, name or display name, or when
// every space-separated word of the query appears in its name or display
// name.
func Search(apps []*Application, query string) []*Application {
	keywords := strings.ToLower(query)
	words := strings.Fields(keywords)
	var out []*Application
	for _, app := range apps {
		name := strings.ToLower(app.Name)
		display := strings.ToLower(app.DisplayName)
		domain := strings.ToLower(app.Domain)
		if strings.Contains(domain, keywords) || strings.Contains(name, keywords) || strings.Contains(display, keywords) {
			out = append(out, app)
			continue
		}
		if matchesAllWords(words, name, display) {
			out = append(out, app)
		}
	}
	return out
}

func matchesAllWords(words []string, name, display string) bool {
	for _, w := range words {
		if !strings.Contains(name, w) && !strings.Contains(display, w) {
			return false
		}
	}
	return true
}

// Customized keeps applications with an accent override. When the system
// accent is unset, unrecognised overrides are left out too.
func Customized(apps []*Application, systemAccent accent.Value) []*Application {
	var out []*Application
	for _, app := range apps {
		if app.Accent == accent.Unset {
			continue
		}
		if systemAccent == accent.Unset && app.Accent == accent.Unknown {
			continue
		}
		out = append(out, app)
	}
	return out
}

// Query selects what to show from a Catalog.
type Query struct {
	Category       Category
	Search         string
	CustomizedOnly bool
	SystemAccent   accent.Value
}

// View applies q: searches run over the whole category, otherwise the
// category's preferred list is shown. Customized-only filters whichever
// list results, using the full category rather than the preferred one.
func (c *Catalog) View(q Query) []*Application {
	var list []*Application
	switch {
	case q.Search != "":
		list = Search(c.InCategory(q.Category), q.Search)
	case q.CustomizedOnly:
		list = c.InCategory(q.Category)
	default:
		list = c.Preferred(q.Category)
	}
	if q.CustomizedOnly {
		list = Customized(list, q.SystemAccent)
	}
	return list
}
