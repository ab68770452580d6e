// Package catalog discovers the installed applications and groups them into
// the categories the user browses.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"prism/internal/accent"
	"prism/internal/sources"
)

// Identifier names an application by preference domain and bundle path.
type Identifier = sources.Identifier

// Category groups applications for browsing.
type Category int

const (
	CategoryAny Category = iota
	CategoryFeatured
	CategoryLaunchpad
	CategoryDock
	CategorySystem
	CategoryDeprecating
)

// Categories lists every category in sidebar order.
var Categories = []Category{
	CategoryAny,
	CategoryFeatured,
	CategoryLaunchpad,
	CategoryDock,
	CategorySystem,
	CategoryDeprecating,
}

var categoryNames = map[Category]string{
	CategoryAny:         "any",
	CategoryFeatured:    "featured",
	CategoryLaunchpad:   "launchpad",
	CategoryDock:        "dock",
	CategorySystem:      "system",
	CategoryDeprecating: "deprecating",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory resolves a category name. "all" is accepted for any.
func ParseCategory(raw string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" || name == "all" {
		return CategoryAny, nil
	}
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return CategoryAny, fmt.Errorf("unknown category %q", raw)
}

// CategorySet is a set of categories. CategoryAny is never stored: every
// application belongs to it implicitly.
type CategorySet uint8

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	if c == CategoryAny {
		return true
	}
	return s&(1<<uint(c)) != 0
}

// Add puts c in the set.
func (s *CategorySet) Add(c Category) {
	if c == CategoryAny {
		return
	}
	*s |= 1 << uint(c)
}

// List returns the members in sidebar order.
func (s CategorySet) List() []Category {
	var out []Category
	for _, c := range Categories[1:] {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s CategorySet) String() string {
	names := make([]string, 0, len(Categories))
	for _, c := range s.List() {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}

// MarshalJSON renders the set as a list of names.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(Categories))
	for _, c := range s.List() {
		names = append(names, c.String())
	}
	return json.Marshal(names)
}

// Application is one discovered application bundle.
type Application struct {
	Identifier
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Accent      accent.Value `json:"accent"`
	// FeatureColorName is the bundle's own accent color asset, if any.
	FeatureColorName string `json:"featureColor,omitempty"`
	// FeatureColor is the resolved asset color. Asset catalogs are not
	// decoded, so it stays nil unless a caller fills it in.
	FeatureColor *accent.RGB `json:"-"`
	Categories   CategorySet `json:"categories"`
}

// Catalog is the result of one discovery pass.
type Catalog struct {
	// Apps is sorted by display name.
	Apps []*Application
	// Identifiers holds the Dock and Launchpad lists as read, in source order.
	Identifiers map[Category][]Identifier

	byDomain map[string]*Application
}

// New indexes apps, which are expected in display order, by domain. The
// first record for a domain wins lookups.
func New(apps []*Application, ids map[Category][]Identifier) *Catalog {
	c := &Catalog{
		Apps:        apps,
		Identifiers: ids,
		byDomain:    make(map[string]*Application, len(apps)),
	}
	for _, app := range apps {
		if _, ok := c.byDomain[app.Domain]; !ok {
			c.byDomain[app.Domain] = app
		}
	}
	return c
}

// Lookup returns the application with the given preference domain.
func (c *Catalog) Lookup(domain string) (*Application, bool) {
	app, ok := c.byDomain[domain]
	return app, ok
}

// Len returns the number of applications.
func (c *Catalog) Len() int {
	return len(c.Apps)
}
