// Package accent models the per-application accent color and its mapping onto
// the integer encodings stored in macOS preference domains.
//
// Nothing in this package performs I/O. The active Scheme is decided once at
// startup (see defaults.DetectCapability) and passed in explicitly.
package accent

import (
	"fmt"
	"strings"

	appErrors "prism/internal/errors"
)

// Value is an accent color as understood by the preference domains.
// The integer values are the raw values the encodings are derived from.
type Value int

const (
	Unknown Value = -1
	Unset   Value = 0

	Graphite Value = 1
	Red      Value = 2
	Orange   Value = 3
	Yellow   Value = 4
	Green    Value = 5
	Blue     Value = 6
	Purple   Value = 7
	Pink     Value = 8

	SpaceGray Value = 9
	Gold      Value = 10
	RoseGold  Value = 11
	Silver    Value = 12

	ClassicBlue     Value = 21
	ClassicGraphite Value = 26
)

var names = map[Value]string{
	Unknown:         "unknown",
	Unset:           "unset",
	Graphite:        "graphite",
	Red:             "red",
	Orange:          "orange",
	Yellow:          "yellow",
	Green:           "green",
	Blue:            "blue",
	Purple:          "purple",
	Pink:            "pink",
	SpaceGray:       "spaceGray",
	Gold:            "gold",
	RoseGold:        "roseGold",
	Silver:          "silver",
	ClassicBlue:     "classicBlue",
	ClassicGraphite: "classicGraphite",
}

// String returns the identifier used on the command line and in JSON output.
func (v Value) String() string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("Value(%d)", int(v))
}

// ColorName returns the short color word shown to users. Legacy values share
// their modern counterpart's name and both sentinels read as "default".
func (v Value) ColorName() string {
	switch v {
	case Unset, Unknown:
		return "default"
	case ClassicBlue:
		return "blue"
	case ClassicGraphite:
		return "graphite"
	}
	return v.String()
}

// IsSet reports whether v names a concrete color.
func (v Value) IsSet() bool {
	return v != Unset && v != Unknown
}

// IsLegacy reports whether v only exists under the binary scheme.
func (v Value) IsLegacy() bool {
	return v == ClassicBlue || v == ClassicGraphite
}

// Valid reports whether v can be written under scheme.
func (v Value) Valid(scheme Scheme) bool {
	if v == Unset {
		return true
	}
	if scheme == SchemeBinary {
		return v.IsLegacy()
	}
	return v >= Graphite && v <= Silver
}

// MarshalText lets Value appear by name in JSON and YAML output.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Parse resolves a user-supplied color name for scheme. Under the binary
// scheme "blue" and "graphite" resolve to their classic variants.
// "default", "none" and "unset" all mean Unset.
func Parse(raw string, scheme Scheme) (Value, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	switch name {
	case "", "default", "none", "unset", "reset":
		return Unset, nil
	}
	if scheme == SchemeBinary {
		switch name {
		case "blue", "classicblue":
			return ClassicBlue, nil
		case "graphite", "classicgraphite":
			return ClassicGraphite, nil
		}
		return Unknown, invalidAccentError(raw, scheme)
	}
	for v, n := range names {
		if strings.ToLower(n) == name && v.Valid(scheme) {
			return v, nil
		}
	}
	return Unknown, invalidAccentError(raw, scheme)
}

// Palette lists the selectable values for scheme in menu order, starting
// with Unset. Modern palettes append the metallic colors after the hues.
func Palette(scheme Scheme) []Value {
	if scheme == SchemeBinary {
		return []Value{Unset, ClassicBlue, ClassicGraphite}
	}
	return []Value{
		Unset,
		Red, Orange, Yellow, Green, Blue, Purple, Pink, Graphite,
		SpaceGray, Gold, RoseGold, Silver,
	}
}

func invalidAccentError(raw string, scheme Scheme) error {
	return appErrors.New(appErrors.CodeInvalidAccent,
		fmt.Sprintf("unknown accent %q for %s scheme", raw, scheme), nil)
}
