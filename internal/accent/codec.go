package accent

import (
	"strconv"
	"strings"
)

// Preference keys written into an application's domain.
const (
	KeyAquaColorVariant = "AppleAquaColorVariant"
	KeyAccentColor      = "AppleAccentColor"
	KeyHighlightColor   = "AppleHighlightColor"
)

const (
	// Offset maps a palette raw value onto AppleAccentColor.
	Offset = -2
	// AquaOffset maps a legacy raw value onto AppleAquaColorVariant.
	AquaOffset = -20

	clampBound = 13
)

// Scheme is one of the two historical accent encodings.
type Scheme int

const (
	// SchemeMulti stores AppleAccentColor as raw value + Offset.
	SchemeMulti Scheme = iota
	// SchemeBinary stores AppleAquaColorVariant as 1 (blue) or 6 (graphite).
	SchemeBinary
)

func (s Scheme) String() string {
	if s == SchemeBinary {
		return "binary"
	}
	return "multi"
}

// Key returns the preference key carrying the color under s.
func (s Scheme) Key() string {
	if s == SchemeBinary {
		return KeyAquaColorVariant
	}
	return KeyAccentColor
}

// Capability describes what the running OS supports. It is computed once at
// startup and never re-queried.
type Capability int

const (
	CapabilityModernMulti Capability = iota
	CapabilityLegacyMulti
	CapabilityBinary
)

var capabilityNames = map[Capability]string{
	CapabilityModernMulti: "modern-multi",
	CapabilityLegacyMulti: "legacy-multi",
	CapabilityBinary:      "binary",
}

func (c Capability) String() string {
	return capabilityNames[c]
}

// ParseCapability accepts the names produced by Capability.String.
func ParseCapability(raw string) (Capability, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for c, n := range capabilityNames {
		if n == name {
			return c, true
		}
	}
	return CapabilityModernMulti, false
}

// Scheme returns the encoding used under c.
func (c Capability) Scheme() Scheme {
	if c == CapabilityBinary {
		return SchemeBinary
	}
	return SchemeMulti
}

// CanBeMulticolored reports whether the system accent itself may be left
// unset, letting every application show its own feature color.
func (c Capability) CanBeMulticolored() bool {
	return c == CapabilityModernMulti
}

// DefaultAccent is what the system shows when no accent has been chosen.
func (c Capability) DefaultAccent() Value {
	if c == CapabilityBinary {
		return ClassicBlue
	}
	return Blue
}

// Decode maps a stored integer to a Value. A nil stored value means the key
// is absent and decodes to Unset.
func Decode(stored *int, scheme Scheme) Value {
	if stored == nil {
		return Unset
	}
	if scheme == SchemeBinary {
		switch *stored {
		case 1:
			return ClassicBlue
		case 6:
			return ClassicGraphite
		}
		return Unknown
	}
	raw := min(*stored-Offset, clampBound)
	if raw >= clampBound {
		return Silver
	}
	if raw == int(Unset) {
		return Unset
	}
	if raw >= int(Graphite) && raw <= int(Silver) {
		return Value(raw)
	}
	return Unknown
}

// DecodeString is Decode for values read back as text, such as the output
// of `defaults read`. The empty string decodes to Unset and text that is not
// an integer decodes to Unknown.
func DecodeString(stored *string, scheme Scheme) Value {
	if stored == nil {
		return Unset
	}
	text := strings.TrimSpace(*stored)
	if text == "" {
		return Unset
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return Unknown
	}
	return Decode(&n, scheme)
}

// Instruction is one preference edit: either delete Key or write Int to it.
type Instruction struct {
	Key    string
	Delete bool
	Int    int
}

// Encode returns the color-key edit that stores v under scheme.
func Encode(v Value, scheme Scheme) Instruction {
	key := scheme.Key()
	if v == Unset {
		return Instruction{Key: key, Delete: true}
	}
	if scheme == SchemeBinary {
		return Instruction{Key: key, Int: int(v) + AquaOffset}
	}
	return Instruction{Key: key, Int: int(v) + Offset}
}
