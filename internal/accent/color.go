package accent

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGB{R: c.R, G: c.G, B: c.B}, nil
}

// Hex renders the color as "#rrggbb".
func (c RGB) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

var highlightColors = map[Value]string{
	ClassicBlue:     "0.000000 0.411765 0.850980",
	ClassicGraphite: "0.847059 0.847059 0.862745",
	Red:             "1.000000 0.733333 0.721569 Red",
	Orange:          "1.000000 0.874510 0.701961 Orange",
	Yellow:          "1.000000 0.937255 0.690196 Yellow",
	Green:           "0.752941 0.964706 0.678431 Green",
	Blue:            "0.698039 0.843137 1.000000 Blue",
	Purple:          "0.968627 0.831373 1.000000 Purple",
	Pink:            "1.000000 0.749020 0.823529 Pink",
	Graphite:        "0.847059 0.847059 0.862745 Graphite",
	SpaceGray:       "0.541176 0.556863 0.588235 Other",
	Gold:            "0.800000 0.639216 0.478431 Other",
	RoseGold:        "0.800000 0.584314 0.560784 Other",
	Silver:          "0.750000 0.750000 0.750000 Other",
}

// HighlightColor returns the AppleHighlightColor string the system expects
// alongside v, or "" for Unset and Unknown.
func HighlightColor(v Value) string {
	return highlightColors[v]
}

// ParseHighlight reads the RGB triplet back out of an AppleHighlightColor
// string, ignoring any trailing color name.
func ParseHighlight(s string) (RGB, bool) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return RGB{}, false
	}
	var ch [3]float64
	for i := range ch {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || f < 0 || f > 1 {
			return RGB{}, false
		}
		ch[i] = f
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// SystemColors are representative RGB values for the eight BestMatch
// buckets, used to draw swatches.
var SystemColors = map[Value]RGB{
	Red:      {R: 1.000, G: 0.231, B: 0.188},
	Orange:   {R: 1.000, G: 0.502, B: 0.000},
	Yellow:   {R: 1.000, G: 0.800, B: 0.000},
	Green:    {R: 0.157, G: 0.804, B: 0.255},
	Blue:     {R: 0.000, G: 0.478, B: 1.000},
	Purple:   {R: 0.686, G: 0.322, B: 0.871},
	Pink:     {R: 1.000, G: 0.306, B: 0.702},
	Graphite: {R: 0.557, G: 0.557, B: 0.576},
}

// Swatch returns a representative color for v, if it has one.
func Swatch(v Value) (RGB, bool) {
	if c, ok := SystemColors[v]; ok {
		return c, true
	}
	return ParseHighlight(HighlightColor(v))
}

const grayTolerance = 0.05

// BestMatch classifies c into the nearest of the eight system hues. It never
// returns Unset or Unknown.
func BestMatch(c RGB) Value {
	hue, _, brightness := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	if math.Abs(c.R-brightness) < grayTolerance &&
		math.Abs(c.G-brightness) < grayTolerance &&
		math.Abs(c.B-brightness) < grayTolerance {
		return Graphite
	}
	return matchHue(hue / 360)
}

// matchHue buckets a hue in [0, 1). Each bucket includes its lower bound.
func matchHue(hue float64) Value {
	switch {
	case hue >= 0.9375 || hue < 0.04166:
		return Red
	case hue < 0.09375:
		return Orange
	case hue < 0.20833:
		return Yellow
	case hue < 0.5:
		return Green
	case hue < 0.70833:
		return Blue
	case hue < 0.8125:
		return Purple
	default:
		return Pink
	}
}
