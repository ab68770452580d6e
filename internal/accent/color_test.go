package accent

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightColor_Literals(t *testing.T) {
	assert.Equal(t, "", HighlightColor(Unset))
	assert.Equal(t, "", HighlightColor(Unknown))
	assert.Equal(t, "0.000000 0.411765 0.850980", HighlightColor(ClassicBlue))
	assert.Equal(t, "1.000000 0.733333 0.721569 Red", HighlightColor(Red))
	assert.Equal(t, "0.698039 0.843137 1.000000 Blue", HighlightColor(Blue))
	assert.Equal(t, "0.750000 0.750000 0.750000 Other", HighlightColor(Silver))

	for _, scheme := range allSchemes() {
		for _, v := range Palette(scheme)[1:] {
			assert.NotEmpty(t, HighlightColor(v), v.String())
		}
	}
}

func TestParseHighlight(t *testing.T) {
	c, ok := ParseHighlight(HighlightColor(Gold))
	require.True(t, ok)
	assert.InDelta(t, 0.8, c.R, 1e-9)
	assert.InDelta(t, 0.639216, c.G, 1e-9)

	_, ok = ParseHighlight("")
	assert.False(t, ok)
	_, ok = ParseHighlight("1 2 3")
	assert.False(t, ok)
}

func TestMatchHue_Boundaries(t *testing.T) {
	cases := []struct {
		hue  float64
		want Value
	}{
		{0, Red},
		{0.04165, Red},
		{0.04166, Orange},
		{0.09374, Orange},
		{0.09375, Yellow},
		{0.20833, Green},
		{0.49999, Green},
		{0.5, Blue},
		{0.70833, Purple},
		{0.8125, Pink},
		{0.93749, Pink},
		{0.9375, Red},
		{0.99999, Red},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchHue(tc.hue), "hue %v", tc.hue)
	}
}

func TestBestMatch_KnownColors(t *testing.T) {
	cases := []struct {
		hex  string
		want Value
	}{
		{"#ff0000", Red},
		{"#ff8800", Orange},
		{"#ffee00", Yellow},
		{"#00c000", Green},
		{"#0060ff", Blue},
		{"#9933ff", Purple},
		{"#ff33aa", Pink},
		{"#808080", Graphite},
		{"#000000", Graphite},
		{"#ffffff", Graphite},
		{"#7a7a82", Graphite},
	}
	for _, tc := range cases {
		c, err := ParseHex(tc.hex)
		require.NoError(t, err)
		assert.Equal(t, tc.want, BestMatch(c), tc.hex)
	}
}

func TestBestMatch_IsTotal(t *testing.T) {
	buckets := map[Value]bool{Graphite: true, Red: true, Orange: true, Yellow: true, Green: true, Blue: true, Purple: true, Pink: true}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		c := RGB{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
		got := BestMatch(c)
		assert.True(t, buckets[got], "BestMatch(%v) = %v", c, got)
	}
}

func TestSystemColors_MatchThemselves(t *testing.T) {
	for v, c := range SystemColors {
		assert.Equal(t, v, BestMatch(c), v.String())
	}
}

func TestSwatch(t *testing.T) {
	_, ok := Swatch(Unset)
	assert.False(t, ok)
	c, ok := Swatch(RoseGold)
	require.True(t, ok)
	assert.Equal(t, "#cc958f", c.Hex())
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("0a84ff")
	require.NoError(t, err)
	assert.Equal(t, "#0a84ff", c.Hex())

	_, err = ParseHex("#nothex")
	assert.Error(t, err)
}
