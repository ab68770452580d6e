package ui

import (
	"strings"

	"prism/internal/accent"
	"prism/internal/catalog"
)

// accentPicker is the modal list of accents offered for one application.
type accentPicker struct {
	app     *catalog.Application
	options []accent.Value
	cursor  int
}

func newAccentPicker(app *catalog.Application, scheme accent.Scheme) *accentPicker {
	p := &accentPicker{app: app, options: accent.Palette(scheme)}
	for i, v := range p.options {
		if v == app.Accent {
			p.cursor = i
			break
		}
	}
	return p
}

func (p *accentPicker) move(delta int) {
	n := len(p.options)
	if n == 0 {
		return
	}
	p.cursor = (p.cursor + delta + n) % n
}

func (p *accentPicker) selected() accent.Value {
	if len(p.options) == 0 {
		return accent.Unset
	}
	return p.options[p.cursor]
}

func (p *accentPicker) view() string {
	var b strings.Builder
	b.WriteString(stylePickerTitle().Render("Accent for " + p.app.DisplayName))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(p.app.Domain))
	b.WriteString("\n")
	if p.app.FeatureColorName != "" {
		b.WriteString(styleMuted().Render("Ships its own accent: " + p.app.FeatureColorName))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for i, v := range p.options {
		line := swatch(v)
		marker := "  "
		if v == p.app.Accent {
			marker = "✓ "
		}
		if i == p.cursor {
			line = styleSelectedRow().Render("▸ "+marker) + line
		} else {
			line = "  " + marker + line
		}
		b.WriteString(line)
		if i < len(p.options)-1 {
			b.WriteString("\n")
		}
	}
	return stylePicker().Render(b.String())
}
