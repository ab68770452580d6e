package theme

// DefaultName is registered first and therefore active until SetTheme is
// called.
const DefaultName = "default"

func init() {
	RegisterTheme(DefaultName, Palette{
		PrimaryColor:             c("#5b4fc7", "#875fff"),
		SecondaryColor:           c("#0077aa", "#00afff"),
		AccentColor:              c("#a66a00", "#ffd700"),
		ErrorColor:               c("#c62828", "#ff5f5f"),
		WarningColor:             c("#ef6c00", "#ff8700"),
		SuccessColor:             c("#2e7d32", "#87ff00"),
		InfoColor:                c("#1565c0", "#00afff"),
		TextColor:                c("#1c1c1c", "#eeeeee"),
		TextMutedColor:           c("#757575", "#949494"),
		TextEmphasizedColor:      c("#000000", "#ffffff"),
		BackgroundColor:          c("#ffffff", "#1c1c1c"),
		BackgroundSecondaryColor: c("#e4e4f7", "#5f00ff"),
		BackgroundDarkerColor:    c("#d0d0d0", "#262626"),
		BorderNormalColor:        c("#bcbcbc", "#585858"),
		BorderFocusedColor:       c("#5b4fc7", "#875fff"),
		BorderDimColor:           c("#e4e4e4", "#3a3a3a"),
	})

	// https://draculatheme.com/contribute
	RegisterTheme("dracula", Palette{
		PrimaryColor:             c("#7e57c2", "#bd93f9"),
		SecondaryColor:           c("#0097a7", "#8be9fd"),
		AccentColor:              c("#f9a825", "#f1fa8c"),
		ErrorColor:               c("#d32f2f", "#ff5555"),
		WarningColor:             c("#ef6c00", "#ffb86c"),
		SuccessColor:             c("#388e3c", "#50fa7b"),
		InfoColor:                c("#1976d2", "#8be9fd"),
		TextColor:                c("#212121", "#f8f8f2"),
		TextMutedColor:           c("#757575", "#6272a4"),
		TextEmphasizedColor:      c("#000000", "#f8f8f2"),
		BackgroundColor:          c("#ffffff", "#282a36"),
		BackgroundSecondaryColor: c("#e0e0e0", "#44475a"),
		BackgroundDarkerColor:    c("#bdbdbd", "#1e1f29"),
		BorderNormalColor:        c("#bdbdbd", "#6272a4"),
		BorderFocusedColor:       c("#7e57c2", "#bd93f9"),
		BorderDimColor:           c("#e0e0e0", "#44475a"),
	})

	// https://www.nordtheme.com/docs/colors-and-palettes
	RegisterTheme("nord", Palette{
		PrimaryColor:             c("#5E81AC", "#88C0D0"),
		SecondaryColor:           c("#81A1C1", "#81A1C1"),
		AccentColor:              c("#8FBCBB", "#8FBCBB"),
		ErrorColor:               c("#BF616A", "#BF616A"),
		WarningColor:             c("#D08770", "#D08770"),
		SuccessColor:             c("#A3BE8C", "#A3BE8C"),
		InfoColor:                c("#5E81AC", "#88C0D0"),
		TextColor:                c("#2E3440", "#ECEFF4"),
		TextMutedColor:           c("#4C566A", "#D8DEE9"),
		TextEmphasizedColor:      c("#2E3440", "#ECEFF4"),
		BackgroundColor:          c("#ECEFF4", "#2E3440"),
		BackgroundSecondaryColor: c("#E5E9F0", "#434C5E"),
		BackgroundDarkerColor:    c("#D8DEE9", "#3B4252"),
		BorderNormalColor:        c("#D8DEE9", "#4C566A"),
		BorderFocusedColor:       c("#5E81AC", "#88C0D0"),
		BorderDimColor:           c("#E5E9F0", "#3B4252"),
	})

	RegisterTheme("solarized", Palette{
		PrimaryColor:             c("#268bd2", "#268bd2"),
		SecondaryColor:           c("#2aa198", "#2aa198"),
		AccentColor:              c("#b58900", "#b58900"),
		ErrorColor:               c("#dc322f", "#dc322f"),
		WarningColor:             c("#cb4b16", "#cb4b16"),
		SuccessColor:             c("#859900", "#859900"),
		InfoColor:                c("#6c71c4", "#6c71c4"),
		TextColor:                c("#657b83", "#839496"),
		TextMutedColor:           c("#93a1a1", "#586e75"),
		TextEmphasizedColor:      c("#586e75", "#93a1a1"),
		BackgroundColor:          c("#fdf6e3", "#002b36"),
		BackgroundSecondaryColor: c("#eee8d5", "#073642"),
		BackgroundDarkerColor:    c("#eee8d5", "#00212b"),
		BorderNormalColor:        c("#93a1a1", "#586e75"),
		BorderFocusedColor:       c("#268bd2", "#268bd2"),
		BorderDimColor:           c("#eee8d5", "#073642"),
	})

	RegisterTheme("tokyonight", Palette{
		PrimaryColor:             c("#2e7de9", "#82aaff"),
		SecondaryColor:           c("#9854f1", "#c099ff"),
		AccentColor:              c("#b15c00", "#ff966c"),
		ErrorColor:               c("#f52a65", "#ff757f"),
		WarningColor:             c("#b15c00", "#ff966c"),
		SuccessColor:             c("#587539", "#c3e88d"),
		InfoColor:                c("#0db9d7", "#7dcfff"),
		TextColor:                c("#3760bf", "#c8d3f5"),
		TextMutedColor:           c("#848cb5", "#828bb8"),
		TextEmphasizedColor:      c("#3760bf", "#c8d3f5"),
		BackgroundColor:          c("#e1e2e7", "#222436"),
		BackgroundSecondaryColor: c("#c4c8da", "#2f334d"),
		BackgroundDarkerColor:    c("#d0d5e3", "#1e2030"),
		BorderNormalColor:        c("#a8aecb", "#444a73"),
		BorderFocusedColor:       c("#2e7de9", "#82aaff"),
		BorderDimColor:           c("#c4c8da", "#2f334d"),
	})
}
