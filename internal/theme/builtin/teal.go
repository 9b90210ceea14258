package builtin

import (
	"deckstyle/internal/highlight"
	"deckstyle/internal/theme"
)

// tealFont is the custom Avant Garde stack both teal themes share.
const tealFont = `"ITC Avant Garde Gothic Std Bold", "Helvetica", "Arial", sans-serif`

// TealTheme is the custom teal palette composed with the prism preset.
func TealTheme() theme.Theme {
	custom := theme.Theme{
		Name: Teal,
		Font: theme.ParseFontStack(tealFont),
		Colors: theme.Colors{
			theme.RoleText:       "#FFFFFF",
			theme.RoleBackground: "#265F69",
			theme.RoleLink:       "#0ff",
		},
		Elements: theme.Elements{
			theme.ElementH1:  {FontSize: "48px"},
			theme.ElementH2:  {FontSize: "36px"},
			theme.ElementH3:  {FontSize: "28px"},
			theme.ElementPre: {FontSize: "12px"},
		},
	}
	return theme.Compose(custom, highlight.Prism())
}
