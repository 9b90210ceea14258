package builtin

import (
	"deckstyle/internal/highlight"
	"deckstyle/internal/theme"
)

const codeFont = `"Fira Code", "Menlo", monospace`

// TealCodeTheme is the canonical theme: the teal palette with a full heading
// scale, body and code overrides, and TypeScript grammars.
func TealCodeTheme() theme.Theme {
	custom := theme.Theme{
		Name: TealCode,
		Font: theme.ParseFontStack(tealFont),
		Colors: theme.Colors{
			theme.RoleText:       "#FFFFFF",
			theme.RoleBackground: "#265F69",
			theme.RoleLink:       "#0ff",
			theme.RolePrimary:    "#F2C14E",
			theme.RoleHighlight:  "#1B454C",
			theme.RoleMuted:      "#A7C4C9",
		},
		Elements: theme.Elements{
			theme.ElementH1:    {FontSize: "64px", TextAlign: "center", FontWeight: "bold", Color: "#F2C14E"},
			theme.ElementH2:    {FontSize: "48px", FontWeight: "bold"},
			theme.ElementH3:    {FontSize: "36px", FontWeight: "600"},
			theme.ElementH4:    {FontSize: "28px"},
			theme.ElementH5:    {FontSize: "24px"},
			theme.ElementH6:    {FontSize: "20px", FontStyle: "italic"},
			theme.ElementP:     {FontSize: "24px", LineHeight: "1.4"},
			theme.ElementSpan:  {FontSize: "24px"},
			theme.ElementCode:  {FontSize: "18px", FontFamily: codeFont, Color: "#F2C14E"},
			theme.ElementPre:   {FontSize: "16px", FontFamily: codeFont, TextAlign: "left", Background: "#1B454C"},
			theme.ElementToken: {FontSize: "16px"},
		},
	}
	return theme.Compose(custom, highlight.MustFragment(highlight.PrismStyle, "typescript", "tsx"))
}
