package builtin

import (
	"reflect"
	"testing"

	"deckstyle/internal/theme"
)

func TestBuiltinsRegistered(t *testing.T) {
	available := theme.Available()
	for _, name := range []string{Teal, TealCode} {
		found := false
		for _, a := range available {
			if a == name {
				found = true
			}
		}
		if !found {
			t.Errorf("theme %q not registered; available: %v", name, available)
		}
	}
	if theme.CurrentName() != TealCode {
		t.Fatalf("canonical theme should be current at startup, got %q", theme.CurrentName())
	}
}

func TestBuiltinsValidate(t *testing.T) {
	for _, th := range []theme.Theme{TealTheme(), TealCodeTheme()} {
		if err := theme.Validate(th); err != nil {
			t.Errorf("%s: %v", th.Name, err)
		}
	}
}

func TestTealLiteral(t *testing.T) {
	got, err := theme.Get(Teal)
	if err != nil {
		t.Fatalf("Get(%q): %v", Teal, err)
	}

	wantFont := theme.FontStack{"ITC Avant Garde Gothic Std Bold", "Helvetica", "Arial", "sans-serif"}
	if !reflect.DeepEqual(got.Font, wantFont) {
		t.Errorf("Font = %#v, want %#v", got.Font, wantFont)
	}
	wantColors := theme.Colors{
		theme.RoleText:       "#FFFFFF",
		theme.RoleBackground: "#265F69",
		theme.RoleLink:       "#0ff",
	}
	if !reflect.DeepEqual(got.Colors, wantColors) {
		t.Errorf("Colors = %v, want %v", got.Colors, wantColors)
	}
	if got.Element(theme.ElementPre).FontSize != "12px" {
		t.Errorf("pre fontSize = %q, want 12px", got.Element(theme.ElementPre).FontSize)
	}
	if got.HighlightStyleName() == "" {
		t.Errorf("teal should be composed with the prism preset")
	}
	if !reflect.DeepEqual(got.Languages(), []string{"javascript", "jsx", "tsx", "typescript"}) {
		t.Errorf("Languages = %v", got.Languages())
	}
}

func TestTealCodeLiteral(t *testing.T) {
	got, err := theme.Get(TealCode)
	if err != nil {
		t.Fatalf("Get(%q): %v", TealCode, err)
	}
	for _, el := range theme.KnownElements {
		if got.Element(el).FontSize == "" {
			t.Errorf("teal-code should override fontSize for %s", el)
		}
	}
	if got.Element(theme.ElementH1).TextAlign != "center" {
		t.Errorf("h1 textAlign = %q", got.Element(theme.ElementH1).TextAlign)
	}
	if !reflect.DeepEqual(got.Languages(), []string{"tsx", "typescript"}) {
		t.Errorf("Languages = %v, want tsx and typescript", got.Languages())
	}
}

func TestBuiltinsDoNotShareState(t *testing.T) {
	teal, err := theme.Get(Teal)
	if err != nil {
		t.Fatal(err)
	}
	code, err := theme.Get(TealCode)
	if err != nil {
		t.Fatal(err)
	}

	if teal.Color(theme.RoleBackground) != "#265F69" || code.Color(theme.RoleBackground) != "#265F69" {
		t.Fatalf("both themes keep background #265F69, got %q and %q",
			teal.Color(theme.RoleBackground), code.Color(theme.RoleBackground))
	}

	headingSizes := func(th theme.Theme) []string {
		sizes := make([]string, 0, len(theme.Headings))
		for _, h := range theme.Headings {
			sizes = append(sizes, th.Element(h).FontSize)
		}
		return sizes
	}
	if reflect.DeepEqual(headingSizes(teal), headingSizes(code)) {
		t.Fatalf("heading tables should differ: %v", headingSizes(teal))
	}

	teal.Colors[theme.RoleBackground] = "#000000"
	teal.Elements[theme.ElementH1] = theme.ElementStyle{FontSize: "1px"}

	again, _ := theme.Get(TealCode)
	if again.Color(theme.RoleBackground) != "#265F69" || again.Element(theme.ElementH1).FontSize != "64px" {
		t.Fatalf("mutating one theme leaked into another")
	}
	tealAgain, _ := theme.Get(Teal)
	if tealAgain.Color(theme.RoleBackground) != "#265F69" {
		t.Fatalf("mutating a returned copy changed the registered theme")
	}
}

func TestRegisterInto(t *testing.T) {
	r := theme.NewRegistry()
	RegisterInto(r)
	if got := r.Available(); !reflect.DeepEqual(got, []string{Teal, TealCode}) {
		t.Fatalf("Available() = %v", got)
	}
	if r.CurrentName() != TealCode {
		t.Fatalf("CurrentName() = %q, want %q", r.CurrentName(), TealCode)
	}
}
