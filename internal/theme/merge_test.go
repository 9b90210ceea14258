package theme

import (
	"reflect"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

func prismFragment() Theme {
	return Theme{
		CodeHighlightStyle: styles.Get("monokai"),
		CodeLanguages: map[string]chroma.Lexer{
			"tsx": lexers.Get("tsx"),
		},
	}
}

func TestMergeKeepsBaseFields(t *testing.T) {
	base := Theme{
		Colors: Colors{RoleText: "#FFFFFF", RoleBackground: "#265F69"},
		Font:   FontStack{"Arial", "sans-serif"},
	}
	frag := Theme{CodeHighlightStyle: styles.Get("monokai")}

	got := Merge(base, frag)

	want := Theme{
		Colors:             Colors{RoleText: "#FFFFFF", RoleBackground: "#265F69"},
		Font:               FontStack{"Arial", "sans-serif"},
		CodeHighlightStyle: frag.CodeHighlightStyle,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	base := sampleTheme()
	base.CodeHighlightStyle = nil
	frag := prismFragment()

	once := Merge(base, frag)
	twice := Merge(once, frag)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merging twice differs from merging once:\nonce=%+v\ntwice=%+v", once, twice)
	}
}

func TestMergeIsDeterministic(t *testing.T) {
	base := sampleTheme()
	frag := Theme{
		Name:     "frag",
		Colors:   Colors{RoleText: "#000000", RoleLink: "#00f"},
		Elements: Elements{ElementH1: {FontSize: "1px"}},
	}
	first := Merge(base, frag)
	for i := 0; i < 50; i++ {
		if got := Merge(base, frag); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced a different result", i)
		}
	}
}

func TestMergePrecedence(t *testing.T) {
	monokai := styles.Get("monokai")
	dracula := styles.Get("dracula")

	base := Theme{
		Name:               "base",
		Font:               FontStack{"Arial", "sans-serif"},
		Colors:             Colors{RoleText: "#FFFFFF"},
		Elements:           Elements{ElementH1: {FontSize: "64px"}},
		CodeHighlightStyle: monokai,
		CodeLanguages:      map[string]chroma.Lexer{"go": lexers.Get("go")},
	}
	frag := Theme{
		Name:               "frag",
		Font:               FontStack{"Georgia", "serif"},
		Colors:             Colors{RoleText: "#000000", RoleLink: "#00f"},
		Elements:           Elements{ElementP: {FontSize: "20px"}},
		CodeHighlightStyle: dracula,
		CodeLanguages:      map[string]chroma.Lexer{"tsx": lexers.Get("tsx")},
	}

	got := Merge(base, frag)

	if got.Name != "base" {
		t.Errorf("Name = %q, base should win", got.Name)
	}
	if !reflect.DeepEqual(got.Font, base.Font) {
		t.Errorf("Font = %v, base should win", got.Font)
	}
	if !reflect.DeepEqual(got.Colors, base.Colors) {
		t.Errorf("Colors = %v, base should win as a whole", got.Colors)
	}
	if !reflect.DeepEqual(got.Elements, base.Elements) {
		t.Errorf("Elements = %v, base should win as a whole", got.Elements)
	}
	if got.CodeHighlightStyle != dracula {
		t.Errorf("CodeHighlightStyle = %s, fragment should win", got.HighlightStyleName())
	}
	if !reflect.DeepEqual(got.Languages(), []string{"tsx"}) {
		t.Errorf("Languages = %v, fragment should win as a whole", got.Languages())
	}
}

func TestMergeFillsAbsentFields(t *testing.T) {
	frag := Theme{
		Name:     "frag",
		Font:     FontStack{"Georgia", "serif"},
		Colors:   Colors{RoleLink: "#00f"},
		Elements: Elements{ElementP: {FontSize: "20px"}},
	}
	base := Theme{CodeHighlightStyle: styles.Get("monokai")}

	got := Merge(base, frag)
	if got.Name != "frag" || got.Font.Primary() != "Georgia" || got.Color(RoleLink) != "#00f" || got.Element(ElementP).FontSize != "20px" {
		t.Fatalf("absent base fields should come from fragment: %+v", got)
	}
	if got.HighlightStyleName() != "monokai" {
		t.Fatalf("unset fragment highlight should keep base style, got %q", got.HighlightStyleName())
	}
}

func TestMergeWithEmptyInputs(t *testing.T) {
	if got := Merge(Theme{}, Theme{}); !reflect.DeepEqual(got, Theme{}) {
		t.Fatalf("Merge of empty themes = %+v", got)
	}
	base := sampleTheme()
	if got := Merge(base, Theme{}); !reflect.DeepEqual(got, base) {
		t.Fatalf("merging an empty fragment should not change base")
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	base := Theme{Colors: Colors{RoleText: "#FFFFFF"}}
	frag := prismFragment()

	got := Merge(base, frag)
	got.Colors[RoleText] = "#000000"
	got.CodeLanguages["go"] = lexers.Get("go")

	if base.Colors[RoleText] != "#FFFFFF" {
		t.Fatalf("merge result aliases base colors")
	}
	if _, ok := frag.CodeLanguages["go"]; ok {
		t.Fatalf("merge result aliases fragment languages")
	}
}

func TestCompose(t *testing.T) {
	if got := Compose(); !reflect.DeepEqual(got, Theme{}) {
		t.Fatalf("Compose() = %+v, want zero", got)
	}

	base := Theme{Name: "custom", Colors: Colors{RoleBackground: "#265F69"}}
	frag := prismFragment()
	extra := Theme{Font: FontStack{"Arial", "sans-serif"}}

	got := Compose(base, frag, extra)
	want := Merge(Merge(base, frag), extra)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Compose() = %+v, want %+v", got, want)
	}
	if got.Font.Primary() != "Arial" || got.HighlightStyleName() != "monokai" {
		t.Fatalf("Compose lost fields: %+v", got)
	}
}
