// Package theme defines the immutable styling record handed to slide
// renderers: a font stack, semantic colors, per-element overrides and an
// optional syntax-highlighting style with language grammars.
//
// Records are plain values. The registry keeps private copies and hands out
// clones, so a registered theme cannot change after it is loaded:
//
//	t, err := theme.Get("teal-code")
//	if err != nil {
//		return err
//	}
//	cfg := render.StyleConfig(t)
package theme

import (
	"maps"
	"slices"

	"github.com/alecthomas/chroma/v2"
)

// Role names a semantic color slot.
type Role string

const (
	RoleText       Role = "text"
	RoleBackground Role = "background"
	RolePrimary    Role = "primary"
	RoleSecondary  Role = "secondary"
	RoleLink       Role = "link"
	RoleHighlight  Role = "highlight"
	RoleMuted      Role = "muted"
)

// Colors maps semantic roles to color strings. Renderers ignore roles they
// do not recognize.
type Colors map[Role]string

// Get returns the color for a role and whether it was set.
func (c Colors) Get(r Role) (string, bool) {
	v, ok := c[r]
	return v, ok && v != ""
}

// Element is an element tag that can carry style overrides.
type Element string

const (
	ElementH1    Element = "h1"
	ElementH2    Element = "h2"
	ElementH3    Element = "h3"
	ElementH4    Element = "h4"
	ElementH5    Element = "h5"
	ElementH6    Element = "h6"
	ElementP     Element = "p"
	ElementSpan  Element = "span"
	ElementCode  Element = "code"
	ElementPre   Element = "pre"
	ElementToken Element = "token"
)

// KnownElements lists every tag that accepts overrides, headings first.
var KnownElements = []Element{
	ElementH1, ElementH2, ElementH3, ElementH4, ElementH5, ElementH6,
	ElementP, ElementSpan, ElementCode, ElementPre, ElementToken,
}

// Headings lists h1 through h6.
var Headings = KnownElements[:6:6]

// IsKnown reports whether e accepts style overrides.
func (e Element) IsKnown() bool {
	return slices.Contains(KnownElements, e)
}

// ElementStyle holds the style attributes a renderer may apply to an element.
// Empty fields are left to the renderer's defaults.
type ElementStyle struct {
	FontSize   string `json:"fontSize,omitempty" yaml:"fontSize,omitempty" toml:"fontSize,omitempty"`
	FontFamily string `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty" toml:"fontFamily,omitempty"`
	FontWeight string `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty" toml:"fontWeight,omitempty"`
	FontStyle  string `json:"fontStyle,omitempty" yaml:"fontStyle,omitempty" toml:"fontStyle,omitempty"`
	TextAlign  string `json:"textAlign,omitempty" yaml:"textAlign,omitempty" toml:"textAlign,omitempty"`
	Color      string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty" toml:"background,omitempty"`
	LineHeight string `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty" toml:"lineHeight,omitempty"`
}

// IsZero reports whether no attribute is set.
func (s ElementStyle) IsZero() bool {
	return s == ElementStyle{}
}

// Elements maps element tags to their overrides.
type Elements map[Element]ElementStyle

// Theme is the complete styling record for a presentation.
//
// Every field is optional. CodeHighlightStyle and CodeLanguages are opaque:
// they are passed to the renderer as-is and never inspected or copied.
type Theme struct {
	Name     string
	Font     FontStack
	Colors   Colors
	Elements Elements

	CodeHighlightStyle *chroma.Style
	CodeLanguages      map[string]chroma.Lexer
}

// Clone returns a deep copy of t. Opaque highlight values are shared.
// Absent (nil) fields stay nil.
func (t Theme) Clone() Theme {
	return Theme{
		Name:               t.Name,
		Font:               slices.Clone(t.Font),
		Colors:             maps.Clone(t.Colors),
		Elements:           maps.Clone(t.Elements),
		CodeHighlightStyle: t.CodeHighlightStyle,
		CodeLanguages:      maps.Clone(t.CodeLanguages),
	}
}

// Element returns the overrides for e, or a zero style.
func (t Theme) Element(e Element) ElementStyle {
	return t.Elements[e]
}

// Color returns the color assigned to r, or "".
func (t Theme) Color(r Role) string {
	v, _ := t.Colors.Get(r)
	return v
}

// HighlightStyleName returns the chroma style name, or "" when unset.
func (t Theme) HighlightStyleName() string {
	if t.CodeHighlightStyle == nil {
		return ""
	}
	return t.CodeHighlightStyle.Name
}

// Languages returns the registered language identifiers in sorted order.
func (t Theme) Languages() []string {
	return slices.Sorted(maps.Keys(t.CodeLanguages))
}

// Lexer returns the grammar registered for a language identifier.
func (t Theme) Lexer(language string) (chroma.Lexer, bool) {
	l, ok := t.CodeLanguages[language]
	return l, ok && l != nil
}
