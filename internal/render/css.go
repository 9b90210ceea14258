package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"deckstyle/internal/theme"
)

// DefaultScope is the selector CSS rules are nested under when none is given.
const DefaultScope = ".deckstyle"

// CSS renders t as custom properties and element rules under scope.
// The output is deterministic: roles are sorted and elements follow
// theme.KnownElements. The token element maps to the ".token" class.
func CSS(t theme.Theme, scope string) string {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		scope = DefaultScope
	}

	var b strings.Builder
	var root []string
	if len(t.Font) > 0 {
		root = append(root, "--ds-font: "+t.Font.CSS())
	}
	for _, role := range slices.Sorted(maps.Keys(t.Colors)) {
		if v := t.Colors[role]; v != "" {
			root = append(root, fmt.Sprintf("--ds-color-%s: %s", role, v))
		}
	}
	if len(t.Font) > 0 {
		root = append(root, "font-family: var(--ds-font)")
	}
	if t.Color(theme.RoleText) != "" {
		root = append(root, "color: var(--ds-color-text)")
	}
	if t.Color(theme.RoleBackground) != "" {
		root = append(root, "background: var(--ds-color-background)")
	}
	writeRule(&b, scope, root)

	if t.Color(theme.RoleLink) != "" {
		writeRule(&b, scope+" a", []string{"color: var(--ds-color-link)"})
	}

	for _, el := range theme.KnownElements {
		s := t.Element(el)
		if s.IsZero() {
			continue
		}
		writeRule(&b, scope+" "+selector(el), declarations(s))
	}
	return b.String()
}

func selector(el theme.Element) string {
	if el == theme.ElementToken {
		return ".token"
	}
	return string(el)
}

func declarations(s theme.ElementStyle) []string {
	var decls []string
	add := func(prop, value string) {
		if v := strings.TrimSpace(value); v != "" {
			decls = append(decls, prop+": "+v)
		}
	}
	add("font-family", fontFamily(s.FontFamily))
	add("font-size", s.FontSize)
	add("font-weight", s.FontWeight)
	add("font-style", s.FontStyle)
	add("line-height", s.LineHeight)
	add("text-align", s.TextAlign)
	add("color", s.Color)
	add("background", s.Background)
	return decls
}

func fontFamily(css string) string {
	if strings.TrimSpace(css) == "" {
		return ""
	}
	return theme.ParseFontStack(css).CSS()
}

func writeRule(b *strings.Builder, sel string, decls []string) {
	if len(decls) == 0 {
		return
	}
	b.WriteString(sel)
	b.WriteString(" {\n")
	for _, d := range decls {
		b.WriteString("  ")
		b.WriteString(d)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}
