package theme

import (
	"slices"
	"strings"
)

// FontStack is an ordered list of font families; the first available family
// wins and the last should be a generic family.
type FontStack []string

var genericFamilies = []string{
	"serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui",
	"ui-serif", "ui-sans-serif", "ui-monospace", "ui-rounded",
	"emoji", "math", "fangsong",
}

// IsGenericFamily reports whether name is a CSS generic font family.
func IsGenericFamily(name string) bool {
	return slices.Contains(genericFamilies, strings.ToLower(strings.TrimSpace(name)))
}

// ParseFontStack parses a CSS font-family list such as
// `"ITC Avant Garde Gothic Std Bold", "Helvetica", sans-serif`.
// Quotes are removed and commas inside quotes are kept. Inside a quoted name
// a backslash takes the next character literally. Runs of whitespace
// collapse to one space. An unterminated quote runs to the end of input.
func ParseFontStack(css string) FontStack {
	var (
		out     FontStack
		cur     strings.Builder
		quote   rune
		escaped bool
	)
	flush := func() {
		name := strings.Join(strings.Fields(cur.String()), " ")
		cur.Reset()
		if name != "" {
			out = append(out, name)
		}
	}
	for _, r := range css {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote != 0 && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
		case quote == 0 && r == ',':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// Primary returns the first family, or "".
func (f FontStack) Primary() string {
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// Fallback returns the last family, normally a generic one.
func (f FontStack) Fallback() string {
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

// CSS renders the stack as a font-family value. Generic families are left
// bare; other names are double-quoted with backslash and quote escaped.
func (f FontStack) CSS() string {
	parts := make([]string, 0, len(f))
	for _, name := range f {
		if IsGenericFamily(name) {
			parts = append(parts, strings.ToLower(name))
			continue
		}
		parts = append(parts, `"`+cssEscaper.Replace(name)+`"`)
	}
	return strings.Join(parts, ", ")
}

var cssEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// String implements fmt.Stringer.
func (f FontStack) String() string {
	return f.CSS()
}
