// Package highlight builds syntax-highlighting fragments: themes that only
// carry a chroma style and language grammars, ready to be merged into a base
// theme with theme.Merge.
package highlight

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"deckstyle/internal/debug"
	apperrors "deckstyle/internal/errors"
	"deckstyle/internal/theme"
)

const (
	// PrismStyle is the chroma style standing in for Prism's okaidia palette.
	PrismStyle = "monokai"
)

// PrismLanguages are the grammars the prism preset registers.
var PrismLanguages = []string{"javascript", "jsx", "typescript", "tsx"}

// Style looks up a chroma style by name. Unlike styles.Get it does not fall
// back to a default: a missing style is an error.
func Style(name string) (*chroma.Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if s, ok := styles.Registry[key]; ok && s != nil {
		return s, nil
	}
	return nil, apperrors.New(apperrors.CodeMissingHighlight, fmt.Sprintf("highlight style %q is not available", name), nil)
}

// Lexer looks up a chroma grammar by name, alias or file extension.
func Lexer(language string) (chroma.Lexer, error) {
	key := strings.ToLower(strings.TrimSpace(language))
	if key != "" {
		if l := lexers.Get(key); l != nil {
			return l, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeMissingHighlight, fmt.Sprintf("grammar for %q is not available", language), nil)
}

// Fragment resolves a chroma style and grammars into a highlighting fragment.
// An empty style name leaves CodeHighlightStyle unset. Any unresolvable name
// fails the whole fragment; there is no partial result.
func Fragment(style string, languages ...string) (theme.Theme, error) {
	var frag theme.Theme

	if strings.TrimSpace(style) != "" {
		s, err := Style(style)
		if err != nil {
			return theme.Theme{}, err
		}
		frag.CodeHighlightStyle = s
	}

	var missing []string
	for _, lang := range languages {
		key := strings.ToLower(strings.TrimSpace(lang))
		if key == "" {
			continue
		}
		l, err := Lexer(key)
		if err != nil {
			missing = append(missing, key)
			continue
		}
		if frag.CodeLanguages == nil {
			frag.CodeLanguages = make(map[string]chroma.Lexer, len(languages))
		}
		frag.CodeLanguages[key] = l
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return theme.Theme{}, apperrors.New(apperrors.CodeMissingHighlight,
			"grammars not available: "+strings.Join(missing, ", "), nil)
	}

	debug.Logf("highlight: fragment style=%q languages=%v", frag.HighlightStyleName(), frag.Languages())
	return frag, nil
}

// MustFragment is Fragment for package initialization; it panics when a
// style or grammar is missing.
func MustFragment(style string, languages ...string) theme.Theme {
	frag, err := Fragment(style, languages...)
	if err != nil {
		panic(err)
	}
	return frag
}

// Prism returns the prism-like preset fragment.
func Prism() theme.Theme {
	return MustFragment(PrismStyle, PrismLanguages...)
}

// Styles lists the available chroma style names.
func Styles() []string {
	return styles.Names()
}
