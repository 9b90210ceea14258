package theme

import (
	"maps"
	"slices"
)

// Merge composes base with a highlighting fragment. The merge is shallow
// and its precedence is fixed:
//
//   - CodeHighlightStyle and CodeLanguages: the fragment wins when it sets
//     them, otherwise base is kept.
//   - Name, Font, Colors and Elements: base wins when it sets them,
//     otherwise the fragment's value is used.
//
// A field counts as set when it is non-nil and non-empty. Neither input is
// modified and the result shares no maps or slices with them, so
// Merge(Merge(b, f), f) equals Merge(b, f).
func Merge(base, fragment Theme) Theme {
	out := base.Clone()

	if out.Name == "" {
		out.Name = fragment.Name
	}
	if len(out.Font) == 0 && len(fragment.Font) > 0 {
		out.Font = slices.Clone(fragment.Font)
	}
	if len(out.Colors) == 0 && len(fragment.Colors) > 0 {
		out.Colors = maps.Clone(fragment.Colors)
	}
	if len(out.Elements) == 0 && len(fragment.Elements) > 0 {
		out.Elements = maps.Clone(fragment.Elements)
	}

	if fragment.CodeHighlightStyle != nil {
		out.CodeHighlightStyle = fragment.CodeHighlightStyle
	}
	if len(fragment.CodeLanguages) > 0 {
		out.CodeLanguages = maps.Clone(fragment.CodeLanguages)
	}
	return out
}

// Compose folds Merge over parts from left to right, so
// Compose(custom, prism) is Merge(custom, prism). Compose() is the zero Theme.
func Compose(parts ...Theme) Theme {
	var out Theme
	for i, p := range parts {
		if i == 0 {
			out = p.Clone()
			continue
		}
		out = Merge(out, p)
	}
	return out
}
