// Package builtin registers the bundled themes with the default registry.
// Import it for its side effect:
//
//	import _ "deckstyle/internal/theme/builtin"
package builtin

import "deckstyle/internal/theme"

// Names of the bundled themes.
const (
	Teal     = "teal"
	TealCode = "teal-code"
)

func init() {
	RegisterInto(theme.Default())
}

// RegisterInto registers the bundled themes in r and makes teal-code
// current. It panics if a bundled theme is malformed.
func RegisterInto(r *theme.Registry) {
	r.MustRegister(TealTheme())
	r.MustRegister(TealCodeTheme())
	if err := r.SetTheme(TealCode); err != nil {
		panic(err)
	}
}
