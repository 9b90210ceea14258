// Command deckstyle manages slideshow themes: it lists, validates and
// exports theme records, previews decks in the terminal and serves theme
// CSS to browser decks.
package main

import (
	"fmt"
	"os"

	"deckstyle/internal/theme"
	_ "deckstyle/internal/theme/builtin"
)

func main() {
	if err := newRootCmd(theme.Default()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
