package render

import "strings"

// SplitSlides splits a deck on lines consisting only of "---". Separators
// inside fenced code blocks are ignored, blank slides are dropped and each
// slide is trimmed.
func SplitSlides(markdown string) []string {
	var (
		slides  []string
		current []string
		fence   string
	)
	flush := func() {
		if s := strings.TrimSpace(strings.Join(current, "\n")); s != "" {
			slides = append(slides, s)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case fence != "":
			if strings.HasPrefix(trimmed, fence) && strings.TrimLeft(trimmed, fence[:1]) == "" {
				fence = ""
			}
		case fenceMarker(trimmed) != "":
			fence = fenceMarker(trimmed)
		case trimmed == "---":
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return slides
}
