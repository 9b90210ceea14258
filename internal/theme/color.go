package theme

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// namedColors covers the CSS keywords themes use in practice. Values are
// only needed for lightness checks; validation accepts exactly these names.
var namedColors = map[string]string{
	"black": "#000000", "white": "#ffffff", "gray": "#808080", "grey": "#808080",
	"silver": "#c0c0c0", "red": "#ff0000", "maroon": "#800000", "orange": "#ffa500",
	"yellow": "#ffff00", "olive": "#808000", "lime": "#00ff00", "green": "#008000",
	"aqua": "#00ffff", "cyan": "#00ffff", "teal": "#008080", "blue": "#0000ff",
	"navy": "#000080", "fuchsia": "#ff00ff", "magenta": "#ff00ff", "purple": "#800080",
	"pink": "#ffc0cb", "hotpink": "#ff69b4", "tomato": "#ff6347", "coral": "#ff7f50",
	"gold": "#ffd700", "khaki": "#f0e68c", "salmon": "#fa8072", "crimson": "#dc143c",
	"indigo": "#4b0082", "violet": "#ee82ee", "orchid": "#da70d6", "plum": "#dda0dd",
	"turquoise": "#40e0d0", "skyblue": "#87ceeb", "steelblue": "#4682b4", "slategray": "#708090",
	"darkslategray": "#2f4f4f", "darkgray": "#a9a9a9", "lightgray": "#d3d3d3", "dimgray": "#696969",
	"whitesmoke": "#f5f5f5", "ivory": "#fffff0", "beige": "#f5f5dc", "linen": "#faf0e6",
	"rebeccapurple": "#663399", "darkcyan": "#008b8b", "lightblue": "#add8e6", "tan": "#d2b48c",
}

// keywordColors are valid CSS but have no fixed value.
var keywordColors = map[string]bool{
	"transparent": true, "currentcolor": true, "inherit": true, "initial": true, "unset": true,
}

var functionalColor = regexp.MustCompile(`^(rgba?|hsla?)\(\s*([^()]*)\)$`)

// ParseColor parses a color string: #rgb, #rgba, #rrggbb, #rrggbbaa, a CSS
// name, rgb()/rgba()/hsl()/hsla(), or an ANSI palette index 0-255.
// Keywords with no fixed value (transparent, currentColor, ...) parse with
// ok=false and a nil error.
func ParseColor(s string) (c colorful.Color, ok bool, err error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return colorful.Color{}, false, fmt.Errorf("empty color")
	}
	lower := strings.ToLower(raw)

	switch {
	case strings.HasPrefix(lower, "#"):
		c, err = parseHex(lower)
		return c, err == nil, err
	case keywordColors[lower]:
		return colorful.Color{}, false, nil
	case namedColors[lower] != "":
		c, err = colorful.Hex(namedColors[lower])
		return c, err == nil, err
	case functionalColor.MatchString(lower):
		c, err = parseFunctional(lower)
		return c, err == nil, err
	case isANSIIndex(lower):
		n, _ := strconv.Atoi(lower)
		return ansiToRGB(n), true, nil
	}
	return colorful.Color{}, false, fmt.Errorf("unrecognized color %q", raw)
}

// ValidColor reports whether s parses as a color.
func ValidColor(s string) bool {
	_, _, err := ParseColor(s)
	return err == nil
}

// IsDark reports whether s is a color with HSL lightness below one half.
// Unparseable and keyword colors are not dark.
func IsDark(s string) bool {
	c, ok, err := ParseColor(s)
	if err != nil || !ok {
		return false
	}
	_, _, l := c.Hsl()
	return l < 0.5
}

func parseHex(s string) (colorful.Color, error) {
	digits := strings.TrimPrefix(s, "#")
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return colorful.Color{}, fmt.Errorf("invalid hex color %q", s)
		}
	}
	switch len(digits) {
	case 3, 6:
	case 4, 8:
		// alpha is accepted but has no bearing on lightness
		digits = digits[:len(digits)-len(digits)/4]
	default:
		return colorful.Color{}, fmt.Errorf("invalid hex color %q: want 3, 4, 6 or 8 digits", s)
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}

func parseFunctional(s string) (colorful.Color, error) {
	m := functionalColor.FindStringSubmatch(s)
	fn, body := m[1], m[2]

	body = strings.ReplaceAll(body, "/", " ")
	body = strings.ReplaceAll(body, ",", " ")
	args := strings.Fields(body)

	// rgb/rgba and hsl/hsla are aliases; alpha is optional for all four.
	if len(args) != 3 && len(args) != 4 {
		return colorful.Color{}, fmt.Errorf("%s(): want 3 or 4 arguments, got %d", fn, len(args))
	}
	if len(args) == 4 {
		if _, err := parseUnit(args[3], 1); err != nil {
			return colorful.Color{}, fmt.Errorf("%s() alpha: %w", fn, err)
		}
	}

	if strings.HasPrefix(fn, "rgb") {
		var ch [3]float64
		for i := range ch {
			v, err := parseUnit(args[i], 255)
			if err != nil {
				return colorful.Color{}, fmt.Errorf("%s() channel %d: %w", fn, i+1, err)
			}
			ch[i] = v / 255
		}
		return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
	}

	hue, err := parseHue(args[0])
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%s() hue: %w", fn, err)
	}
	sat, err := parsePercent(args[1])
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%s() saturation: %w", fn, err)
	}
	light, err := parsePercent(args[2])
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%s() lightness: %w", fn, err)
	}
	hue = math.Mod(math.Mod(hue, 360)+360, 360)
	return colorful.Hsl(hue, sat, light), nil
}

// hueUnits converts CSS angle units to degrees.
var hueUnits = []struct {
	suffix string
	scale  float64
}{
	{"deg", 1},
	{"grad", 0.9},
	{"rad", 180 / math.Pi},
	{"turn", 360},
}

// parseHue parses a bare number of degrees or an angle in deg, grad, rad or
// turn.
func parseHue(s string) (float64, error) {
	scale := 1.0
	for _, u := range hueUnits {
		if strings.HasSuffix(s, u.suffix) {
			s, scale = strings.TrimSuffix(s, u.suffix), u.scale
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v * scale, nil
}

// parseUnit parses a number in [0, limit] or a percentage of limit.
func parseUnit(s string, limit float64) (float64, error) {
	if strings.HasSuffix(s, "%") {
		p, err := parsePercent(s)
		return p * limit, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > limit {
		return 0, fmt.Errorf("%s out of range 0-%g", s, limit)
	}
	return v, nil
}

func parsePercent(s string) (float64, error) {
	if !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("%s is not a percentage", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("%s out of range 0%%-100%%", s)
	}
	return v / 100, nil
}

func isANSIIndex(s string) bool {
	if len(s) == 0 || len(s) > 3 || strings.Trim(s, "0123456789") != "" {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

func ansiToRGB(n int) colorful.Color {
	if n < 16 {
		return termenv.ConvertToRGB(termenv.ANSIColor(n))
	}
	return termenv.ConvertToRGB(termenv.ANSI256Color(n))
}
