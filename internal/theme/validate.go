package theme

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	apperrors "deckstyle/internal/errors"
)

var (
	cssLength   = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)(px|em|rem|pt|pc|%|vw|vh|vmin|vmax|ch|ex)?$`)
	sizeKeyword = []string{"xx-small", "x-small", "small", "medium", "large", "x-large", "xx-large", "xxx-large", "smaller", "larger"}
	textAligns  = []string{"left", "right", "center", "justify", "start", "end"}
	fontWeights = []string{"normal", "bold", "bolder", "lighter", "100", "200", "300", "400", "500", "600", "700", "800", "900"}
	fontStyles  = []string{"normal", "italic", "oblique"}
)

// Validate checks every literal in t and returns all problems joined, or nil.
// Problems are reported in a fixed order: font, colors by role, elements by tag.
// Each problem carries an errors.Code (CodeInvalidFont, CodeInvalidColor,
// CodeInvalidElement).
func Validate(t Theme) error {
	var problems []error

	problems = append(problems, validateFont(t.Font)...)

	for _, role := range slices.Sorted(maps.Keys(t.Colors)) {
		if strings.TrimSpace(string(role)) == "" {
			problems = append(problems, apperrors.New(apperrors.CodeInvalidColor, "colors: empty role name", nil))
			continue
		}
		if _, _, err := ParseColor(t.Colors[role]); err != nil {
			problems = append(problems, apperrors.New(apperrors.CodeInvalidColor, fmt.Sprintf("colors.%s", role), err))
		}
	}

	for _, el := range slices.Sorted(maps.Keys(t.Elements)) {
		problems = append(problems, validateElement(el, t.Elements[el])...)
	}

	return errors.Join(problems...)
}

func validateFont(f FontStack) []error {
	if f == nil {
		return nil
	}
	if len(f) == 0 {
		return []error{apperrors.New(apperrors.CodeInvalidFont, "font: empty font stack", nil)}
	}
	var problems []error
	for i, name := range f {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, apperrors.New(apperrors.CodeInvalidFont, fmt.Sprintf("font[%d]: empty family name", i), nil))
		}
	}
	if !IsGenericFamily(f.Fallback()) {
		problems = append(problems, apperrors.New(apperrors.CodeInvalidFont,
			fmt.Sprintf("font: last family %q is not a generic family", f.Fallback()), nil))
	}
	return problems
}

func validateElement(el Element, s ElementStyle) []error {
	if !el.IsKnown() {
		return []error{apperrors.New(apperrors.CodeInvalidElement, fmt.Sprintf("elements: unknown element %q", el), nil)}
	}

	var problems []error
	fail := func(attr, value, want string) {
		problems = append(problems, apperrors.New(apperrors.CodeInvalidElement,
			fmt.Sprintf("elements.%s.%s: %q is not %s", el, attr, value, want), nil))
	}

	if v := strings.TrimSpace(s.FontSize); v != "" && !cssLength.MatchString(v) && !slices.Contains(sizeKeyword, v) {
		fail("fontSize", v, "a length or size keyword")
	}
	if v := strings.TrimSpace(s.LineHeight); v != "" && v != "normal" && !cssLength.MatchString(v) {
		fail("lineHeight", v, "a number or length")
	}
	if v := strings.ToLower(strings.TrimSpace(s.TextAlign)); v != "" && !slices.Contains(textAligns, v) {
		fail("textAlign", v, strings.Join(textAligns, "|"))
	}
	if v := strings.ToLower(strings.TrimSpace(s.FontWeight)); v != "" && !slices.Contains(fontWeights, v) {
		fail("fontWeight", v, "a CSS font weight")
	}
	if v := strings.ToLower(strings.TrimSpace(s.FontStyle)); v != "" && !slices.Contains(fontStyles, v) {
		fail("fontStyle", v, strings.Join(fontStyles, "|"))
	}
	if s.FontFamily != "" {
		if stack := ParseFontStack(s.FontFamily); len(stack) == 0 {
			problems = append(problems, apperrors.New(apperrors.CodeInvalidFont,
				fmt.Sprintf("elements.%s.fontFamily: empty font stack", el), nil))
		}
	}
	for _, c := range [...]struct{ attr, value string }{{"color", s.Color}, {"background", s.Background}} {
		if c.value == "" {
			continue
		}
		if _, _, err := ParseColor(c.value); err != nil {
			problems = append(problems, apperrors.New(apperrors.CodeInvalidColor, fmt.Sprintf("elements.%s.%s", el, c.attr), err))
		}
	}
	return problems
}
