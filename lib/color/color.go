package color

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Tailwind resolves a palette token such as "slate-400" or "white" to its CSS value.
func Tailwind(token string) (string, bool) {
	if v, ok := keywords[token]; ok {
		return v, true
	}
	i := strings.LastIndexByte(token, '-')
	if i < 0 {
		return "", false
	}
	return Palette(token[:i], token[i+1:])
}

// Palette resolves a color name and shade.
func Palette(name, shade string) (string, bool) {
	shades, ok := palette[name]
	if !ok {
		return "", false
	}
	for i, s := range Shades {
		if s == shade {
			return shades[i], true
		}
	}
	return "", false
}

// IsPaletteName reports whether name is a shaded palette color.
func IsPaletteName(name string) bool {
	_, ok := palette[name]
	return ok
}

// IsKeyword reports whether name is an unshaded color keyword.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// Normalize parses any CSS color and returns it as lower case hex.
func Normalize(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", colorString, err)
	}
	return c.HexString(), nil
}

// Resolve accepts a palette token or an arbitrary CSS color.
func Resolve(colorString string) (string, error) {
	if v, ok := Tailwind(colorString); ok {
		return v, nil
	}
	return Normalize(colorString)
}

func LuminanceCategory(colorString string) (string, error) {
	l, err := Luminance(colorString)
	if err != nil {
		return "", err
	}

	switch {
	case l >= .88:
		return "bright", nil
	case l >= .55:
		return "normal", nil
	case l >= .30:
		return "dark", nil
	default:
		return "darker", nil
	}
}

func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}

	l := 0.299*c.R + 0.587*c.G + 0.114*c.B
	return l, nil
}

// ContrastText picks a palette token for text drawn over fill.
func ContrastText(fill string) string {
	v, err := Resolve(fill)
	if err != nil {
		return "neutral-900"
	}
	cat, err := LuminanceCategory(v)
	if err != nil {
		return "neutral-900"
	}
	switch cat {
	case "bright", "normal":
		return "neutral-900"
	default:
		return "neutral-50"
	}
}
