package draw

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// The classic teaching palette. These are package variables rather than
// constants because color.RGBA is a struct type.
var (
	Black         = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White         = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red           = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green         = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue          = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Cyan          = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta       = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Yellow        = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	DarkRed       = color.RGBA{R: 128, G: 0, B: 0, A: 255}
	DarkGreen     = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	DarkBlue      = color.RGBA{R: 0, G: 0, B: 128, A: 255}
	Gray          = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	LightGray     = color.RGBA{R: 192, G: 192, B: 192, A: 255}
	DarkGray      = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	Orange        = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	Pink          = color.RGBA{R: 255, G: 175, B: 175, A: 255}
	Violet        = color.RGBA{R: 238, G: 130, B: 238, A: 255}
	BookBlue      = color.RGBA{R: 9, G: 90, B: 166, A: 255}
	BookLightBlue = color.RGBA{R: 103, G: 198, B: 243, A: 255}
	BookRed       = color.RGBA{R: 150, G: 35, B: 31, A: 255}
)

// NamedColors maps lowercase color names to palette values, for sketch
// scripts and ParseColor.
var NamedColors = map[string]color.RGBA{
	"black":           Black,
	"white":           White,
	"red":             Red,
	"green":           Green,
	"blue":            Blue,
	"cyan":            Cyan,
	"magenta":         Magenta,
	"yellow":          Yellow,
	"dark_red":        DarkRed,
	"dark_green":      DarkGreen,
	"dark_blue":       DarkBlue,
	"gray":            Gray,
	"grey":            Gray,
	"light_gray":      LightGray,
	"light_grey":      LightGray,
	"dark_gray":       DarkGray,
	"dark_grey":       DarkGray,
	"orange":          Orange,
	"pink":            Pink,
	"violet":          Violet,
	"book_blue":       BookBlue,
	"book_light_blue": BookLightBlue,
	"book_red":        BookRed,
}

// ParseColor parses a color string and returns an RGBA color.
// Supported formats:
//   - Named palette colors: "red", "book_blue", etc.
//   - Hex formats: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA" (# optional)
//   - RGB function: "rgb(255, 0, 0)"
//   - RGBA function: "rgba(255, 0, 0, 0.5)" or "rgba(255, 0, 0, 128)"
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}

	if clr, ok := NamedColors[strings.ToLower(s)]; ok {
		return clr, nil
	}

	if strings.HasPrefix(s, "#") || isHexString(s) {
		return parseHexColor(s)
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgba(") {
		return parseRGBAFunc(s)
	}
	if strings.HasPrefix(lower, "rgb(") {
		return parseRGBFunc(s)
	}

	return color.RGBA{}, fmt.Errorf("unrecognized color format: %q", s)
}

// MustParseColor parses a color string and panics if parsing fails.
// Use this only for known-good color values in initialization code.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// isHexString checks if the string looks like a hex color (without #).
func isHexString(s string) bool {
	if len(s) != 3 && len(s) != 4 && len(s) != 6 && len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'f') ||
		(c >= 'A' && c <= 'F')
}

// parseHexColor parses a hex color string of 3, 4, 6, or 8 digits.
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")

	var digits []string
	switch len(s) {
	case 3, 4:
		for i := 0; i < len(s); i++ {
			digits = append(digits, s[i:i+1]+s[i:i+1])
		}
	case 6, 8:
		for i := 0; i < len(s); i += 2 {
			digits = append(digits, s[i:i+2])
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length: %d", len(s))
	}

	var vals [4]uint8
	vals[3] = 255
	names := [4]string{"red", "green", "blue", "alpha"}
	for i, d := range digits {
		v, err := strconv.ParseUint(d, 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid %s component: %w", names[i], err)
		}
		vals[i] = uint8(v)
	}
	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

// parseRGBFunc parses an "rgb(r, g, b)" format string.
func parseRGBFunc(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(s), "rgb(") || !strings.HasSuffix(s, ")") {
		return color.RGBA{}, fmt.Errorf("invalid rgb() format: %q", s)
	}

	parts := strings.Split(s[4:len(s)-1], ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("rgb() requires exactly 3 values, got %d", len(parts))
	}

	var vals [3]uint8
	names := [3]string{"red", "green", "blue"}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid %s value: %w", names[i], err)
		}
		vals[i] = uint8(v)
	}
	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}, nil
}

// parseRGBAFunc parses an "rgba(r, g, b, a)" format string.
func parseRGBAFunc(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(s), "rgba(") || !strings.HasSuffix(s, ")") {
		return color.RGBA{}, fmt.Errorf("invalid rgba() format: %q", s)
	}

	parts := strings.Split(s[5:len(s)-1], ",")
	if len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("rgba() requires exactly 4 values, got %d", len(parts))
	}

	var vals [3]uint8
	names := [3]string{"red", "green", "blue"}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid %s value: %w", names[i], err)
		}
		vals[i] = uint8(v)
	}
	a, err := parseAlphaComponent(strings.TrimSpace(parts[3]))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid alpha value: %w", err)
	}
	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: a}, nil
}

// parseAlphaComponent parses an alpha value.
// Accepts both 0-255 integer and 0.0-1.0 float formats.
func parseAlphaComponent(s string) (uint8, error) {
	if strings.Contains(s, ".") {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if val < 0 {
			val = 0
		}
		if val > 1 {
			val = 1
		}
		return uint8(val * 255), nil
	}

	val, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(val), nil
}

// WithAlpha returns a copy of the color with the specified alpha (0-255).
func WithAlpha(c color.RGBA, alpha uint8) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Blend mixes two colors with the specified ratio (0.0-1.0).
// A ratio of 0.0 returns c1, 1.0 returns c2, 0.5 an even mix.
func Blend(c1, c2 color.RGBA, ratio float64) color.RGBA {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-ratio) + float64(b)*ratio)
	}
	return color.RGBA{
		R: mix(c1.R, c2.R),
		G: mix(c1.G, c2.G),
		B: mix(c1.B, c2.B),
		A: mix(c1.A, c2.A),
	}
}

// Lighten moves the color toward white. Amount 0.0 returns the original
// color, 1.0 returns white.
func Lighten(c color.RGBA, amount float64) color.RGBA {
	return Blend(c, WithAlpha(White, c.A), clamp01(amount))
}

// Darken moves the color toward black. Amount 0.0 returns the original
// color, 1.0 returns black.
func Darken(c color.RGBA, amount float64) color.RGBA {
	return Blend(c, WithAlpha(Black, c.A), clamp01(amount))
}

// Invert returns the complementary color, preserving alpha.
func Invert(c color.RGBA) color.RGBA {
	return color.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
}

// Grayscale converts a color to gray using standard luminance weights.
func Grayscale(c color.RGBA) color.RGBA {
	lum := uint8(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B))
	return color.RGBA{R: lum, G: lum, B: lum, A: c.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
