package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownColor is returned when a color name is not in the color table.
var ErrUnknownColor = errors.New("unknown color")

// Color is the symbolic color of a cell.
// It is resolved to a display encoding only by the renderer.
type Color uint8

// Recognized colors. ColorDefault means "terminal default" (no escape).
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorCount // Sentinel value for iteration
)

// colorInfo is one row of the static color table.
type colorInfo struct {
	name string
	ansi int    // ANSI 256-color index, -1 for default
	hex  string // RGB approximation for truecolor targets
}

var colorTable = [ColorCount]colorInfo{
	ColorDefault:       {"default", -1, ""},
	ColorBlack:         {"black", 0, "#000000"},
	ColorRed:           {"red", 1, "#cd3131"},
	ColorGreen:         {"green", 2, "#0dbc79"},
	ColorYellow:        {"yellow", 3, "#e5e510"},
	ColorBlue:          {"blue", 4, "#2472c8"},
	ColorMagenta:       {"magenta", 5, "#bc3fbc"},
	ColorCyan:          {"cyan", 6, "#11a8cd"},
	ColorWhite:         {"white", 7, "#e5e5e5"},
	ColorBrightBlack:   {"bright_black", 8, "#666666"},
	ColorBrightRed:     {"bright_red", 9, "#f14c4c"},
	ColorBrightGreen:   {"bright_green", 10, "#23d18b"},
	ColorBrightYellow:  {"bright_yellow", 11, "#f5f543"},
	ColorBrightBlue:    {"bright_blue", 12, "#3b8eea"},
	ColorBrightMagenta: {"bright_magenta", 13, "#d670d6"},
	ColorBrightCyan:    {"bright_cyan", 14, "#29b8db"},
	ColorBrightWhite:   {"bright_white", 15, "#ffffff"},
	ColorOrange:        {"orange", 208, "#ff8700"},
	ColorGray:          {"gray", 245, "#8a8a8a"},
}

// String returns the color's table name.
func (c Color) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return colorTable[c].name
}

// Valid reports whether c is a member of the color table.
func (c Color) Valid() bool {
	return c < ColorCount
}

// IsDefault reports whether c leaves the terminal color untouched.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

// ANSI returns the ANSI 256-color index, or -1 for the default color.
func (c Color) ANSI() int {
	if !c.Valid() {
		return -1
	}
	return colorTable[c].ansi
}

// Hex returns an RGB approximation such as "#cd3131".
// The default color has no RGB value and returns "".
func (c Color) Hex() string {
	if !c.Valid() {
		return ""
	}
	return colorTable[c].hex
}

// ParseColor converts a color name to a Color.
// Names are case-insensitive; "grey" is accepted as an alias for "gray".
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "none":
		return ColorDefault, nil
	case "grey":
		return ColorGray, nil
	}
	for i := range colorTable {
		if colorTable[i].name == n {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// ParseBackground parses a background color name.
// Both "red" and the prefixed "bg_red" spellings are accepted.
func ParseBackground(name string) (Color, error) {
	n := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "bg_")
	c, err := ParseColor(n)
	if err != nil {
		return ColorDefault, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// AllColors returns every non-default color in table order.
func AllColors() []Color {
	colors := make([]Color, 0, ColorCount-1)
	for c := ColorBlack; c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}

// ColorNames returns the names of every recognized color, default included.
func ColorNames() []string {
	names := make([]string, 0, ColorCount)
	for c := ColorDefault; c < ColorCount; c++ {
		names = append(names, c.String())
	}
	return names
}
