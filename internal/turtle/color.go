// File: color.go
// Title: Pen Colors
// Description: Pen color value and the predicate deciding which color
//              strings are accepted: hex (#rgb, #rrggbb), CSS color names and
//              numeric RGB values.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package turtle

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a validated CSS color: a hex string or a lower-case CSS name
type Color string

// Black is the default pen color
const Black Color = "black"

var hexPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsHexColor reports whether s matches #rgb or #rrggbb
func IsHexColor(s string) bool {
	return hexPattern.MatchString(s)
}

// IsNamedColor reports whether s is a CSS color name
func IsNamedColor(s string) bool {
	_, ok := colornames.Map[s]
	return ok
}

// IsNumericColor reports whether s is an RGB value written as a number,
// decimal (16711680) or 0x-prefixed (0xff0000)
func IsNumericColor(s string) bool {
	_, ok := parseNumeric(s)
	return ok
}

// IsCSSColor is the predicate a pen color candidate must satisfy
func IsCSSColor(s string) bool {
	return IsHexColor(s) || IsNamedColor(s) || IsNumericColor(s)
}

// ParseColor validates s and returns the color; numeric values become hex
func ParseColor(s string) (Color, bool) {
	switch {
	case IsHexColor(s):
		return Color(strings.ToLower(s)), true
	case IsNamedColor(s):
		return Color(s), true
	}
	if n, ok := parseNumeric(s); ok {
		return Color(fmt.Sprintf("#%06x", n)), true
	}
	return "", false
}

func parseNumeric(s string) (uint32, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	n, err := strconv.ParseUint(s, base, 32)
	if err != nil || n > 0xFFFFFF {
		// floats such as "3.5" end up here as well
		f, ferr := strconv.ParseFloat(s, 64)
		if base != 10 || ferr != nil || f < 0 || f > 0xFFFFFF || f != float64(uint32(f)) {
			return 0, false
		}
		n = uint64(f)
	}
	return uint32(n), true
}

// RGBA returns the color as an opaque RGBA value
func (c Color) RGBA() color.RGBA {
	if named, ok := colornames.Map[string(c)]; ok {
		return named
	}
	if cf, err := colorful.Hex(expandHex(string(c))); err == nil {
		r, g, b := cf.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return colornames.Black
}

// Hex returns the color as #rrggbb
func (c Color) Hex() string {
	cf, _ := colorful.MakeColor(c.RGBA())
	return cf.Hex()
}

// expandHex turns #rgb into #rrggbb; colorful.Hex needs the long form
func expandHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}
