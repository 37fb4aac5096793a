package core

import (
	"strconv"
	"strings"
)

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Approximate RGB values of the named colors, used for nearest-match lookups.
var colorRGB = map[Color][3]int{
	ColorRed:           {205, 49, 49},
	ColorGreen:         {13, 188, 121},
	ColorYellow:        {229, 229, 16},
	ColorBlue:          {36, 114, 200},
	ColorMagenta:       {188, 63, 188},
	ColorCyan:          {17, 168, 205},
	ColorWhite:         {229, 229, 229},
	ColorBrightRed:     {241, 76, 76},
	ColorBrightGreen:   {35, 209, 139},
	ColorBrightYellow:  {245, 245, 67},
	ColorBrightBlue:    {59, 142, 234},
	ColorBrightMagenta: {214, 112, 214},
	ColorBrightCyan:    {41, 184, 219},
	ColorBrightWhite:   {255, 255, 255},
	ColorOrange:        {255, 135, 0},
	ColorGray:          {138, 138, 138},
}

// ColorFromHex maps a "#RRGGBB" string to the closest predefined color.
// Malformed input yields ColorDefault.
func ColorFromHex(hex string) Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ColorDefault
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ColorDefault
	}
	r, g, b := int(v>>16&0xFF), int(v>>8&0xFF), int(v&0xFF)

	best := ColorDefault
	bestDist := -1
	// Iterate in declaration order so ties resolve deterministically.
	for c := ColorRed; c <= ColorGray; c++ {
		rgb := colorRGB[c]
		dr, dg, db := r-rgb[0], g-rgb[1], b-rgb[2]
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
