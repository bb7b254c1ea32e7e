package core

// Color is the palette slot of a screen cell. Platforms map slots to real
// terminal colors; the simulation only picks slots.
type Color uint8

// Bakery palette. Obstacles cycle through the crust tones, chasers take the
// primaries, and the seeker alone is ColorBrightYellow.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorBrightYellow
	ColorOrange
	ColorPink
	ColorBrown

	colorCount
)

var colorNames = [colorCount]string{
	ColorDefault:      "default",
	ColorRed:          "red",
	ColorGreen:        "green",
	ColorYellow:       "yellow",
	ColorBlue:         "blue",
	ColorMagenta:      "magenta",
	ColorCyan:         "cyan",
	ColorBrightYellow: "bright-yellow",
	ColorOrange:       "orange",
	ColorPink:         "pink",
	ColorBrown:        "brown",
}

// String returns the lowercase color name used in snapshots.
func (c Color) String() string {
	if c >= colorCount {
		return colorNames[ColorDefault]
	}
	return colorNames[c]
}

// Valid reports whether c is a palette slot.
func (c Color) Valid() bool {
	return c < colorCount
}
