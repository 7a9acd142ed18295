package core

import "strconv"

// Color is a cell's foreground colour, stored as its xterm-256 palette
// index. Index 0 is never drawn, so ColorDefault keeps the terminal's own
// foreground.
type Color uint8

const (
	ColorDefault       Color = 0
	ColorRed           Color = 1
	ColorGreen         Color = 2
	ColorYellow        Color = 3
	ColorBlue          Color = 4
	ColorMagenta       Color = 5
	ColorCyan          Color = 6
	ColorWhite         Color = 7
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
	ColorOrange        Color = 208
	ColorGray          Color = 245
)

// Colors lists every named colour except ColorDefault.
var Colors = []Color{
	ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorMagenta, ColorCyan, ColorWhite,
	ColorBrightRed, ColorBrightGreen, ColorBrightYellow, ColorBrightBlue,
	ColorBrightMagenta, ColorBrightCyan, ColorBrightWhite,
	ColorOrange, ColorGray,
}

// Code returns the palette index as a terminal colour string, or "" for
// ColorDefault.
func (c Color) Code() string {
	if c == ColorDefault {
		return ""
	}
	return strconv.Itoa(int(c))
}
