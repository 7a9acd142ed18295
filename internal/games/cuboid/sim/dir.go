// Package sim provides the block-tipping puzzle simulation.
// This package is UI-agnostic and deterministic: the same level and the
// same input sequence always produce the same states.
package sim

// Dir is a compass direction for a tip.
type Dir uint8

const (
	DirNone Dir = iota
	North
	South
	East
	West
)

// Axis is a horizontal motion axis.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
)

// Other returns the perpendicular horizontal axis.
func (a Axis) Other() Axis {
	return 1 - a
}

// dirInfo is one row of the direction lookup table.
type dirInfo struct {
	axis Axis
	sign float64
	name string
}

// dirTable maps every direction to its motion axis and sign.
// North/East travel towards larger coordinates.
var dirTable = [...]dirInfo{
	DirNone: {name: "none"},
	North:   {axis: AxisY, sign: 1, name: "north"},
	South:   {axis: AxisY, sign: -1, name: "south"},
	East:    {axis: AxisX, sign: 1, name: "east"},
	West:    {axis: AxisX, sign: -1, name: "west"},
}

// Dirs lists the four compass directions.
var Dirs = [4]Dir{North, South, East, West}

// Valid reports whether d is one of the four compass directions.
func (d Dir) Valid() bool {
	return d >= North && d <= West
}

// Axis returns the axis of motion.
func (d Dir) Axis() Axis {
	return dirTable[d].axis
}

// Sign returns +1 or -1 depending on the travel direction along the axis.
func (d Dir) Sign() float64 {
	return dirTable[d].sign
}

// Step returns the grid offset of one tile in this direction.
func (d Dir) Step() Coord {
	if !d.Valid() {
		return Coord{}
	}
	s := int(d.Sign())
	if d.Axis() == AxisX {
		return Coord{X: s}
	}
	return Coord{Y: s}
}

// String returns the lowercase direction name.
func (d Dir) String() string {
	if int(d) >= len(dirTable) {
		return "unknown"
	}
	return dirTable[d].name
}

// ParseDir converts a direction name back to a Dir.
func ParseDir(s string) (Dir, bool) {
	for _, d := range Dirs {
		if dirTable[d].name == s {
			return d, true
		}
	}
	return DirNone, false
}
