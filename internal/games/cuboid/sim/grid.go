package sim

import "fmt"

// Dim is the side length of every board.
const Dim = 10

// TileKind describes what a floor cell is made of.
type TileKind uint8

const (
	Empty  TileKind = iota // no floor, blocks fall through
	Normal                 // plain floor
	Alt                    // fragile floor, a standing pair drops through it
	Switch                 // reveals hidden floor when visited
	Cross                  // splits a standing pair into two blocks
	Hazard                 // the goal hole, a standing pair drops through and clears the level
)

// tileSymbols is the level-file alphabet, indexed by TileKind.
var tileSymbols = [...]rune{
	Empty:  '.',
	Normal: '#',
	Alt:    'o',
	Switch: 's',
	Cross:  'x',
	Hazard: 'H',
}

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Normal:
		return "normal"
	case Alt:
		return "alt"
	case Switch:
		return "switch"
	case Cross:
		return "cross"
	case Hazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Symbol returns the character used for this kind in level files.
func (k TileKind) Symbol() rune {
	if int(k) >= len(tileSymbols) {
		return '?'
	}
	return tileSymbols[k]
}

// ParseTileSymbol converts a level-file character to a TileKind.
func ParseTileSymbol(r rune) (TileKind, bool) {
	for k, sym := range tileSymbols {
		if sym == r {
			return TileKind(k), true
		}
	}
	return Empty, false
}

// Solid reports whether a block can rest on the tile.
func (k TileKind) Solid() bool {
	return k != Empty
}

// Coord is an integer grid position.
type Coord struct {
	X, Y int
}

// C is a shorthand constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// InBounds reports whether c lies on the board.
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < Dim && c.Y >= 0 && c.Y < Dim
}

// Manhattan returns the taxicab distance between two coordinates.
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// String returns "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is the tile matrix of a board, indexed [x][y].
// It is a value type so a level template can be copied on entry.
type Grid struct {
	cells [Dim][Dim]TileKind
}

// At returns the tile kind at c. Off-board coordinates are Empty.
func (g Grid) At(c Coord) TileKind {
	if !c.InBounds() {
		return Empty
	}
	return g.cells[c.X][c.Y]
}

// Set changes the tile kind at c. Off-board coordinates are ignored.
func (g *Grid) Set(c Coord, k TileKind) {
	if !c.InBounds() {
		return
	}
	g.cells[c.X][c.Y] = k
}

// Count returns the number of tiles of the given kind.
func (g Grid) Count(k TileKind) int {
	n := 0
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			if g.cells[x][y] == k {
				n++
			}
		}
	}
	return n
}

// GridFromMatrix builds a grid from rows of tile kinds, rows[x][y].
// Missing rows and columns are Empty.
func GridFromMatrix(rows [][]TileKind) Grid {
	var g Grid
	for x := 0; x < len(rows) && x < Dim; x++ {
		for y := 0; y < len(rows[x]) && y < Dim; y++ {
			g.cells[x][y] = rows[x][y]
		}
	}
	return g
}

// Matrix returns the grid as rows of tile kinds, rows[x][y].
func (g Grid) Matrix() [][]TileKind {
	rows := make([][]TileKind, Dim)
	for x := 0; x < Dim; x++ {
		rows[x] = make([]TileKind, Dim)
		copy(rows[x], g.cells[x][:])
	}
	return rows
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
