// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Start    []YAMLCoord       `yaml:"start"`
	Tiles    []string          `yaml:"tiles"` // one string per x, characters along y
	Switches []YAMLSwitch      `yaml:"switches,omitempty"`
	Crosses  []YAMLCross       `yaml:"crosses,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLCoord is a tile position.
type YAMLCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLSwitch is a switch trigger and the tiles it reveals.
type YAMLSwitch struct {
	At      YAMLCoord   `yaml:"at"`
	Reveals []YAMLCoord `yaml:"reveals"`
}

// YAMLCross is a cross trigger and the tile the second block is sent to.
type YAMLCross struct {
	At    YAMLCoord `yaml:"at"`
	Other YAMLCoord `yaml:"other"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Level    sim.Level
	Metadata map[string]string
}

// ParseYAML parses a YAML level file. The result is not validated.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}

	var start [2]sim.Coord
	switch len(yl.Start) {
	case 1:
		// A single start tile stands the pair up.
		start = [2]sim.Coord{yl.Start[0].coord(), yl.Start[0].coord()}
	case 2:
		start = [2]sim.Coord{yl.Start[0].coord(), yl.Start[1].coord()}
	default:
		return Level{}, fmt.Errorf("level %s: start needs 1 or 2 tiles, got %d", yl.ID, len(yl.Start))
	}

	if len(yl.Tiles) > sim.Dim {
		return Level{}, fmt.Errorf("level %s: %d tile rows, at most %d allowed", yl.ID, len(yl.Tiles), sim.Dim)
	}
	rows := make([][]sim.TileKind, len(yl.Tiles))
	for x, line := range yl.Tiles {
		for y, r := range []rune(line) {
			if y >= sim.Dim {
				return Level{}, fmt.Errorf("level %s: row %d is longer than %d", yl.ID, x, sim.Dim)
			}
			k, ok := sim.ParseTileSymbol(r)
			if !ok {
				return Level{}, fmt.Errorf("level %s: unknown tile %q at (%d,%d)", yl.ID, r, x, y)
			}
			rows[x] = append(rows[x], k)
		}
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	lvl := sim.Level{
		ID:    yl.ID,
		Name:  name,
		Grid:  sim.GridFromMatrix(rows),
		Start: start,
	}
	for _, s := range yl.Switches {
		def := sim.SwitchDef{At: s.At.coord()}
		for _, r := range s.Reveals {
			def.Reveals = append(def.Reveals, r.coord())
		}
		lvl.Switches = append(lvl.Switches, def)
	}
	for _, c := range yl.Crosses {
		lvl.Crosses = append(lvl.Crosses, sim.CrossDef{At: c.At.coord(), Other: c.Other.coord()})
	}

	return Level{Level: lvl, Metadata: yl.Metadata}, nil
}

// MarshalYAML renders a level back to the file format.
func MarshalYAML(l sim.Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:   l.ID,
		Name: l.Name,
	}
	if l.Start[0] == l.Start[1] {
		yl.Start = []YAMLCoord{fromCoord(l.Start[0])}
	} else {
		yl.Start = []YAMLCoord{fromCoord(l.Start[0]), fromCoord(l.Start[1])}
	}
	for _, row := range l.Grid.Matrix() {
		line := make([]rune, len(row))
		for y, k := range row {
			line[y] = k.Symbol()
		}
		yl.Tiles = append(yl.Tiles, string(line))
	}
	for _, s := range l.Switches {
		ys := YAMLSwitch{At: fromCoord(s.At)}
		for _, r := range s.Reveals {
			ys.Reveals = append(ys.Reveals, fromCoord(r))
		}
		yl.Switches = append(yl.Switches, ys)
	}
	for _, c := range l.Crosses {
		yl.Crosses = append(yl.Crosses, YAMLCross{At: fromCoord(c.At), Other: fromCoord(c.Other)})
	}
	return yaml.Marshal(yl)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func (c YAMLCoord) coord() sim.Coord {
	return sim.C(c.X, c.Y)
}

func fromCoord(c sim.Coord) YAMLCoord {
	return YAMLCoord{X: c.X, Y: c.Y}
}
