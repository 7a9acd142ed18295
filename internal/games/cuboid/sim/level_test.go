package sim_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
)

func TestGridOffBoardIsEmpty(t *testing.T) {
	var g sim.Grid
	g.Set(sim.C(0, 0), sim.Normal)
	g.Set(sim.C(-1, 0), sim.Normal)
	g.Set(sim.C(sim.Dim, 0), sim.Normal)

	for _, c := range []sim.Coord{sim.C(-1, 0), sim.C(0, -1), sim.C(sim.Dim, 3), sim.C(3, sim.Dim)} {
		if k := g.At(c); k != sim.Empty {
			t.Errorf("At(%v) = %v, expected empty", c, k)
		}
	}
	if g.Count(sim.Normal) != 1 {
		t.Errorf("Count(Normal) = %d, expected 1", g.Count(sim.Normal))
	}
}

func TestTileSymbolsRoundTrip(t *testing.T) {
	for _, k := range []sim.TileKind{sim.Empty, sim.Normal, sim.Alt, sim.Switch, sim.Cross, sim.Hazard} {
		got, ok := sim.ParseTileSymbol(k.Symbol())
		if !ok || got != k {
			t.Errorf("ParseTileSymbol(%q) = %v, %v, expected %v", k.Symbol(), got, ok, k)
		}
	}
	if _, ok := sim.ParseTileSymbol('?'); ok {
		t.Error("ParseTileSymbol('?') accepted")
	}
}

func TestLevelValidate(t *testing.T) {
	base := func() sim.Level { return level(t, "v", "###", "H##") }

	tests := []struct {
		name   string
		mutate func(*sim.Level)
		ok     bool
	}{
		{"valid", func(*sim.Level) {}, true},
		{"stacked start", func(l *sim.Level) { l.Start = [2]sim.Coord{sim.C(0, 1), sim.C(0, 1)} }, true},
		{"start off board", func(l *sim.Level) { l.Start[0] = sim.C(-1, 0) }, false},
		{"start over a hole", func(l *sim.Level) { l.Start = [2]sim.Coord{sim.C(2, 0), sim.C(2, 1)} }, false},
		{"start apart", func(l *sim.Level) { l.Start[1] = sim.C(0, 2) }, false},
		{"start on a trigger", func(l *sim.Level) {
			l.Grid.Set(sim.C(0, 1), sim.Empty)
			l.Switches = []sim.SwitchDef{{At: sim.C(0, 1)}}
		}, true},
		{"reveal off board", func(l *sim.Level) {
			l.Switches = []sim.SwitchDef{{At: sim.C(1, 1), Reveals: []sim.Coord{sim.C(0, 10)}}}
		}, false},
		{"cross to itself", func(l *sim.Level) {
			l.Crosses = []sim.CrossDef{{At: sim.C(1, 1), Other: sim.C(1, 1)}}
		}, false},
		{"no goal", func(l *sim.Level) { l.Grid.Set(sim.C(1, 0), sim.Normal) }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := base()
			tc.mutate(&l)
			err := l.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if !tc.ok && !errors.Is(err, sim.ErrInvalidLevel) {
				t.Errorf("Validate() error = %v, expected ErrInvalidLevel", err)
			}
		})
	}
}

func TestEntryGridStampsTriggers(t *testing.T) {
	l := level(t, "e", "###", "H##")
	l.Switches = []sim.SwitchDef{{At: sim.C(1, 1)}}
	l.Crosses = []sim.CrossDef{{At: sim.C(1, 2), Other: sim.C(0, 2)}}

	g := l.EntryGrid()
	if g.At(sim.C(1, 1)) != sim.Switch || g.At(sim.C(1, 2)) != sim.Cross {
		t.Errorf("EntryGrid() triggers = %v, %v", g.At(sim.C(1, 1)), g.At(sim.C(1, 2)))
	}
	if l.Grid.At(sim.C(1, 1)) != sim.Normal {
		t.Error("EntryGrid() modified the template")
	}
}

func TestRenderASCII(t *testing.T) {
	w := newWorld(t, level(t, "r", "####", "H"))
	out := sim.RenderASCII(w.Snapshot())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != sim.Dim+1 {
		t.Fatalf("RenderASCII() has %d lines, expected %d", len(lines), sim.Dim+1)
	}
	if !strings.HasPrefix(lines[0], "Level 1/1") {
		t.Errorf("header = %q", lines[0])
	}
	// y grows upwards: row y=0 is the last line, y=1 the one above.
	if got := lines[sim.Dim]; got != "AH........" {
		t.Errorf("row y=0 = %q", got)
	}
	if got := lines[sim.Dim-1]; got != "B........." {
		t.Errorf("row y=1 = %q", got)
	}

	move(t, w, sim.North)
	out = sim.RenderASCII(w.Snapshot())
	if !strings.Contains(out, "@") {
		t.Errorf("standing pair not drawn:\n%s", out)
	}
}
