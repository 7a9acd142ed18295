package sim

import "fmt"

// SwitchDef is a trigger tile that reveals hidden floor once per level entry.
type SwitchDef struct {
	At      Coord
	Reveals []Coord
}

// CrossDef is a trigger tile that splits a standing pair: block 0 stays on
// the trigger and block 1 is moved to Other.
type CrossDef struct {
	At    Coord
	Other Coord
}

// Level is an immutable board template.
type Level struct {
	ID       string
	Name     string
	Grid     Grid
	Start    [2]Coord // equal coordinates start the pair stacked
	Switches []SwitchDef
	Crosses  []CrossDef
}

// Validate checks that the level can be entered.
func (l *Level) Validate() error {
	for i, s := range l.Start {
		if !s.InBounds() {
			return fmt.Errorf("%w %q: start %d at %v is off the board", ErrInvalidLevel, l.ID, i, s)
		}
		if !l.Grid.At(s).Solid() && !l.triggerAt(s) {
			return fmt.Errorf("%w %q: start %d at %v has no floor", ErrInvalidLevel, l.ID, i, s)
		}
	}
	if d := l.Start[0].Manhattan(l.Start[1]); d > 1 {
		return fmt.Errorf("%w %q: start blocks %v and %v are not adjacent", ErrInvalidLevel, l.ID, l.Start[0], l.Start[1])
	}
	for _, sw := range l.Switches {
		if !sw.At.InBounds() {
			return fmt.Errorf("%w %q: switch at %v is off the board", ErrInvalidLevel, l.ID, sw.At)
		}
		for _, r := range sw.Reveals {
			if !r.InBounds() {
				return fmt.Errorf("%w %q: switch %v reveals %v off the board", ErrInvalidLevel, l.ID, sw.At, r)
			}
		}
	}
	for _, cr := range l.Crosses {
		if !cr.At.InBounds() || !cr.Other.InBounds() {
			return fmt.Errorf("%w %q: cross %v -> %v is off the board", ErrInvalidLevel, l.ID, cr.At, cr.Other)
		}
		if cr.At == cr.Other {
			return fmt.Errorf("%w %q: cross at %v points at itself", ErrInvalidLevel, l.ID, cr.At)
		}
	}
	if l.Grid.Count(Hazard) == 0 {
		return fmt.Errorf("%w %q: no goal tile", ErrInvalidLevel, l.ID)
	}
	return nil
}

func (l *Level) triggerAt(c Coord) bool {
	for _, sw := range l.Switches {
		if sw.At == c {
			return true
		}
	}
	for _, cr := range l.Crosses {
		if cr.At == c {
			return true
		}
	}
	return false
}

// EntryGrid returns the board as it looks when the level is entered:
// the template with switch and cross triggers stamped on top.
func (l *Level) EntryGrid() Grid {
	g := l.Grid
	for _, sw := range l.Switches {
		g.Set(sw.At, Switch)
	}
	for _, cr := range l.Crosses {
		g.Set(cr.At, Cross)
	}
	return g
}

// SandboxLevel returns the open practice board used by the two-cube demo:
// every tile is floor, with a decorative fragile diagonal.
func SandboxLevel() Level {
	var g Grid
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			k := Normal
			if x == y {
				k = Alt
			}
			g.Set(C(x, y), k)
		}
	}
	return Level{
		ID:    "sandbox",
		Name:  "Sandbox",
		Grid:  g,
		Start: [2]Coord{C(0, 0), C(0, 1)},
	}
}
