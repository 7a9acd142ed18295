package sim

import (
	"fmt"
	"strings"
)

// RenderASCII draws a top view of the snapshot.
// This is used for debugging, testing and the replay command.
//
// Format:
//   - tiles use the level-file alphabet (. # o s x H)
//   - a lying block is 'A' (block 0) or 'B' (block 1), a standing pair '@'
//   - a falling block is drawn lowercase
//   - y grows upwards, so north is the top row
func RenderASCII(s Snapshot) string {
	var sb strings.Builder

	if s.HasSession {
		sb.WriteString(fmt.Sprintf("Level %d/%d | Moves: %d | Time: %ds | Score: %d\n",
			s.Level+1, s.LevelCount, s.Moves, s.Seconds, s.Score))
	} else {
		sb.WriteString(fmt.Sprintf("Sandbox | Tick: %d\n", s.Tick))
	}

	marks := make(map[Coord]rune, 2)
	for i, b := range s.Blocks {
		c := Coord{X: roundInt(b.Pos.X()), Y: roundInt(b.Pos.Y())}
		r := rune('A' + i)
		if b.Falling {
			r = rune('a' + i)
		}
		if _, taken := marks[c]; taken {
			r = '@'
		}
		marks[c] = r
	}

	for y := Dim - 1; y >= 0; y-- {
		for x := 0; x < Dim; x++ {
			c := C(x, y)
			if r, ok := marks[c]; ok {
				sb.WriteRune(r)
				continue
			}
			sb.WriteRune(s.Grid.At(c).Symbol())
		}
		sb.WriteString("\n")
	}

	switch {
	case s.GameOver:
		sb.WriteString("All levels cleared\n")
	case s.Paused:
		sb.WriteString("Paused\n")
	}
	return sb.String()
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
