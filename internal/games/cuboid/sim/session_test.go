package sim_test

import (
	"testing"

	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
)

func TestSessionEnterStartsTimerAtOne(t *testing.T) {
	s := sim.NewSession(3, 60)
	s.Enter(1)

	if s.Level != 1 {
		t.Errorf("Level = %d, expected 1", s.Level)
	}
	if s.LevelMoves() != 0 {
		t.Errorf("LevelMoves() = %d, expected 0", s.LevelMoves())
	}
	if s.LevelSeconds() != 1 {
		t.Errorf("LevelSeconds() = %d, expected 1", s.LevelSeconds())
	}
}

func TestSessionTimer(t *testing.T) {
	s := sim.NewSession(1, 4)
	s.Enter(0)

	for i := 0; i < 8; i++ {
		s.Tick()
	}
	if s.LevelSeconds() != 3 {
		t.Errorf("LevelSeconds() = %d, expected 3", s.LevelSeconds())
	}

	s.TogglePause()
	for i := 0; i < 8; i++ {
		s.Tick()
	}
	if s.LevelSeconds() != 3 {
		t.Errorf("paused LevelSeconds() = %d, expected 3", s.LevelSeconds())
	}
}

func TestLevelScore(t *testing.T) {
	tests := []struct {
		name    string
		moves   int
		seconds int
		want    int
	}{
		{"one move one second", 1, 1, 1_000_000},
		{"ten moves five seconds", 10, 5, 20_000},
		{"zero moves guarded", 0, 4, 250_000},
		{"zero seconds guarded", 8, 0, 125_000},
		{"integer division", 3, 7, 47_619},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := sim.NewSession(1, 60)
			s.Enter(0)
			s.Moves[0] = tc.moves
			s.Seconds[0] = tc.seconds

			if got := s.LevelScore(); got != tc.want {
				t.Errorf("LevelScore() = %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestCompleteLevel(t *testing.T) {
	s := sim.NewSession(2, 60)
	s.Enter(0)
	s.CountMove()
	s.CountMove()

	gained, next := s.CompleteLevel()
	if gained != 500_000 || !next {
		t.Fatalf("CompleteLevel() = %d, %v, expected 500000, true", gained, next)
	}
	if s.Level != 1 {
		t.Errorf("Level = %d, expected 1", s.Level)
	}
	if s.Moves[0] != 2 {
		t.Errorf("cleared level moves = %d, expected 2", s.Moves[0])
	}

	s.Enter(1)
	s.CountMove()
	gained, next = s.CompleteLevel()
	if gained != 1_000_000 || next {
		t.Fatalf("CompleteLevel() = %d, %v, expected 1000000, false", gained, next)
	}
	if !s.GameOver {
		t.Error("expected game over after the last level")
	}
	if s.Score != 1_500_000 {
		t.Errorf("Score = %d, expected 1500000", s.Score)
	}

	s.TogglePause()
	if s.Paused {
		t.Error("pause toggled after game over")
	}
}

func TestSessionRestart(t *testing.T) {
	s := sim.NewSession(2, 60)
	s.Enter(0)
	s.CountMove()
	s.CompleteLevel()
	s.Enter(1)
	s.TogglePause()

	s.Restart(0)

	if s.Score != 0 || s.Level != 0 || s.Paused || s.GameOver {
		t.Errorf("Restart() left %+v", s)
	}
	if s.Moves[0] != 0 || s.Seconds[0] != 1 {
		t.Errorf("level 0 counters = %d moves %d secs, expected 0 and 1", s.Moves[0], s.Seconds[0])
	}
}
