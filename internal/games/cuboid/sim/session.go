package sim

// ScoreBase is divided by moves×seconds to score a cleared level.
const ScoreBase = 1_000_000

// Session tracks level progress, per-level counters and score.
type Session struct {
	Level      int
	LevelCount int
	Moves      []int
	Seconds    []int
	Score      int
	Paused     bool
	GameOver   bool

	tps   int
	ticks int
}

// NewSession creates a session for a campaign of levelCount levels, with
// the timer advancing once every ticksPerSecond ticks.
func NewSession(levelCount, ticksPerSecond int) *Session {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 60
	}
	return &Session{
		LevelCount: levelCount,
		Moves:      make([]int, levelCount),
		Seconds:    make([]int, levelCount),
		tps:        ticksPerSecond,
	}
}

// Enter (re)starts the counters of a level. The timer starts at one
// second so a score division can never be by zero.
func (s *Session) Enter(level int) {
	s.Level = level
	s.Moves[level] = 0
	s.Seconds[level] = 1
	s.ticks = 0
	s.Paused = false
}

// CountMove records an accepted tip.
func (s *Session) CountMove() {
	s.Moves[s.Level]++
}

// Tick advances the level timer.
func (s *Session) Tick() {
	if s.Paused || s.GameOver {
		return
	}
	s.ticks++
	if s.ticks%s.tps == 0 {
		s.Seconds[s.Level]++
	}
}

// TogglePause flips the pause flag. It has no effect after game over.
func (s *Session) TogglePause() {
	if s.GameOver {
		return
	}
	s.Paused = !s.Paused
}

// LevelMoves returns the move count of the current level.
func (s *Session) LevelMoves() int {
	return s.Moves[s.Level]
}

// LevelSeconds returns the elapsed seconds of the current level.
func (s *Session) LevelSeconds() int {
	return s.Seconds[s.Level]
}

// LevelScore returns the score a clear would award right now.
func (s *Session) LevelScore() int {
	return ScoreBase / (max(1, s.LevelMoves()) * max(1, s.LevelSeconds()))
}

// CompleteLevel scores the current level and advances. It returns the
// points gained and whether another level follows; when none does the
// session is over.
func (s *Session) CompleteLevel() (gained int, next bool) {
	gained = s.LevelScore()
	s.Score += gained
	if s.Level+1 >= s.LevelCount {
		s.GameOver = true
		return gained, false
	}
	s.Level++
	return gained, true
}

// Restart clears score and counters and returns to level start.
func (s *Session) Restart(start int) {
	for i := range s.Moves {
		s.Moves[i] = 0
		s.Seconds[i] = 0
	}
	s.Score = 0
	s.GameOver = false
	s.Enter(start)
}
