package sim

// Cue identifies a sound the audio collaborator may play.
type Cue string

const (
	CueMove   Cue = "move"
	CueFall   Cue = "fall"
	CueGoal   Cue = "goal"
	CueSwitch Cue = "switch"
	CueSplit  Cue = "split"
	CueMerge  Cue = "merge"
	CueLevel  Cue = "level"
)

// EventKind identifies a session transition.
type EventKind int

const (
	EventLevelCleared EventKind = iota + 1
	EventRetry
	EventGameOver
)

// Event reports a session transition that happened during a tick.
type Event struct {
	Kind    EventKind
	Level   int // 0-indexed level the event refers to
	Moves   int
	Seconds int
	Gained  int // score added by the event
	Score   int // total score after the event
}
