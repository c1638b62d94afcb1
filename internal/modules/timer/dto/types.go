package dto

import "time"

// Phase names carried by Snapshot.Phase.
const (
	PhaseIdle          = "idle"
	PhaseEnteringTask  = "entering-task"
	PhaseRunning       = "running"
	PhasePaused        = "paused"
	PhaseWorkFinished  = "work-finished"
	PhaseBreakFinished = "break-finished"
)

// Interval names carried by Snapshot.Kind.
const (
	KindWork       = "work"
	KindShortBreak = "short-break"
	KindLongBreak  = "long-break"
)

// Intent names accepted by ApplyInput.Intent.
const (
	IntentStartEntry   = "start-entry"
	IntentCharacter    = "character"
	IntentBackspace    = "backspace"
	IntentConfirm      = "confirm"
	IntentCancel       = "cancel"
	IntentTick         = "tick"
	IntentStopAndReset = "stop-and-reset"
	IntentQuit         = "quit"
)

type ApplyInput struct {
	Intent string
	Char   rune
}

type Snapshot struct {
	Phase                  string
	Kind                   string
	Task                   string
	TotalSecs              int
	RemainingSecs          int
	ElapsedSecs            int
	Progress               float64
	WorkSessionsCompleted  int
	SessionsUntilLongBreak int
}

type PersistedRecord struct {
	ID           string
	Task         string
	StartedAt    time.Time
	DurationSecs int
	Completed    bool
}

// ApplyOutput reports the state after a transition. A persistence failure
// is carried in PersistErr; the transition itself is never undone.
type ApplyOutput struct {
	Snapshot   Snapshot
	Persisted  *PersistedRecord
	PersistErr error
	Finished   string
	Quit       bool
}
