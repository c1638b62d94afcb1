package domain

import (
	"strings"
	"time"
	"unicode"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEnteringTask
	PhaseRunning
	PhasePaused
	PhaseWorkFinished
	PhaseBreakFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEnteringTask:
		return "entering-task"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseWorkFinished:
		return "work-finished"
	case PhaseBreakFinished:
		return "break-finished"
	}
	return "unknown"
}

type IntervalKind int

const (
	KindWork IntervalKind = iota
	KindShortBreak
	KindLongBreak
)

func (k IntervalKind) String() string {
	switch k {
	case KindWork:
		return "work"
	case KindShortBreak:
		return "short-break"
	case KindLongBreak:
		return "long-break"
	}
	return "unknown"
}

type IntentKind int

const (
	IntentStartEntry IntentKind = iota
	IntentCharacter
	IntentBackspace
	IntentConfirm
	IntentCancel
	IntentTick
	IntentStopAndReset
	IntentQuit
)

// Intent is one discrete input delivered to the clock. Char is only read for
// IntentCharacter.
type Intent struct {
	Kind IntentKind
	Char rune
}

func Character(c rune) Intent { return Intent{Kind: IntentCharacter, Char: c} }

// Reserved characters, matched case-insensitively outside task entry.
const (
	KeyPause = ' '
	KeySkip  = 's'
	KeyStop  = 'r'
	KeyBreak = 'b'
	KeyQuit  = 'q'
)

type Config struct {
	WorkDuration           time.Duration
	ShortBreakDuration     time.Duration
	LongBreakDuration      time.Duration
	SessionsUntilLongBreak int
}

func (c Config) durationOf(kind IntervalKind) int {
	switch kind {
	case KindShortBreak:
		return wholeSeconds(c.ShortBreakDuration)
	case KindLongBreak:
		return wholeSeconds(c.LongBreakDuration)
	}
	return wholeSeconds(c.WorkDuration)
}

// Completion describes a work interval leaving Running/Paused with a
// non-empty task. It becomes a persisted session record.
type Completion struct {
	Task         string
	StartedAt    time.Time
	DurationSecs int
	Completed    bool
}

// Effect is what a transition asks the outside world to do.
type Effect struct {
	Persist  *Completion
	Finished *IntervalKind
	Quit     bool
}

// State is the clock. Values are immutable from the caller's point of view:
// Apply returns the next state instead of mutating the receiver.
type State struct {
	cfg Config

	phase     Phase
	kind      IntervalKind
	task      []rune
	total     int
	remaining int

	intervalStart *time.Time
	pauseStart    *time.Time
	workStartedAt *time.Time

	workSessionsCompleted int
}

func NewState(cfg Config) State {
	s := State{cfg: cfg}
	return s.reset()
}

func (s State) Config() Config                   { return s.cfg }
func (s State) Phase() Phase                     { return s.phase }
func (s State) Kind() IntervalKind               { return s.kind }
func (s State) Task() string                     { return string(s.task) }
func (s State) Total() int                       { return s.total }
func (s State) Remaining() int                   { return s.remaining }
func (s State) Elapsed() int                     { return s.total - s.remaining }
func (s State) WorkSessionsCompleted() int       { return s.workSessionsCompleted }
func (s State) IntervalStart() (time.Time, bool) { return deref(s.intervalStart) }
func (s State) PauseStart() (time.Time, bool)    { return deref(s.pauseStart) }

// Progress is the elapsed share of the current interval in [0,1].
func (s State) Progress() float64 {
	if s.total <= 0 {
		return 0
	}
	return float64(s.Elapsed()) / float64(s.total)
}

// MidWork reports whether a work interval is under way (running or paused).
func (s State) MidWork() bool {
	return s.kind == KindWork && (s.phase == PhaseRunning || s.phase == PhasePaused)
}

// Apply is the single transition function. Pairs not listed in the
// transition table leave the state untouched and return no effect.
func (s State) Apply(in Intent, now time.Time) (State, Effect) {
	if in.Kind == IntentQuit {
		return s.quit(now)
	}

	switch s.phase {
	case PhaseIdle:
		return s.applyIdle(in, now)
	case PhaseEnteringTask:
		return s.applyEntering(in, now)
	case PhaseRunning:
		return s.applyRunning(in, now)
	case PhasePaused:
		return s.applyPaused(in, now)
	case PhaseWorkFinished:
		return s.applyWorkFinished(in, now)
	case PhaseBreakFinished:
		return s.applyBreakFinished(in, now)
	}
	return s, Effect{}
}

func (s State) applyIdle(in Intent, now time.Time) (State, Effect) {
	switch in.Kind {
	case IntentConfirm, IntentStartEntry:
		return s.beginEntry(), Effect{}
	case IntentCharacter:
		if isKey(in.Char, KeyQuit) {
			return s.quit(now)
		}
		next := s.beginEntry()
		next.task = append(next.task, in.Char)
		return next, Effect{}
	}
	return s, Effect{}
}

func (s State) applyEntering(in Intent, now time.Time) (State, Effect) {
	switch in.Kind {
	case IntentCharacter:
		s.task = append(cloneRunes(s.task), in.Char)
	case IntentBackspace:
		if len(s.task) > 0 {
			s.task = cloneRunes(s.task[:len(s.task)-1])
		}
	case IntentConfirm:
		if strings.TrimSpace(string(s.task)) != "" {
			return s.startInterval(KindWork, now), Effect{}
		}
	case IntentCancel:
		s.task = nil
		s.phase = PhaseIdle
	}
	return s, Effect{}
}

func (s State) applyRunning(in Intent, now time.Time) (State, Effect) {
	switch in.Kind {
	case IntentTick:
		return s.tick(now)
	case IntentStopAndReset:
		return s.stop(now)
	case IntentCharacter:
		switch {
		case isKey(in.Char, KeyPause):
			if s.kind == KindWork {
				s.pauseStart = &now
				s.phase = PhasePaused
			}
		case isKey(in.Char, KeySkip):
			if s.kind != KindWork {
				s.phase = PhaseBreakFinished
				s.intervalStart = nil
			}
		case isKey(in.Char, KeyStop):
			return s.stop(now)
		case isKey(in.Char, KeyQuit):
			return s.quit(now)
		}
	}
	return s, Effect{}
}

func (s State) applyPaused(in Intent, now time.Time) (State, Effect) {
	switch in.Kind {
	case IntentStopAndReset:
		return s.stop(now)
	case IntentCharacter:
		switch {
		case isKey(in.Char, KeyPause):
			return s.resume(now), Effect{}
		case isKey(in.Char, KeyStop):
			return s.stop(now)
		case isKey(in.Char, KeyQuit):
			return s.quit(now)
		}
	}
	return s, Effect{}
}

func (s State) applyWorkFinished(in Intent, now time.Time) (State, Effect) {
	switch in.Kind {
	case IntentConfirm:
		return s.beginEntry(), Effect{}
	case IntentCharacter:
		switch {
		case isKey(in.Char, KeyBreak):
			return s.startBreak(now), Effect{}
		case isKey(in.Char, KeySkip):
			return s.reset(), Effect{}
		case isKey(in.Char, KeyQuit):
			return s.quit(now)
		}
	}
	return s, Effect{}
}

func (s State) applyBreakFinished(in Intent, now time.Time) (State, Effect) {
	switch in.Kind {
	case IntentConfirm:
		return s.beginEntry(), Effect{}
	case IntentCharacter:
		switch {
		case isKey(in.Char, KeySkip):
			return s.reset(), Effect{}
		case isKey(in.Char, KeyQuit):
			return s.quit(now)
		}
	}
	return s, Effect{}
}

// tick recomputes elapsed from absolute timestamps; missed ticks never drift.
func (s State) tick(now time.Time) (State, Effect) {
	elapsed, ok := s.elapsedAt(now)
	if !ok {
		return s, Effect{}
	}
	if elapsed < s.total {
		s.remaining = s.total - elapsed
		return s, Effect{}
	}

	s.remaining = 0
	s.intervalStart = nil
	kind := s.kind
	effect := Effect{Finished: &kind}
	if s.kind == KindWork {
		s.phase = PhaseWorkFinished
		s.workSessionsCompleted++
		effect.Persist = s.completion(true)
	} else {
		s.phase = PhaseBreakFinished
	}
	return s, effect
}

// resume donates the paused span to intervalStart so a single subtraction
// keeps yielding active time.
func (s State) resume(now time.Time) State {
	if s.pauseStart != nil && s.intervalStart != nil {
		paused := now.Sub(*s.pauseStart)
		if paused < 0 {
			paused = 0
		}
		shifted := s.intervalStart.Add(paused)
		s.intervalStart = &shifted
	}
	s.pauseStart = nil
	s.phase = PhaseRunning
	return s
}

func (s State) stop(now time.Time) (State, Effect) {
	effect := Effect{}
	if s.kind == KindWork {
		s = s.settle(now)
		effect.Persist = s.completion(false)
	}
	return s.reset(), effect
}

func (s State) quit(now time.Time) (State, Effect) {
	effect := Effect{Quit: true}
	if s.MidWork() {
		s = s.settle(now)
		effect.Persist = s.completion(false)
	}
	return s, effect
}

// settle brings remaining up to date before a partial work interval is
// recorded. While paused, time stops at pauseStart.
func (s State) settle(now time.Time) State {
	at := now
	if s.pauseStart != nil {
		at = *s.pauseStart
	}
	if elapsed, ok := s.elapsedAt(at); ok {
		if elapsed > s.total {
			elapsed = s.total
		}
		s.remaining = s.total - elapsed
	}
	return s
}

func (s State) elapsedAt(now time.Time) (int, bool) {
	if s.intervalStart == nil {
		return 0, false
	}
	elapsed := wholeSeconds(now.Sub(*s.intervalStart))
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, true
}

func (s State) completion(completed bool) *Completion {
	task := strings.TrimSpace(string(s.task))
	if task == "" || s.workStartedAt == nil {
		return nil
	}
	return &Completion{
		Task:         string(s.task),
		StartedAt:    s.workStartedAt.UTC(),
		DurationSecs: s.total - s.remaining,
		Completed:    completed,
	}
}

func (s State) startInterval(kind IntervalKind, now time.Time) State {
	s.kind = kind
	s.total = s.cfg.durationOf(kind)
	s.remaining = s.total
	s.intervalStart = &now
	s.pauseStart = nil
	if kind == KindWork {
		s.workStartedAt = &now
	}
	s.phase = PhaseRunning
	return s
}

func (s State) startBreak(now time.Time) State {
	kind := KindShortBreak
	if s.workSessionsCompleted >= s.cfg.SessionsUntilLongBreak {
		kind = KindLongBreak
		s.workSessionsCompleted = 0
	}
	return s.startInterval(kind, now)
}

func (s State) beginEntry() State {
	s = s.reset()
	s.phase = PhaseEnteringTask
	return s
}

func (s State) reset() State {
	s.phase = PhaseIdle
	s.kind = KindWork
	s.total = s.cfg.durationOf(KindWork)
	s.remaining = s.total
	s.task = nil
	s.intervalStart = nil
	s.pauseStart = nil
	s.workStartedAt = nil
	return s
}

func isKey(c, key rune) bool {
	return unicode.ToLower(c) == key
}

func wholeSeconds(d time.Duration) int {
	return int(d / time.Second)
}

func cloneRunes(r []rune) []rune {
	out := make([]rune, len(r))
	copy(out, r)
	return out
}

func deref(t *time.Time) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}
