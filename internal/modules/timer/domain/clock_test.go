package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		WorkDuration:           25 * time.Minute,
		ShortBreakDuration:     5 * time.Minute,
		LongBreakDuration:      15 * time.Minute,
		SessionsUntilLongBreak: 4,
	}
}

func at(sec int) time.Time { return t0.Add(time.Duration(sec) * time.Second) }

// typeTask drives Idle -> EnteringTask -> Running(Work) starting at now.
func typeTask(t *testing.T, s State, task string, now time.Time) State {
	t.Helper()
	s, _ = s.Apply(Intent{Kind: IntentConfirm}, now)
	for _, c := range task {
		s, _ = s.Apply(Character(c), now)
	}
	s, eff := s.Apply(Intent{Kind: IntentConfirm}, now)
	require.Nil(t, eff.Persist)
	require.Equal(t, PhaseRunning, s.Phase())
	return s
}

func TestCompletedWorkIntervalIsPersisted(t *testing.T) {
	s := typeTask(t, NewState(testConfig()), "write report", at(0))

	s, eff := s.Apply(Intent{Kind: IntentTick}, at(1499))
	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, 1, s.Remaining())
	assert.Nil(t, eff.Persist)

	s, eff = s.Apply(Intent{Kind: IntentTick}, at(1500))
	assert.Equal(t, PhaseWorkFinished, s.Phase())
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, 1, s.WorkSessionsCompleted())
	require.NotNil(t, eff.Persist)
	assert.Equal(t, Completion{Task: "write report", StartedAt: at(0), DurationSecs: 1500, Completed: true}, *eff.Persist)
	require.NotNil(t, eff.Finished)
	assert.Equal(t, KindWork, *eff.Finished)
	_, running := s.IntervalStart()
	assert.False(t, running)
}

func TestPauseTimeIsDonatedToIntervalStart(t *testing.T) {
	s := typeTask(t, NewState(testConfig()), "write report", at(0))

	s, _ = s.Apply(Intent{Kind: IntentTick}, at(600))
	s, _ = s.Apply(Character(' '), at(600))
	require.Equal(t, PhasePaused, s.Phase())
	_, paused := s.PauseStart()
	assert.True(t, paused)

	// ticks while paused change nothing
	s, _ = s.Apply(Intent{Kind: IntentTick}, at(800))
	assert.Equal(t, 1500-600, s.Remaining())

	s, _ = s.Apply(Character(' '), at(900))
	require.Equal(t, PhaseRunning, s.Phase())
	_, paused = s.PauseStart()
	assert.False(t, paused)
	start, ok := s.IntervalStart()
	require.True(t, ok)
	assert.Equal(t, at(300), start)

	s, _ = s.Apply(Intent{Kind: IntentTick}, at(901))
	assert.Equal(t, 601, s.Elapsed())
}

func TestLongBreakAfterConfiguredSessions(t *testing.T) {
	s := NewState(testConfig())
	now := 0
	finishWork := func() {
		s = typeTask(t, s, "focus", at(now))
		now += 1500
		var eff Effect
		s, eff = s.Apply(Intent{Kind: IntentTick}, at(now))
		require.Equal(t, PhaseWorkFinished, s.Phase())
		require.NotNil(t, eff.Persist)
	}
	takeBreak := func() IntervalKind {
		s, _ = s.Apply(Character('b'), at(now))
		require.Equal(t, PhaseRunning, s.Phase())
		kind := s.Kind()
		s, _ = s.Apply(Character('s'), at(now))
		require.Equal(t, PhaseBreakFinished, s.Phase())
		s, _ = s.Apply(Character('s'), at(now))
		require.Equal(t, PhaseIdle, s.Phase())
		return kind
	}

	for i := 1; i <= 3; i++ {
		finishWork()
		assert.Equal(t, i, s.WorkSessionsCompleted())
		assert.Equal(t, KindShortBreak, takeBreak())
	}
	finishWork()
	assert.Equal(t, 4, s.WorkSessionsCompleted())
	assert.Equal(t, KindLongBreak, takeBreak())
	assert.Equal(t, 0, s.WorkSessionsCompleted())

	finishWork()
	assert.Equal(t, 1, s.WorkSessionsCompleted())
	assert.Equal(t, KindShortBreak, takeBreak())
}

func TestStopMidWorkPersistsPartialDuration(t *testing.T) {
	s := typeTask(t, NewState(testConfig()), "write report", at(0))

	s, eff := s.Apply(Character('r'), at(120))
	assert.Equal(t, PhaseIdle, s.Phase())
	require.NotNil(t, eff.Persist)
	assert.Equal(t, 120, eff.Persist.DurationSecs)
	assert.False(t, eff.Persist.Completed)
	assert.Equal(t, "", s.Task())
	assert.Equal(t, 1500, s.Remaining())
}

func TestStopWhilePausedUsesPauseInstant(t *testing.T) {
	s := typeTask(t, NewState(testConfig()), "deep work", at(0))
	s, _ = s.Apply(Character(' '), at(200))
	s, eff := s.Apply(Intent{Kind: IntentStopAndReset}, at(5000))

	assert.Equal(t, PhaseIdle, s.Phase())
	require.NotNil(t, eff.Persist)
	assert.Equal(t, 200, eff.Persist.DurationSecs)
}

func TestQuitPersistsOnlyMidWork(t *testing.T) {
	s := typeTask(t, NewState(testConfig()), "deep work", at(0))
	_, eff := s.Apply(Intent{Kind: IntentQuit}, at(30))
	assert.True(t, eff.Quit)
	require.NotNil(t, eff.Persist)
	assert.Equal(t, 30, eff.Persist.DurationSecs)

	_, eff = s.Apply(Character('Q'), at(31))
	assert.True(t, eff.Quit)
	require.NotNil(t, eff.Persist)

	idle := NewState(testConfig())
	_, eff = idle.Apply(Character('q'), at(0))
	assert.True(t, eff.Quit)
	assert.Nil(t, eff.Persist)

	entering, _ := idle.Apply(Intent{Kind: IntentStartEntry}, at(0))
	entering, eff = entering.Apply(Character('q'), at(0))
	assert.False(t, eff.Quit, "q is text while entering a task")
	assert.Equal(t, "q", entering.Task())
	_, eff = entering.Apply(Intent{Kind: IntentQuit}, at(0))
	assert.True(t, eff.Quit)
	assert.Nil(t, eff.Persist)
}

func TestBreaksAreNeverPersisted(t *testing.T) {
	s := typeTask(t, NewState(testConfig()), "focus", at(0))
	s, _ = s.Apply(Intent{Kind: IntentTick}, at(1500))
	s, _ = s.Apply(Character('b'), at(1500))
	require.Equal(t, KindShortBreak, s.Kind())
	assert.Equal(t, 300, s.Total())

	// pause is ignored during breaks
	paused, eff := s.Apply(Character(' '), at(1510))
	assert.Equal(t, PhaseRunning, paused.Phase())
	assert.Equal(t, Effect{}, eff)

	stopped, eff := s.Apply(Character('r'), at(1600))
	assert.Equal(t, PhaseIdle, stopped.Phase())
	assert.Nil(t, eff.Persist)

	_, eff = s.Apply(Intent{Kind: IntentQuit}, at(1600))
	assert.Nil(t, eff.Persist)

	done, eff := s.Apply(Intent{Kind: IntentTick}, at(1800))
	assert.Equal(t, PhaseBreakFinished, done.Phase())
	assert.Nil(t, eff.Persist)
	require.NotNil(t, eff.Finished)
	assert.Equal(t, KindShortBreak, *eff.Finished)

	next, _ := done.Apply(Intent{Kind: IntentConfirm}, at(1801))
	assert.Equal(t, PhaseEnteringTask, next.Phase())
	assert.Equal(t, KindWork, next.Kind())
	assert.Equal(t, 1500, next.Remaining())
}

func TestTaskEntry(t *testing.T) {
	s := NewState(testConfig())

	s, _ = s.Apply(Character('h'), at(0))
	assert.Equal(t, PhaseEnteringTask, s.Phase())
	s, _ = s.Apply(Character('i'), at(0))
	s, _ = s.Apply(Character('!'), at(0))
	s, _ = s.Apply(Intent{Kind: IntentBackspace}, at(0))
	assert.Equal(t, "hi", s.Task())

	blank := NewState(testConfig())
	blank, _ = blank.Apply(Intent{Kind: IntentConfirm}, at(0))
	blank, _ = blank.Apply(Character(' '), at(0))
	blank, _ = blank.Apply(Intent{Kind: IntentConfirm}, at(0))
	assert.Equal(t, PhaseEnteringTask, blank.Phase(), "whitespace task does not start")

	cancelled, _ := s.Apply(Intent{Kind: IntentCancel}, at(0))
	assert.Equal(t, PhaseIdle, cancelled.Phase())
	assert.Equal(t, "", cancelled.Task())

	empty := NewState(testConfig())
	empty, _ = empty.Apply(Intent{Kind: IntentStartEntry}, at(0))
	empty, _ = empty.Apply(Intent{Kind: IntentBackspace}, at(0))
	assert.Equal(t, "", empty.Task())
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	s := NewState(testConfig())
	s, _ = s.Apply(Character('a'), at(0))
	before := s.Task()
	_, _ = s.Apply(Character('b'), at(0))
	_, _ = s.Apply(Intent{Kind: IntentBackspace}, at(0))
	assert.Equal(t, before, s.Task())
}

func TestInvalidIntentsAreNoOps(t *testing.T) {
	tests := []struct {
		name  string
		state func(t *testing.T) State
		in    Intent
	}{
		{name: "tick while idle", state: func(t *testing.T) State { return NewState(testConfig()) }, in: Intent{Kind: IntentTick}},
		{name: "backspace while idle", state: func(t *testing.T) State { return NewState(testConfig()) }, in: Intent{Kind: IntentBackspace}},
		{name: "stop while idle", state: func(t *testing.T) State { return NewState(testConfig()) }, in: Intent{Kind: IntentStopAndReset}},
		{name: "skip during work", state: func(t *testing.T) State { return typeTask(t, NewState(testConfig()), "x", at(0)) }, in: Character('s')},
		{name: "confirm while running", state: func(t *testing.T) State { return typeTask(t, NewState(testConfig()), "x", at(0)) }, in: Intent{Kind: IntentConfirm}},
		{name: "unknown key while running", state: func(t *testing.T) State { return typeTask(t, NewState(testConfig()), "x", at(0)) }, in: Character('z')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.state(t)
			next, eff := s.Apply(tt.in, at(10))
			assert.Equal(t, s.Phase(), next.Phase())
			assert.Equal(t, s.Remaining(), next.Remaining())
			assert.Equal(t, Effect{}, eff)
		})
	}
}

func TestRemainingStaysInBoundsForRandomIntents(t *testing.T) {
	cfg := Config{
		WorkDuration:           90 * time.Second,
		ShortBreakDuration:     20 * time.Second,
		LongBreakDuration:      40 * time.Second,
		SessionsUntilLongBreak: 2,
	}
	intents := []Intent{
		{Kind: IntentStartEntry}, Character('a'), Character(' '), Character('s'), Character('r'),
		Character('b'), {Kind: IntentBackspace}, {Kind: IntentConfirm}, {Kind: IntentCancel},
		{Kind: IntentTick}, {Kind: IntentTick}, {Kind: IntentTick}, {Kind: IntentStopAndReset},
	}
	rng := rand.New(rand.NewSource(42))
	s := NewState(cfg)
	now := t0
	completedBefore := 0
	for i := 0; i < 5000; i++ {
		now = now.Add(time.Duration(rng.Intn(20)) * time.Second)
		in := intents[rng.Intn(len(intents))]
		wasBreakPick := s.Phase() == PhaseWorkFinished && in.Kind == IntentCharacter && in.Char == 'b'
		next, eff := s.Apply(in, now)

		require.GreaterOrEqual(t, next.Remaining(), 0)
		require.LessOrEqual(t, next.Remaining(), next.Total())
		_, hasPause := next.PauseStart()
		require.Equal(t, next.Phase() == PhasePaused, hasPause)
		_, hasStart := next.IntervalStart()
		if hasStart {
			require.Contains(t, []Phase{PhaseRunning, PhasePaused}, next.Phase())
		}
		if eff.Persist != nil {
			require.NotEmpty(t, eff.Persist.Task)
			require.Equal(t, KindWork, s.Kind())
		}
		switch {
		case wasBreakPick && next.Kind() == KindLongBreak:
			require.Equal(t, 0, next.WorkSessionsCompleted())
		case eff.Persist != nil && eff.Persist.Completed:
			require.Equal(t, completedBefore+1, next.WorkSessionsCompleted())
		default:
			require.Equal(t, completedBefore, next.WorkSessionsCompleted())
		}
		completedBefore = next.WorkSessionsCompleted()
		s = next
	}
}
