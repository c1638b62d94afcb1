package service

import (
	"fmt"

	"tomato/internal/modules/timer/domain"
	"tomato/internal/platform/clock"
)

// ClockService owns the single clock state and feeds it wall-clock time.
// It is not safe for concurrent use; the UI event loop is its only caller.
type ClockService struct {
	clock clock.Clock
	state domain.State
}

func NewClockService(clock clock.Clock, cfg domain.Config) (*ClockService, error) {
	if cfg.WorkDuration <= 0 || cfg.ShortBreakDuration <= 0 || cfg.LongBreakDuration <= 0 {
		return nil, fmt.Errorf("interval durations must be positive")
	}
	if cfg.SessionsUntilLongBreak < 1 {
		return nil, fmt.Errorf("sessions until long break must be at least 1")
	}
	return &ClockService{clock: clock, state: domain.NewState(cfg)}, nil
}

func (s *ClockService) Apply(intent domain.Intent) domain.Effect {
	next, effect := s.state.Apply(intent, s.clock.Now())
	s.state = next
	return effect
}

func (s *ClockService) State() domain.State {
	return s.state
}
