package out

import (
	"context"

	timerout "tomato/internal/modules/timer/port/out"
)

type NoopNotifier struct{}

func NewNoopNotifier() timerout.Notifier { return NoopNotifier{} }

func (NoopNotifier) Notify(context.Context, string, string) error { return nil }
