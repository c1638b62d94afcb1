package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tomato/internal/modules/timer/domain"
	timerdto "tomato/internal/modules/timer/dto"
	timerin "tomato/internal/modules/timer/port/in"
	timerout "tomato/internal/modules/timer/port/out"
	"tomato/internal/modules/timer/service"
	apperrors "tomato/internal/platform/errors"
	"tomato/internal/platform/logging"
)

// NotifyTimeout bounds a desktop notification. Notify runs inside the UI
// update loop, so a slow bus must not stall the clock.
const NotifyTimeout = 2 * time.Second

type Interactor struct {
	svc           *service.ClockService
	sink          timerout.RecordSink
	notifier      timerout.Notifier
	logger        *slog.Logger
	notifyTimeout time.Duration
}

func NewInteractor(svc *service.ClockService, sink timerout.RecordSink, notifier timerout.Notifier, logger *slog.Logger) timerin.Usecase {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Interactor{svc: svc, sink: sink, notifier: notifier, logger: logger, notifyTimeout: NotifyTimeout}
}

func (i *Interactor) Apply(ctx context.Context, input timerdto.ApplyInput) (timerdto.ApplyOutput, error) {
	intent, err := toIntent(input)
	if err != nil {
		return timerdto.ApplyOutput{Snapshot: i.Snapshot(ctx)}, err
	}
	before := i.svc.State().Phase()
	effect := i.svc.Apply(intent)
	after := i.svc.State()
	if before != after.Phase() {
		i.logger.Debug("clock transition",
			slog.String("from", before.String()),
			slog.String("to", after.Phase().String()),
			slog.String("kind", after.Kind().String()),
		)
	}

	out := timerdto.ApplyOutput{Snapshot: snapshotOf(after), Quit: effect.Quit}
	if effect.Persist != nil {
		out.Persisted, out.PersistErr = i.persist(ctx, *effect.Persist)
	}
	if effect.Finished != nil {
		out.Finished = effect.Finished.String()
		i.notify(ctx, *effect.Finished, after)
	}
	return out, nil
}

func (i *Interactor) Snapshot(_ context.Context) timerdto.Snapshot {
	return snapshotOf(i.svc.State())
}

func (i *Interactor) persist(ctx context.Context, completion domain.Completion) (*timerdto.PersistedRecord, error) {
	if i.sink == nil {
		return nil, nil
	}
	record, err := i.sink.Record(ctx, completion)
	if err != nil {
		i.logger.Error("persist session",
			slog.String("task", completion.Task),
			slog.Int("duration_secs", completion.DurationSecs),
			slog.Any("error", err),
		)
		return nil, err
	}
	return &record, nil
}

func (i *Interactor) notify(ctx context.Context, kind domain.IntervalKind, state domain.State) {
	if i.notifier == nil {
		return
	}
	summary, body := finishedMessage(kind, state)
	ctx, cancel := context.WithTimeout(ctx, i.notifyTimeout)
	defer cancel()
	if err := i.notifier.Notify(ctx, summary, body); err != nil {
		i.logger.Warn("desktop notification", slog.Any("error", err))
	}
}

func finishedMessage(kind domain.IntervalKind, state domain.State) (string, string) {
	switch kind {
	case domain.KindWork:
		next := "short"
		if state.WorkSessionsCompleted() >= state.Config().SessionsUntilLongBreak {
			next = "long"
		}
		return "Pomodoro complete", fmt.Sprintf("%s. Time for a %s break.", state.Task(), next)
	case domain.KindLongBreak:
		return "Long break over", "Ready for another session?"
	}
	return "Break over", "Ready for another session?"
}

func toIntent(input timerdto.ApplyInput) (domain.Intent, error) {
	switch input.Intent {
	case timerdto.IntentStartEntry:
		return domain.Intent{Kind: domain.IntentStartEntry}, nil
	case timerdto.IntentCharacter:
		return domain.Character(input.Char), nil
	case timerdto.IntentBackspace:
		return domain.Intent{Kind: domain.IntentBackspace}, nil
	case timerdto.IntentConfirm:
		return domain.Intent{Kind: domain.IntentConfirm}, nil
	case timerdto.IntentCancel:
		return domain.Intent{Kind: domain.IntentCancel}, nil
	case timerdto.IntentTick:
		return domain.Intent{Kind: domain.IntentTick}, nil
	case timerdto.IntentStopAndReset:
		return domain.Intent{Kind: domain.IntentStopAndReset}, nil
	case timerdto.IntentQuit:
		return domain.Intent{Kind: domain.IntentQuit}, nil
	}
	return domain.Intent{}, fmt.Errorf("%w: unknown intent %q", apperrors.ErrInvalidInput, input.Intent)
}

func snapshotOf(s domain.State) timerdto.Snapshot {
	return timerdto.Snapshot{
		Phase:                  s.Phase().String(),
		Kind:                   s.Kind().String(),
		Task:                   s.Task(),
		TotalSecs:              s.Total(),
		RemainingSecs:          s.Remaining(),
		ElapsedSecs:            s.Elapsed(),
		Progress:               s.Progress(),
		WorkSessionsCompleted:  s.WorkSessionsCompleted(),
		SessionsUntilLongBreak: s.Config().SessionsUntilLongBreak,
	}
}
