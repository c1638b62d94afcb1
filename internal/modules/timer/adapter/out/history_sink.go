package out

import (
	"context"

	historydto "tomato/internal/modules/history/dto"
	historyin "tomato/internal/modules/history/port/in"
	"tomato/internal/modules/timer/domain"
	timerdto "tomato/internal/modules/timer/dto"
	timerout "tomato/internal/modules/timer/port/out"
)

type HistorySink struct {
	history historyin.Usecase
}

func NewHistorySink(history historyin.Usecase) timerout.RecordSink {
	return &HistorySink{history: history}
}

func (s *HistorySink) Record(ctx context.Context, completion domain.Completion) (timerdto.PersistedRecord, error) {
	out, err := s.history.Append(ctx, historydto.AppendInput{
		Task:         completion.Task,
		StartedAt:    completion.StartedAt,
		DurationSecs: completion.DurationSecs,
		Completed:    completion.Completed,
	})
	if err != nil {
		return timerdto.PersistedRecord{}, err
	}
	return timerdto.PersistedRecord{
		ID:           out.ID,
		Task:         out.Task,
		StartedAt:    out.StartedAt,
		DurationSecs: out.DurationSecs,
		Completed:    out.Completed,
	}, nil
}
