package out

import (
	"context"

	"tomato/internal/modules/timer/domain"
	"tomato/internal/modules/timer/dto"
)

// RecordSink stores a finished or interrupted work interval.
type RecordSink interface {
	Record(ctx context.Context, completion domain.Completion) (dto.PersistedRecord, error)
}

// Notifier tells the user an interval ran out. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, summary, body string) error
}
