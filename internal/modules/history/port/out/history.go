package out

import (
	"context"

	"tomato/internal/modules/history/domain"
)

// RecordStore is the durable source of truth for session records.
type RecordStore interface {
	Load(ctx context.Context) ([]domain.Record, error)
	Append(ctx context.Context, record domain.Record) error
}

// RecordIndexProjector maintains a queryable copy of the store. It can always
// be rebuilt from RecordStore.
type RecordIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertRecord(ctx context.Context, record domain.Record) error
	Count(ctx context.Context) (int, error)
	// FocusByDay sums indexed seconds per local date (YYYY-MM-DD).
	FocusByDay(ctx context.Context) (map[string]int, error)
}

// JournalWriter writes one note per local day.
type JournalWriter interface {
	WriteDay(ctx context.Context, dir string, day domain.Date, records []domain.Record) (string, error)
}
