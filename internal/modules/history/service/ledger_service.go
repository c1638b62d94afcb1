package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"tomato/internal/modules/history/domain"
	historyout "tomato/internal/modules/history/port/out"
	"tomato/internal/platform/clock"
	apperrors "tomato/internal/platform/errors"
	"tomato/internal/platform/id"
)

type LedgerService struct {
	clock clock.Clock
	idGen id.Generator
	store historyout.RecordStore
	loc   *time.Location
}

func NewLedgerService(clock clock.Clock, idGen id.Generator, store historyout.RecordStore, loc *time.Location) *LedgerService {
	if loc == nil {
		loc = time.Local
	}
	return &LedgerService{clock: clock, idGen: idGen, store: store, loc: loc}
}


// Today is the reference date for every window, in the ledger's location.
func (s *LedgerService) Today() domain.Date {
	return domain.DateOf(s.clock.Now(), s.loc)
}

func (s *LedgerService) Record(ctx context.Context, task string, startedAt time.Time, durationSecs int, completed bool) (domain.Record, error) {
	if strings.TrimSpace(task) == "" {
		return domain.Record{}, fmt.Errorf("%w: task is required", apperrors.ErrInvalidInput)
	}
	if durationSecs < 0 {
		return domain.Record{}, fmt.Errorf("%w: duration must be non-negative", apperrors.ErrInvalidInput)
	}
	if startedAt.IsZero() {
		startedAt = s.clock.Now()
	}
	record := domain.Record{
		ID:           s.idGen.New(),
		Task:         task,
		StartedAt:    startedAt.UTC(),
		DurationSecs: durationSecs,
		Completed:    completed,
	}
	if err := s.store.Append(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func (s *LedgerService) Load(ctx context.Context) ([]domain.Record, error) {
	return s.store.Load(ctx)
}

func (s *LedgerService) Filter(records []domain.Record, window domain.Window) []domain.Record {
	return domain.Filter(records, window, s.Today(), s.loc)
}

func (s *LedgerService) Trend(records []domain.Record) []domain.DayTotal {
	return domain.DailyTotals(records, s.Today(), domain.TrendDays, s.loc)
}

// GroupByDay buckets records by local start date, oldest day first.
func (s *LedgerService) GroupByDay(records []domain.Record) ([]domain.Date, map[domain.Date][]domain.Record) {
	days := []domain.Date{}
	byDay := map[domain.Date][]domain.Record{}
	for _, r := range records {
		day := domain.DateOf(r.StartedAt, s.loc)
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], r)
	}
	slices.SortFunc(days, domain.Date.Compare)
	return days, byDay
}
