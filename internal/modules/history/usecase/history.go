package usecase

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"tomato/internal/modules/history/domain"
	historydto "tomato/internal/modules/history/dto"
	historyin "tomato/internal/modules/history/port/in"
	historyout "tomato/internal/modules/history/port/out"
	"tomato/internal/modules/history/service"
	apperrors "tomato/internal/platform/errors"
	"tomato/internal/platform/logging"
)

type Interactor struct {
	svc       *service.LedgerService
	projector historyout.RecordIndexProjector
	journal   historyout.JournalWriter
	logger    *slog.Logger
}

func NewInteractor(svc *service.LedgerService, projector historyout.RecordIndexProjector, journal historyout.JournalWriter, logger *slog.Logger) historyin.Usecase {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Interactor{svc: svc, projector: projector, journal: journal, logger: logger}
}

func (i *Interactor) Append(ctx context.Context, input historydto.AppendInput) (historydto.RecordOutput, error) {
	record, err := i.svc.Record(ctx, input.Task, input.StartedAt, input.DurationSecs, input.Completed)
	if err != nil {
		return historydto.RecordOutput{}, err
	}
	i.logger.Info("session recorded",
		slog.String("id", record.ID),
		slog.Int("duration_secs", record.DurationSecs),
		slog.Bool("completed", record.Completed),
	)
	if i.projector != nil {
		if err := i.projector.UpsertRecord(ctx, record); err != nil {
			i.logger.Warn("project session", slog.String("id", record.ID), slog.Any("error", err))
		}
	}
	return toOutput(record), nil
}

func (i *Interactor) List(ctx context.Context, input historydto.ListInput) (historydto.ListOutput, error) {
	window, err := parseWindow(input.Window)
	if err != nil {
		return historydto.ListOutput{}, err
	}
	records, err := i.svc.Load(ctx)
	if err != nil {
		return historydto.ListOutput{}, err
	}
	filtered := i.svc.Filter(records, window)
	slices.SortStableFunc(filtered, func(a, b domain.Record) int {
		return cmp.Compare(b.StartedAt.UnixNano(), a.StartedAt.UnixNano())
	})
	out := historydto.ListOutput{Window: window.String(), Label: window.Label(), Records: make([]historydto.RecordOutput, 0, len(filtered))}
	for _, r := range filtered {
		out.Records = append(out.Records, toOutput(r))
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context, input historydto.StatsInput) (historydto.StatsOutput, error) {
	window, err := parseWindow(input.Window)
	if err != nil {
		return historydto.StatsOutput{}, err
	}
	records, err := i.svc.Load(ctx)
	if err != nil {
		return historydto.StatsOutput{}, err
	}
	summary := domain.Summarize(i.svc.Filter(records, window))
	out := historydto.StatsOutput{
		Window:         window.String(),
		Label:          window.Label(),
		Count:          summary.Count,
		Completed:      summary.CompletedCount,
		Interrupted:    summary.InterruptedCount,
		TotalSeconds:   summary.TotalSeconds,
		AverageSeconds: summary.AverageSeconds,
		CompletionRate: summary.CompletionRate(),
	}
	// The trend always covers the full history, independent of the window.
	for _, day := range i.svc.Trend(records) {
		out.Daily = append(out.Daily, historydto.DayTotalOutput{
			Date:    day.Date.String(),
			Weekday: day.Date.Weekday().String()[:3],
			Seconds: day.Seconds,
		})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ historydto.ReindexInput) (historydto.ReindexOutput, error) {
	if i.projector == nil {
		return historydto.ReindexOutput{}, fmt.Errorf("session index is not configured")
	}
	records, err := i.svc.Load(ctx)
	if err != nil {
		return historydto.ReindexOutput{}, err
	}
	if err := i.projector.Reset(ctx); err != nil {
		return historydto.ReindexOutput{}, err
	}
	for _, record := range records {
		if err := i.projector.UpsertRecord(ctx, record); err != nil {
			return historydto.ReindexOutput{}, err
		}
	}
	count, err := i.projector.Count(ctx)
	if err != nil {
		return historydto.ReindexOutput{}, err
	}
	byDay, err := i.projector.FocusByDay(ctx)
	if err != nil {
		return historydto.ReindexOutput{}, err
	}
	i.logger.Info("session index rebuilt", slog.Int("records", count), slog.Int("days", len(byDay)))
	return historydto.ReindexOutput{Indexed: count, Days: indexedDays(byDay)}, nil
}

func indexedDays(byDay map[string]int) []historydto.DayTotalOutput {
	days := make([]historydto.DayTotalOutput, 0, len(byDay))
	for date, secs := range byDay {
		weekday := ""
		if t, err := time.Parse(time.DateOnly, date); err == nil {
			weekday = t.Weekday().String()[:3]
		}
		days = append(days, historydto.DayTotalOutput{Date: date, Weekday: weekday, Seconds: secs})
	}
	slices.SortFunc(days, func(a, b historydto.DayTotalOutput) int { return cmp.Compare(a.Date, b.Date) })
	return days
}

func (i *Interactor) Export(ctx context.Context, input historydto.ExportInput) (historydto.ExportOutput, error) {
	if strings.TrimSpace(input.Dir) == "" {
		return historydto.ExportOutput{}, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	if i.journal == nil {
		return historydto.ExportOutput{}, fmt.Errorf("journal writer is not configured")
	}
	raw := input.Window
	if strings.TrimSpace(raw) == "" {
		raw = domain.WindowAll.String()
	}
	window, err := parseWindow(raw)
	if err != nil {
		return historydto.ExportOutput{}, err
	}
	records, err := i.svc.Load(ctx)
	if err != nil {
		return historydto.ExportOutput{}, err
	}
	days, byDay := i.svc.GroupByDay(i.svc.Filter(records, window))
	out := historydto.ExportOutput{Dir: input.Dir, Notes: make([]string, 0, len(days))}
	for _, day := range days {
		path, err := i.journal.WriteDay(ctx, input.Dir, day, byDay[day])
		if err != nil {
			return out, err
		}
		out.Notes = append(out.Notes, path)
	}
	out.Days = len(out.Notes)
	i.logger.Info("journal exported", slog.String("dir", input.Dir), slog.Int("days", out.Days))
	return out, nil
}

func parseWindow(raw string) (domain.Window, error) {
	window, err := domain.ParseWindow(raw)
	if err != nil {
		return window, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return window, nil
}

func toOutput(r domain.Record) historydto.RecordOutput {
	return historydto.RecordOutput{
		ID:           r.ID,
		Task:         r.Task,
		StartedAt:    r.StartedAt,
		DurationSecs: r.DurationSecs,
		Completed:    r.Completed,
	}
}
