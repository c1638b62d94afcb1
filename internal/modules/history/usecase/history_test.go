package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	historyout "tomato/internal/modules/history/adapter/out"
	"tomato/internal/modules/history/domain"
	historydto "tomato/internal/modules/history/dto"
	historyin "tomato/internal/modules/history/port/in"
	"tomato/internal/modules/history/service"
	"tomato/internal/modules/history/usecase"
	apperrors "tomato/internal/platform/errors"
	"tomato/internal/platform/logging"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("rec-%d", s.n)
}

type memoryProjector struct {
	records map[string]domain.Record
	fail    error
}

func (m *memoryProjector) Reset(context.Context) error {
	m.records = map[string]domain.Record{}
	return nil
}

func (m *memoryProjector) UpsertRecord(_ context.Context, r domain.Record) error {
	if m.fail != nil {
		return m.fail
	}
	if m.records == nil {
		m.records = map[string]domain.Record{}
	}
	m.records[r.ID] = r
	return nil
}

func (m *memoryProjector) Count(context.Context) (int, error) { return len(m.records), nil }

func (m *memoryProjector) FocusByDay(context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, r := range m.records {
		out[r.StartedAt.UTC().Format(time.DateOnly)] += r.DurationSecs
	}
	return out, nil
}

var now = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func newInteractor(t *testing.T, projector *memoryProjector) (historyin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	store := historyout.NewJSONRecordStore(filepath.Join(dir, "sessions.json"))
	svc := service.NewLedgerService(fixedClock{now: now}, &seqID{}, store, time.UTC)
	return usecase.NewInteractor(svc, projector, historyout.NewMarkdownJournal(time.UTC), logging.Discard()), dir
}

func appendAt(t *testing.T, uc historyin.Usecase, task string, at time.Time, secs int, completed bool) historydto.RecordOutput {
	t.Helper()
	out, err := uc.Append(context.Background(), historydto.AppendInput{Task: task, StartedAt: at, DurationSecs: secs, Completed: completed})
	if err != nil {
		t.Fatalf("append %q: %v", task, err)
	}
	return out
}

func TestAppendAssignsIDAndProjects(t *testing.T) {
	t.Parallel()
	projector := &memoryProjector{}
	uc, _ := newInteractor(t, projector)

	out := appendAt(t, uc, "write tests", now.Add(-25*time.Minute), 1500, true)
	if out.ID != "rec-1" || out.Task != "write tests" || !out.Completed {
		t.Fatalf("unexpected output: %#v", out)
	}
	if _, ok := projector.records["rec-1"]; !ok {
		t.Fatalf("record was not projected")
	}
}

func TestAppendRejectsBlankTask(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, &memoryProjector{})
	_, err := uc.Append(context.Background(), historydto.AppendInput{Task: "   ", DurationSecs: 10})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAppendSurvivesProjectionFailure(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, &memoryProjector{fail: errors.New("disk full")})
	appendAt(t, uc, "still saved", now, 60, false)

	list, err := uc.List(context.Background(), historydto.ListInput{Window: "all"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Records) != 1 {
		t.Fatalf("expected the record in the store, got %d", len(list.Records))
	}
}

func TestListFiltersAndSortsNewestFirst(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, &memoryProjector{})
	appendAt(t, uc, "morning", now.Add(-6*time.Hour), 1500, true)
	appendAt(t, uc, "last week", now.AddDate(0, 0, -7), 1500, true)
	appendAt(t, uc, "ancient", now.AddDate(0, 0, -30), 900, false)
	appendAt(t, uc, "afternoon", now.Add(-time.Hour), 600, false)

	tests := []struct {
		window string
		label  string
		want   []string
	}{
		{window: "today", label: "Today", want: []string{"afternoon", "morning"}},
		{window: "", label: "This Week", want: []string{"afternoon", "morning", "last week"}},
		{window: "all", label: "All Time", want: []string{"afternoon", "morning", "last week", "ancient"}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			out, err := uc.List(context.Background(), historydto.ListInput{Window: tt.window})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if out.Label != tt.label {
				t.Fatalf("label = %q, want %q", out.Label, tt.label)
			}
			got := []string{}
			for _, r := range out.Records {
				got = append(got, r.Task)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := uc.List(context.Background(), historydto.ListInput{Window: "month"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid window error, got %v", err)
	}
}

func TestStatsSummarizesWindowAndTrendsAllHistory(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, &memoryProjector{})
	appendAt(t, uc, "a", now.Add(-2*time.Hour), 1500, true)
	appendAt(t, uc, "b", now.Add(-time.Hour), 301, false)
	appendAt(t, uc, "c", now.AddDate(0, 0, -2), 1500, true)

	out, err := uc.Stats(context.Background(), historydto.StatsInput{Window: "today"})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if out.Count != 2 || out.Completed != 1 || out.Interrupted != 1 || out.TotalSeconds != 1801 || out.AverageSeconds != 900 {
		t.Fatalf("unexpected summary: %#v", out)
	}
	if out.CompletionRate != 50 {
		t.Fatalf("completion rate = %v", out.CompletionRate)
	}
	if len(out.Daily) != domain.TrendDays {
		t.Fatalf("expected %d trend days, got %d", domain.TrendDays, len(out.Daily))
	}
	last := out.Daily[len(out.Daily)-1]
	if last.Date != "2026-10-19" || last.Weekday != "Mon" || last.Seconds != 1801 {
		t.Fatalf("unexpected last day: %#v", last)
	}
	if out.Daily[4].Seconds != 1500 {
		t.Fatalf("trend must include records outside the window: %#v", out.Daily)
	}
}

func TestReindexRebuildsProjection(t *testing.T) {
	t.Parallel()
	projector := &memoryProjector{}
	uc, _ := newInteractor(t, projector)
	appendAt(t, uc, "a", now, 60, true)
	appendAt(t, uc, "b", now, 60, true)
	appendAt(t, uc, "c", now.AddDate(0, 0, -1), 90, false)
	projector.records["stale"] = domain.Record{ID: "stale"}

	out, err := uc.Reindex(context.Background(), historydto.ReindexInput{})
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if out.Indexed != 3 {
		t.Fatalf("indexed = %d, want 3", out.Indexed)
	}
	if _, ok := projector.records["stale"]; ok {
		t.Fatalf("stale entry survived reindex")
	}
	want := []historydto.DayTotalOutput{
		{Date: "2026-10-18", Weekday: "Sun", Seconds: 90},
		{Date: "2026-10-19", Weekday: "Mon", Seconds: 120},
	}
	if fmt.Sprint(out.Days) != fmt.Sprint(want) {
		t.Fatalf("days = %v, want %v", out.Days, want)
	}
}

func TestExportWritesOneNotePerDay(t *testing.T) {
	t.Parallel()
	uc, dir := newInteractor(t, &memoryProjector{})
	appendAt(t, uc, "today", now, 60, true)
	appendAt(t, uc, "yesterday", now.AddDate(0, 0, -1), 60, false)
	appendAt(t, uc, "also today", now.Add(time.Minute), 60, true)

	exportDir := filepath.Join(dir, "journal")
	out, err := uc.Export(context.Background(), historydto.ExportInput{Dir: exportDir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := []string{filepath.Join(exportDir, "2026-10-18.md"), filepath.Join(exportDir, "2026-10-19.md")}
	if out.Days != 2 || strings.Join(out.Notes, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected export: %#v", out)
	}

	if _, err := uc.Export(context.Background(), historydto.ExportInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected missing dir error, got %v", err)
	}
}
