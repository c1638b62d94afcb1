package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A zone east of UTC makes UTC and local day boundaries disagree.
var tokyo = time.FixedZone("JST", 9*60*60)

func rec(id string, local time.Time, secs int, completed bool) Record {
	return Record{ID: id, Task: "task " + id, StartedAt: local.UTC(), DurationSecs: secs, Completed: completed}
}

func localAt(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, tokyo)
}

func fixture() []Record {
	return []Record{
		rec("old", localAt(2026, 9, 1, 10), 1500, true),
		rec("d-8", localAt(2026, 10, 11, 23), 600, false),
		rec("d-7", localAt(2026, 10, 12, 0), 1500, true),
		rec("d-6", localAt(2026, 10, 13, 8), 900, false),
		rec("d-1", localAt(2026, 10, 18, 23), 1500, true),
		rec("today-early", localAt(2026, 10, 19, 1), 1500, true),
		rec("today-late", localAt(2026, 10, 19, 22), 300, false),
	}
}

var ref = Date{Year: 2026, Month: time.October, Day: 19}

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterToday(t *testing.T) {
	got := Filter(fixture(), WindowToday, ref, tokyo)
	// "today-early" is 2026-10-18 16:00 UTC but 2026-10-19 in Tokyo.
	assert.Equal(t, []string{"today-early", "today-late"}, ids(got))
}

func TestFilterWeekIsEightCalendarDays(t *testing.T) {
	got := Filter(fixture(), WindowWeek, ref, tokyo)
	assert.Equal(t, []string{"d-7", "d-6", "d-1", "today-early", "today-late"}, ids(got))
}

func TestFilterWeekKeepsRecordsAfterRef(t *testing.T) {
	records := append(fixture(), rec("future", localAt(2026, 10, 21, 9), 1500, true))
	got := Filter(records, WindowWeek, ref, tokyo)
	assert.Contains(t, ids(got), "future")
	assert.NotContains(t, ids(Filter(records, WindowToday, ref, tokyo)), "future")
}

func TestFilterAllKeepsEverythingInOrder(t *testing.T) {
	in := fixture()
	got := Filter(in, WindowAll, ref, tokyo)
	assert.Equal(t, ids(in), ids(got))
	got[0].Task = "mutated"
	assert.NotEqual(t, "mutated", in[0].Task)
}

func TestDailyTotals(t *testing.T) {
	got := DailyTotals(fixture(), ref, TrendDays, tokyo)
	require.Len(t, got, 7)
	assert.Equal(t, Date{2026, time.October, 13}, got[0].Date)
	assert.Equal(t, ref, got[6].Date)

	want := []int{900, 0, 0, 0, 0, 1500, 1800}
	for i, day := range got {
		assert.Equal(t, want[i], day.Seconds, "day %s", day.Date)
	}
}

func TestDailyTotalsAlwaysHasSevenEntries(t *testing.T) {
	got := DailyTotals(nil, ref, TrendDays, tokyo)
	require.Len(t, got, 7)
	for _, day := range got {
		assert.Zero(t, day.Seconds)
	}
	assert.Len(t, DailyTotals(nil, ref, 0, tokyo), TrendDays)
}

func TestDailyTotalsAcrossMonthBoundary(t *testing.T) {
	first := Date{Year: 2026, Month: time.March, Day: 2}
	got := DailyTotals([]Record{rec("x", localAt(2026, 2, 26, 12), 60, true)}, first, 7, tokyo)
	require.Len(t, got, 7)
	assert.Equal(t, Date{2026, time.February, 24}, got[0].Date)
	assert.Equal(t, 60, got[2].Seconds)
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture())
	assert.Equal(t, 7, s.Count)
	assert.Equal(t, 4, s.CompletedCount)
	assert.Equal(t, 3, s.InterruptedCount)
	assert.Equal(t, 7800, s.TotalSeconds)
	assert.Equal(t, 7800/7, s.AverageSeconds)
	assert.InDelta(t, 57.14, s.CompletionRate(), 0.01)

	empty := Summarize(nil)
	assert.Equal(t, Summary{}, empty)
	assert.Zero(t, empty.CompletionRate())
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in      string
		want    Window
		wantErr bool
	}{
		{in: "", want: WindowWeek},
		{in: "week", want: WindowWeek},
		{in: "Today", want: WindowToday},
		{in: " all ", want: WindowAll},
		{in: "month", want: WindowWeek, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWindow(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindowCycle(t *testing.T) {
	assert.Equal(t, WindowWeek, WindowToday.Next())
	assert.Equal(t, WindowAll, WindowWeek.Next())
	assert.Equal(t, WindowToday, WindowAll.Next())
	assert.Equal(t, "This Week", WindowWeek.Label())
}

func TestDateArithmetic(t *testing.T) {
	d := Date{Year: 2026, Month: time.December, Day: 31}
	assert.Equal(t, Date{2027, time.January, 1}, d.AddDays(1))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
	assert.Equal(t, "2026-12-31", d.String())
	assert.Equal(t, time.Thursday, d.Weekday())
}

func TestDateCompare(t *testing.T) {
	a := Date{2026, time.October, 19}
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(Date{2026, time.November, 1}))
	assert.Equal(t, 1, a.Compare(Date{2025, time.December, 31}))
}
