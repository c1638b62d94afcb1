package domain

import "time"

// TrendDays is the length of the daily focus trend.
const TrendDays = 7

// weekSpan makes the Week window inclusive of ref-7d, i.e. eight calendar days.
const weekSpan = 7

type DayTotal struct {
	Date    Date
	Seconds int
}

type Summary struct {
	Count            int
	CompletedCount   int
	InterruptedCount int
	TotalSeconds     int
	AverageSeconds   int
}

// CompletionRate is the completed share in percent, 0 for an empty summary.
func (s Summary) CompletionRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.CompletedCount) / float64(s.Count) * 100
}

// Filter keeps the records whose local start date falls in window, relative
// to ref. Input order is preserved and the input slice is not modified.
// Week has no upper bound: records dated after ref (clock moved back) stay.
func Filter(records []Record, window Window, ref Date, loc *time.Location) []Record {
	out := make([]Record, 0, len(records))
	weekStart := ref.AddDays(-weekSpan)
	for _, r := range records {
		day := DateOf(r.StartedAt, loc)
		switch window {
		case WindowToday:
			if day != ref {
				continue
			}
		case WindowWeek:
			if day.Before(weekStart) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// DailyTotals sums DurationSecs per local day for the days ending at ref,
// oldest first. It always returns exactly days entries.
func DailyTotals(records []Record, ref Date, days int, loc *time.Location) []DayTotal {
	if days < 1 {
		days = TrendDays
	}
	totals := make([]DayTotal, days)
	index := make(map[Date]int, days)
	for i := 0; i < days; i++ {
		d := ref.AddDays(i - days + 1)
		totals[i] = DayTotal{Date: d}
		index[d] = i
	}
	for _, r := range records {
		if i, ok := index[DateOf(r.StartedAt, loc)]; ok {
			totals[i].Seconds += r.DurationSecs
		}
	}
	return totals
}

func Summarize(records []Record) Summary {
	s := Summary{Count: len(records)}
	for _, r := range records {
		if r.Completed {
			s.CompletedCount++
		}
		s.TotalSeconds += r.DurationSecs
	}
	s.InterruptedCount = s.Count - s.CompletedCount
	if s.Count > 0 {
		s.AverageSeconds = s.TotalSeconds / s.Count
	}
	return s
}
