package domain

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Record is one persisted work session. Records are created once and never
// mutated afterwards.
type Record struct {
	ID           string    `json:"id"`
	Task         string    `json:"task"`
	StartedAt    time.Time `json:"started_at"`
	DurationSecs int       `json:"duration_secs"`
	Completed    bool      `json:"completed"`
}

type Window int

const (
	WindowToday Window = iota
	WindowWeek
	WindowAll
)

func (w Window) String() string {
	switch w {
	case WindowToday:
		return "today"
	case WindowWeek:
		return "week"
	case WindowAll:
		return "all"
	}
	return "unknown"
}

// Label is the human title used by list and stats output.
func (w Window) Label() string {
	switch w {
	case WindowToday:
		return "Today"
	case WindowWeek:
		return "This Week"
	}
	return "All Time"
}

// Next cycles Today -> Week -> All -> Today.
func (w Window) Next() Window {
	switch w {
	case WindowToday:
		return WindowWeek
	case WindowWeek:
		return WindowAll
	}
	return WindowToday
}

// ParseWindow accepts today, week or all. The empty string means week.
func ParseWindow(raw string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "week":
		return WindowWeek, nil
	case "today":
		return WindowToday, nil
	case "all":
		return WindowAll, nil
	}
	return WindowWeek, fmt.Errorf("unknown window %q (want today, week or all)", raw)
}

// Date is a calendar day without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays normalizes through UTC so DST transitions never skip or repeat a day.
func (d Date) AddDays(n int) Date {
	y, m, day := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC).Date()
	return Date{Year: y, Month: m, Day: day}
}

// Compare returns -1, 0 or +1, for use with slices.SortFunc.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmp.Compare(d.Year, o.Year)
	case d.Month != o.Month:
		return cmp.Compare(d.Month, o.Month)
	}
	return cmp.Compare(d.Day, o.Day)
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
