package dto

import "time"

type AppendInput struct {
	Task         string
	StartedAt    time.Time
	DurationSecs int
	Completed    bool
}

type RecordOutput struct {
	ID           string
	Task         string
	StartedAt    time.Time
	DurationSecs int
	Completed    bool
}

// Window values are "today", "week" or "all"; empty means week.
type ListInput struct {
	Window string
}

type ListOutput struct {
	Window  string
	Label   string
	Records []RecordOutput
}

type StatsInput struct {
	Window string
}

type DayTotalOutput struct {
	Date    string
	Weekday string
	Seconds int
}

type StatsOutput struct {
	Window         string
	Label          string
	Count          int
	Completed      int
	Interrupted    int
	TotalSeconds   int
	AverageSeconds int
	CompletionRate float64
	Daily          []DayTotalOutput
}

type ReindexInput struct{}

// ReindexOutput reports the rebuilt index; Days is read back from it, oldest first.
type ReindexOutput struct {
	Indexed int
	Days    []DayTotalOutput
}

type ExportInput struct {
	Dir    string
	Window string
}

type ExportOutput struct {
	Dir   string
	Notes []string
	Days  int
}
