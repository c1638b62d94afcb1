package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tomato/internal/modules/history/domain"
	historyout "tomato/internal/modules/history/port/out"
	"tomato/internal/platform/markdown"
)

var sessionsBlock = markdown.NewBlock("tomato:sessions")

type MarkdownJournal struct {
	loc *time.Location
}

func NewMarkdownJournal(loc *time.Location) historyout.JournalWriter {
	if loc == nil {
		loc = time.Local
	}
	return &MarkdownJournal{loc: loc}
}

// WriteDay creates or refreshes <dir>/YYYY-MM-DD.md. Only the frontmatter
// counters and the sessions block are rewritten.
func (j *MarkdownJournal) WriteDay(_ context.Context, dir string, day domain.Date, records []domain.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, day.String()+".md")

	note := markdown.Note{Meta: map[string]any{}, Body: "# " + day.String() + "\n"}
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		note, err = markdown.ParseNote(string(existing))
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	summary := domain.Summarize(records)
	note.Set(map[string]any{
		"date":          day.String(),
		"sessions":      summary.Count,
		"completed":     summary.CompletedCount,
		"focus_seconds": summary.TotalSeconds,
	})
	note.Body = sessionsBlock.Replace(note.Body, j.renderSessions(records))

	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (j *MarkdownJournal) renderSessions(records []domain.Record) string {
	var b strings.Builder
	for _, r := range records {
		mark := " "
		if r.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s %s (%dm %02ds)\n",
			mark,
			r.StartedAt.In(j.loc).Format("15:04"),
			strings.TrimSpace(r.Task),
			r.DurationSecs/60,
			r.DurationSecs%60,
		)
	}
	return b.String()
}
