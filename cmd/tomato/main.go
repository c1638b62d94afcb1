package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tomato/internal/bootstrap"
	historydto "tomato/internal/modules/history/dto"
	"tomato/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir string
	verbose bool
}

// timerFlags override config.yaml only when set on the command line.
type timerFlags struct {
	duration          int
	shortBreak        int
	longBreak         int
	longBreakInterval int
	notify            bool
}

func (f *timerFlags) register(fs *pflag.FlagSet) {
	defaults := config.Defaults()
	fs.IntVarP(&f.duration, "duration", "d", int(defaults.WorkDuration/time.Minute), "work interval in minutes")
	fs.IntVarP(&f.shortBreak, "short-break", "s", int(defaults.ShortBreak/time.Minute), "short break in minutes")
	fs.IntVarP(&f.longBreak, "long-break", "l", int(defaults.LongBreak/time.Minute), "long break in minutes")
	fs.IntVarP(&f.longBreakInterval, "long-break-interval", "n", defaults.LongBreakInterval, "work sessions before a long break")
	fs.BoolVar(&f.notify, "notify", false, "send a desktop notification when an interval ends")
}

func (f *timerFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("duration") {
		cfg.WorkDuration = time.Duration(f.duration) * time.Minute
	}
	if fs.Changed("short-break") {
		cfg.ShortBreak = time.Duration(f.shortBreak) * time.Minute
	}
	if fs.Changed("long-break") {
		cfg.LongBreak = time.Duration(f.longBreak) * time.Minute
	}
	if fs.Changed("long-break-interval") {
		cfg.LongBreakInterval = f.longBreakInterval
	}
	if fs.Changed("notify") {
		cfg.Notify = f.notify
	}
}

func newRootCmd() *cobra.Command {
	globals := &globalFlags{}
	rootTimer := &timerFlags{}

	root := &cobra.Command{
		Use:           "tomato",
		Short:         "Pomodoro timer for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, globals, rootTimer)
		},
	}
	root.PersistentFlags().StringVar(&globals.dataDir, "data-dir", "", "data directory (default $TOMATO_DATA_DIR or ~/.local/share/tomato)")
	root.PersistentFlags().BoolVar(&globals.verbose, "verbose", false, "debug logging to the log file")
	rootTimer.register(root.Flags())

	root.AddCommand(newStartCmd(globals))
	root.AddCommand(newListCmd(globals))
	root.AddCommand(newStatsCmd(globals))
	root.AddCommand(newReindexCmd(globals))
	root.AddCommand(newExportCmd(globals))
	return root
}

func loadConfig(globals *globalFlags) (config.Config, error) {
	cfg, err := config.New(globals.dataDir)
	if err != nil {
		return config.Config{}, err
	}
	if globals.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func loadApp(globals *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func runTUI(cmd *cobra.Command, globals *globalFlags, flags *timerFlags) error {
	cfg, err := loadConfig(globals)
	if err != nil {
		return err
	}
	flags.apply(cmd.Flags(), &cfg)
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	return bootstrap.RunTUI(app)
}

func newStartCmd(globals *globalFlags) *cobra.Command {
	flags := &timerFlags{}
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the pomodoro timer (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, globals, flags)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// windowFlags back --today/--week/--all.
type windowFlags struct {
	today bool
	week  bool
	all   bool
}

func (w *windowFlags) register(cmd *cobra.Command, noun string) {
	cmd.Flags().BoolVar(&w.today, "today", false, "only today's "+noun)
	cmd.Flags().BoolVar(&w.week, "week", false, "the last seven days of "+noun)
	cmd.Flags().BoolVar(&w.all, "all", false, "all "+noun)
	cmd.MarkFlagsMutuallyExclusive("today", "week", "all")
}

func (w *windowFlags) value(fallback string) string {
	switch {
	case w.today:
		return "today"
	case w.week:
		return "week"
	case w.all:
		return "all"
	}
	return fallback
}

func newListCmd(globals *globalFlags) *cobra.Command {
	window := &windowFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(globals)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.HistoryCLI.List(context.Background(), window.value("week"))
			if err != nil {
				return err
			}
			printSessions(cmd.OutOrStdout(), out, app.Location)
			return nil
		},
	}
	window.register(cmd, "sessions")
	return cmd
}

func newStatsCmd(globals *globalFlags) *cobra.Command {
	window := &windowFlags{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show focus time statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(globals)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.HistoryCLI.Stats(context.Background(), window.value("week"))
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), out)
			return nil
		},
	}
	window.register(cmd, "stats")
	return cmd
}

func newReindexCmd(globals *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite session index from sessions.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(globals)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.HistoryCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			printReindex(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newExportCmd(globals *globalFlags) *cobra.Command {
	window := &windowFlags{}
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one markdown note per day of sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(globals)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.HistoryCLI.Export(context.Background(), dir, window.value("all"))
			if err != nil {
				return err
			}
			for _, note := range out.Notes {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), note)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d days to %s\n", out.Days, out.Dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "journal directory")
	_ = cmd.MarkFlagRequired("dir")
	window.register(cmd, "sessions")
	return cmd
}

const (
	listTaskWidth = 22
	listRule      = 60
)

func printSessions(w io.Writer, out historydto.ListOutput, loc *time.Location) {
	if len(out.Records) == 0 {
		_, _ = fmt.Fprintln(w, "No sessions found.")
		return
	}
	_, _ = fmt.Fprintf(w, "Sessions (%s)\n", out.Label)
	_, _ = fmt.Fprintln(w, strings.Repeat("=", listRule))
	_, _ = fmt.Fprintf(w, "%-12s %-8s %-24s %-10s %s\n", "Date", "Time", "Task", "Duration", "Status")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", listRule))
	for _, r := range out.Records {
		started := r.StartedAt.In(loc)
		_, _ = fmt.Fprintf(w, "%-12s %-8s %-24s %-10s %s\n",
			started.Format("2006-01-02"),
			started.Format("15:04"),
			clip(r.Task, listTaskWidth),
			fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
			statusText(r.Completed),
		)
	}
}

func printStats(w io.Writer, out historydto.StatsOutput) {
	_, _ = fmt.Fprintf(w, "Statistics (%s)\n\n", out.Label)
	_, _ = fmt.Fprintln(w, "Session Statistics")
	_, _ = fmt.Fprintln(w, "==================")
	_, _ = fmt.Fprintf(w, "Total Sessions:      %d\n", out.Count)
	_, _ = fmt.Fprintf(w, "Completed:           %d (%.1f%%)\n", out.Completed, out.CompletionRate)
	_, _ = fmt.Fprintf(w, "Interrupted:         %d\n", out.Interrupted)
	_, _ = fmt.Fprintf(w, "Total Focus Time:    %s\n", longDuration(out.TotalSeconds))
	_, _ = fmt.Fprintf(w, "Average Duration:    %s\n", longDuration(out.AverageSeconds))
}

func printReindex(w io.Writer, out historydto.ReindexOutput) {
	_, _ = fmt.Fprintf(w, "indexed %d sessions\n", out.Indexed)
	for _, day := range out.Days {
		_, _ = fmt.Fprintf(w, "%-12s %-4s %s\n", day.Date, day.Weekday, longDuration(day.Seconds))
	}
}

func statusText(completed bool) string {
	if completed {
		return "Completed"
	}
	return "Interrupted"
}

// clip shortens s to width runes, ending in "...".
func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// longDuration renders "1h 2m 3s", "2m 3s" or "3s".
func longDuration(secs int) string {
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
