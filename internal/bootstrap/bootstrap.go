package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	historyinadapter "tomato/internal/modules/history/adapter/in"
	historyoutadapter "tomato/internal/modules/history/adapter/out"
	historyservice "tomato/internal/modules/history/service"
	historyusecase "tomato/internal/modules/history/usecase"
	timerdomain "tomato/internal/modules/timer/domain"
	timerinadapter "tomato/internal/modules/timer/adapter/in"
	timeroutadapter "tomato/internal/modules/timer/adapter/out"
	timerout "tomato/internal/modules/timer/port/out"
	timerservice "tomato/internal/modules/timer/service"
	timerusecase "tomato/internal/modules/timer/usecase"
	"tomato/internal/platform/clock"
	"tomato/internal/platform/config"
	"tomato/internal/platform/id"
	"tomato/internal/platform/logging"
	uiapp "tomato/internal/ui/app"
)

type App struct {
	HistoryCLI historyinadapter.CLIHandler
	TimerTUI   timerinadapter.TUIHandler
	Location   *time.Location
	Logger     *slog.Logger

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app := &App{Logger: logger, Location: clock.Local(), closers: []io.Closer{logCloser}}

	clk := clock.SystemClock{}
	projector, err := historyoutadapter.NewSQLiteRecordProjector(cfg.DBPath, app.Location)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new session projector: %w", err)
	}
	app.closers = append(app.closers, projector)

	ledger := historyservice.NewLedgerService(clk, id.UUID{}, historyoutadapter.NewJSONRecordStore(cfg.SessionsPath), app.Location)
	historyUC := historyusecase.NewInteractor(ledger, projector, historyoutadapter.NewMarkdownJournal(app.Location), logger)

	clockSvc, err := timerservice.NewClockService(clk, timerdomain.Config{
		WorkDuration:           cfg.WorkDuration,
		ShortBreakDuration:     cfg.ShortBreak,
		LongBreakDuration:      cfg.LongBreak,
		SessionsUntilLongBreak: cfg.LongBreakInterval,
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new clock: %w", err)
	}
	notifier := app.notifier(cfg.Notify)
	timerUC := timerusecase.NewInteractor(clockSvc, timeroutadapter.NewHistorySink(historyUC), notifier, logger)

	app.HistoryCLI = historyinadapter.NewCLIHandler(historyUC)
	app.TimerTUI = timerinadapter.NewTUIHandler(timerUC)
	logger.Info("tomato started", "data_dir", cfg.DataDir, "work", cfg.WorkDuration.String(), "notify", cfg.Notify)
	return app, nil
}

// notifier prefers the session bus and falls back to the platform's
// notification command when no bus is reachable.
func (a *App) notifier(enabled bool) timerout.Notifier {
	if !enabled {
		return timeroutadapter.NewNoopNotifier()
	}
	bus, err := timeroutadapter.NewDBusNotifier()
	if err != nil {
		a.Logger.Warn("dbus notifications unavailable, using command notifier", "error", err)
		return timeroutadapter.NewCommandNotifier()
	}
	a.closers = append(a.closers, bus)
	return bus
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TimerTUI, app.HistoryCLI, app.Location)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
