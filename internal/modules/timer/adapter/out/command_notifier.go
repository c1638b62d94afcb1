package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	timerout "tomato/internal/modules/timer/port/out"
)

// CommandNotifier shells out to the platform notification tool. It is the
// fallback when no session bus is reachable.
type CommandNotifier struct {
	goos string
}

func NewCommandNotifier() timerout.Notifier {
	return &CommandNotifier{goos: runtime.GOOS}
}

// Notify starts the command and returns without waiting for it. The process
// is detached from ctx so a caller deadline does not kill it mid-flight.
func (n *CommandNotifier) Notify(ctx context.Context, summary, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd, err := n.command(context.WithoutCancel(ctx), summary, body)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start notifier: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (n *CommandNotifier) command(ctx context.Context, summary, body string) (*exec.Cmd, error) {
	switch n.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, summary)
		return exec.CommandContext(ctx, "osascript", "-e", script), nil
	case "linux", "freebsd", "openbsd":
		return exec.CommandContext(ctx, "notify-send", "--app-name="+appName, summary, body), nil
	}
	return nil, fmt.Errorf("desktop notifications are not supported on %s", n.goos)
}
