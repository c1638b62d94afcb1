package out

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	timerout "tomato/internal/modules/timer/port/out"
)

const (
	notificationsName   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsNotify = notificationsName + ".Notify"

	appName       = "tomato"
	appIcon       = "alarm-symbolic"
	expireTimeout = int32(10000)
)

// DBusNotifier posts desktop notifications on the session bus.
type DBusNotifier struct {
	conn *dbus.Conn
}

func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &DBusNotifier{conn: conn}, nil
}

var _ timerout.Notifier = (*DBusNotifier)(nil)

func (n *DBusNotifier) Notify(ctx context.Context, summary, body string) error {
	obj := n.conn.Object(notificationsName, dbus.ObjectPath(notificationsPath))
	call := obj.CallWithContext(ctx, notificationsNotify, 0,
		appName,
		uint32(0), // replaces_id
		appIcon,
		summary,
		body,
		[]string{}, // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)),
		},
		expireTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}
	return nil
}

func (n *DBusNotifier) Close() error {
	return n.conn.Close()
}
