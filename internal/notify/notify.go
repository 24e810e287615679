// Package notify sends best-effort desktop notifications over the
// freedesktop.org notification D-Bus interface.
package notify

import (
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// AppName identifies nm-dmenu to the notification daemon.
const AppName = "nm-dmenu"

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	method     = busName + ".Notify"
	// defaultExpiry lets the server pick how long the notification stays.
	defaultExpiry = int32(-1)
)

// Notifier delivers a message to the user. Notify never fails: delivery
// problems are swallowed.
type Notifier interface {
	Notify(msg string)
	Close() error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(string) {}
func (Nop) Close() error  { return nil }

// caller is the part of a dbus.BusObject that DBus uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBus sends notifications on a session bus connection.
type DBus struct {
	conn   *dbus.Conn
	obj    caller
	logger *slog.Logger
}

// New connects to the session bus. When that fails the returned Notifier is a
// Nop and the failure is logged once.
func New(logger *slog.Logger) Notifier {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		logger.Warn("desktop notifications unavailable", "error", err)
		return Nop{}
	}
	return &DBus{
		conn:   conn,
		obj:    conn.Object(busName, objectPath),
		logger: logger,
	}
}

// Notify shows msg as the notification summary. It does not wait for the
// notification daemon to answer.
func (d *DBus) Notify(msg string) {
	call := d.obj.Call(method, dbus.FlagNoReplyExpected,
		AppName,                   // app_name
		uint32(0),                 // replaces_id
		"",                        // app_icon
		msg,                       // summary
		"",                        // body
		[]string{},                // actions
		map[string]dbus.Variant{}, // hints
		defaultExpiry,             // expire_timeout
	)
	if call.Err != nil {
		d.logger.Debug("notification not delivered", "error", call.Err)
	}
}

// Close releases the bus connection.
func (d *DBus) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}
