//go:build linux

package notify

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	songIcon = "audio-x-generic"
	// songTimeout is how long a song notification stays visible, in ms.
	songTimeout int32 = 5000
	urgencyLow  byte  = 0
)

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// dbusNotifier talks to the freedesktop notification server and remembers
// the id of the notification it shows, so the next one replaces it.
type dbusNotifier struct {
	obj caller

	mu sync.Mutex
	id uint32
}

// New connects to the session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return &dbusNotifier{obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}, nil
}

func (n *dbusNotifier) Show(summary, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgencyLow),
		"desktop-entry": dbus.MakeVariant(appName),
		"category":      dbus.MakeVariant("x-gnome.music"),
		"transient":     dbus.MakeVariant(true),
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		appName,
		n.id,
		songIcon,
		summary,
		body,
		[]string{},
		hints,
		songTimeout,
	)
	var id uint32
	if err := call.Store(&id); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *dbusNotifier) Dismiss() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.id == 0 {
		return nil
	}
	id := n.id
	n.id = 0
	return n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}
