//go:build linux

package notify

import (
	"errors"
	"os"
	"testing"

	"github.com/godbus/dbus/v5"
)

type busCall struct {
	method string
	args   []any
}

// fakeBus answers Notify with increasing ids, or reuses the replaced id.
type fakeBus struct {
	calls  []busCall
	nextID uint32
	err    error
}

func (b *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	b.calls = append(b.calls, busCall{method, args})
	if b.err != nil {
		return &dbus.Call{Err: b.err}
	}
	if method != dbusNotifyInterface+".Notify" {
		return &dbus.Call{}
	}
	id := args[1].(uint32)
	if id == 0 {
		b.nextID++
		id = b.nextID
	}
	return &dbus.Call{Body: []any{id}}
}

func TestDBusNotifier_ShowReplacesPrevious(t *testing.T) {
	bus := &fakeBus{nextID: 41}
	n := &dbusNotifier{obj: bus}

	if err := n.Show("One", "Band"); err != nil {
		t.Fatalf("Show error: %v", err)
	}
	if err := n.Show("Two", "Band"); err != nil {
		t.Fatalf("Show error: %v", err)
	}

	if len(bus.calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(bus.calls))
	}
	first, second := bus.calls[0].args, bus.calls[1].args
	if first[0] != appName {
		t.Errorf("app_name = %v, want %q", first[0], appName)
	}
	if first[1] != uint32(0) {
		t.Errorf("first replaces_id = %v, want 0", first[1])
	}
	if second[1] != uint32(42) {
		t.Errorf("second replaces_id = %v, want 42", second[1])
	}
	if first[2] != songIcon {
		t.Errorf("app_icon = %v, want %q", first[2], songIcon)
	}
	if second[3] != "Two" || second[4] != "Band" {
		t.Errorf("summary, body = %v, %v, want Two, Band", second[3], second[4])
	}
	hints := first[6].(map[string]dbus.Variant)
	if got := hints["urgency"].Value(); got != urgencyLow {
		t.Errorf("urgency hint = %v, want %d", got, urgencyLow)
	}
}

func TestDBusNotifier_Dismiss(t *testing.T) {
	bus := &fakeBus{}
	n := &dbusNotifier{obj: bus}

	if err := n.Dismiss(); err != nil {
		t.Fatalf("Dismiss with nothing shown: %v", err)
	}
	if len(bus.calls) != 0 {
		t.Fatalf("Dismiss with nothing shown made %d calls", len(bus.calls))
	}

	_ = n.Show("One", "Band")
	if err := n.Dismiss(); err != nil {
		t.Fatalf("Dismiss error: %v", err)
	}
	last := bus.calls[len(bus.calls)-1]
	if last.method != dbusNotifyInterface+".CloseNotification" || last.args[0] != uint32(1) {
		t.Errorf("last call = %+v, want CloseNotification(1)", last)
	}

	_ = n.Show("Two", "Band")
	if got := bus.calls[len(bus.calls)-1].args[1]; got != uint32(0) {
		t.Errorf("replaces_id after Dismiss = %v, want 0", got)
	}
}

func TestDBusNotifier_FailedShowKeepsID(t *testing.T) {
	bus := &fakeBus{}
	n := &dbusNotifier{obj: bus}
	_ = n.Show("One", "Band")

	bus.err = errors.New("name has no owner")
	if err := n.Show("Two", "Band"); err == nil {
		t.Fatal("expected error")
	}

	bus.err = nil
	_ = n.Show("Three", "Band")
	if got := bus.calls[len(bus.calls)-1].args[1]; got != uint32(1) {
		t.Errorf("replaces_id after failure = %v, want 1", got)
	}
}

func TestDBusNotifier_SessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	n, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := n.Show("tapedeck test", "Test notification"); err != nil {
		t.Fatalf("Show() error: %v", err)
	}
	if err := n.Dismiss(); err != nil {
		t.Errorf("Dismiss() error: %v", err)
	}
}
