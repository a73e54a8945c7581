package display

import (
	"flag"
	"testing"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

type nopDriver struct {
	scale   float64
	verbose bool
	port    int
}

func (n *nopDriver) Initialize(Emulator) {}
func (n *nopDriver) Start(<-chan []byte, <-chan event.Event, chan<- keypad.Key, chan<- keypad.Key) error {
	return nil
}
func (n *nopDriver) Stop() error { return nil }

func withDrivers(t *testing.T) (*nopDriver, *nopDriver) {
	t.Helper()
	saved := InstalledDrivers
	t.Cleanup(func() { InstalledDrivers = saved })
	InstalledDrivers = nil

	a, b := &nopDriver{}, &nopDriver{}
	Install("a", a, []DriverOption{
		{Name: "scale", Default: 4.0, Value: &a.scale, Type: "float"},
		{Name: "port", Default: 8090, Value: &a.port, Type: "int"},
	})
	Install("b", b, []DriverOption{
		{Name: "scale", Default: 4.0, Value: &b.scale, Type: "float"},
		{Name: "verbose", Default: false, Value: &b.verbose, Type: "bool"},
	})
	return a, b
}

func TestGetDriver(t *testing.T) {
	a, b := withDrivers(t)
	if GetDriver("auto") != Driver(a) {
		t.Errorf("expected auto to select the first driver")
	}
	if GetDriver("b") != Driver(b) {
		t.Errorf("expected driver b")
	}
	if GetDriver("c") != nil {
		t.Errorf("expected nil for unknown driver")
	}
	if names := Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected [a b], got %v", names)
	}
}

func TestRegisterFlags(t *testing.T) {
	a, b := withDrivers(t)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)

	if err := fs.Parse([]string{"-scale", "2", "-a-port", "9000", "-b-verbose"}); err != nil {
		t.Fatal(err)
	}
	if a.scale != 2 || b.scale != 2 {
		t.Errorf("expected shared scale 2, got %v and %v", a.scale, b.scale)
	}
	if a.port != 9000 {
		t.Errorf("expected port 9000, got %d", a.port)
	}
	if !b.verbose {
		t.Errorf("expected verbose to be set")
	}
}

func TestRegisterFlags_Defaults(t *testing.T) {
	a, b := withDrivers(t)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if a.scale != 4 || b.scale != 4 || a.port != 8090 {
		t.Errorf("expected defaults, got scale %v %v port %d", a.scale, b.scale, a.port)
	}
}

type fakeEmulator struct {
	status emulator.Status
	sent   []emulator.Command
}

func (f *fakeEmulator) SendCommand(c emulator.CommandPacket) emulator.ResponsePacket {
	f.sent = append(f.sent, c.Command)
	return emulator.ResponsePacket{Command: c.Command}
}
func (f *fakeEmulator) Speed() float64          { return 1 }
func (f *fakeEmulator) Status() emulator.Status { return f.status }

func TestTogglePause(t *testing.T) {
	for _, tt := range []struct {
		status emulator.Status
		want   []emulator.Command
	}{
		{emulator.Running, []emulator.Command{emulator.CommandPause}},
		{emulator.Paused, []emulator.Command{emulator.CommandResume}},
		{emulator.Errored, nil},
	} {
		f := &fakeEmulator{status: tt.status}
		TogglePause(f)
		if len(f.sent) != len(tt.want) || (len(tt.want) > 0 && f.sent[0] != tt.want[0]) {
			t.Errorf("%s: expected %v, got %v", tt.status, tt.want, f.sent)
		}
	}
}
