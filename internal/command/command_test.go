package command_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Syphdias/zcurses/internal/command"
	"github.com/Syphdias/zcurses/internal/curses"
	"github.com/Syphdias/zcurses/internal/term"
)

// recordBinder captures variable bindings for assertions.
type recordBinder struct {
	strings map[string]string
	arrays  map[string][]string
}

func newRecordBinder() *recordBinder {
	return &recordBinder{
		strings: make(map[string]string),
		arrays:  make(map[string][]string),
	}
}

func (b *recordBinder) BindString(name, value string) error {
	b.strings[name] = value
	return nil
}

func (b *recordBinder) BindArray(name string, values []string) error {
	b.arrays[name] = values
	return nil
}

func setup(t *testing.T) (*term.Sim, *curses.Registry, *recordBinder, *command.Dispatcher) {
	t.Helper()
	dev := term.NewSim(24, 80, 64)
	reg := curses.NewRegistry(dev)
	b := newRecordBinder()
	d := command.NewDispatcher(reg, b, zerolog.Nop())
	return dev, reg, b, d
}

func mustDispatch(t *testing.T, d *command.Dispatcher, verb string, args ...string) {
	t.Helper()
	if res := d.Dispatch(verb, args); !res.OK {
		t.Fatalf("%s %v failed: %s", verb, args, res.Message)
	}
}

func TestDispatchUnknownVerb(t *testing.T) {
	_, _, _, d := setup(t)

	res := d.Dispatch("frobnicate", nil)
	if res.OK || !strings.Contains(res.Message, "unknown subcommand") {
		t.Fatalf("got %+v", res)
	}
}

func TestDispatchArity(t *testing.T) {
	tests := []struct {
		name string
		verb string
		args []string
		want string
	}{
		{"addwin too few", "addwin", []string{"w", "10"}, "too few arguments"},
		{"addwin too many", "addwin", []string{"w", "1", "2", "3", "4", "5"}, "too many arguments"},
		{"delwin too many", "delwin", []string{"a", "b"}, "too many arguments"},
		{"input too many", "input", []string{"w", "a", "b", "c"}, "too many arguments"},
		{"move too few", "move", []string{"w", "1"}, "too few arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, d := setup(t)
			mustDispatch(t, d, "init")

			res := d.Dispatch(tt.verb, tt.args)
			if res.OK || !strings.Contains(res.Message, tt.want) {
				t.Fatalf("got %+v, want %q", res, tt.want)
			}
		})
	}
}

func TestDispatchSessionGating(t *testing.T) {
	_, _, _, d := setup(t)

	res := d.Dispatch("addwin", []string{"w", "10", "40", "0", "0"})
	if res.OK || !strings.Contains(res.Message, "can't be used before `init'") {
		t.Fatalf("got %+v", res)
	}

	// end is exempt from the gate.
	if res := d.Dispatch("end", nil); !res.OK {
		t.Fatalf("end before init: %+v", res)
	}
}

func TestDispatchAttrBatchReportsFailure(t *testing.T) {
	_, _, _, d := setup(t)
	mustDispatch(t, d, "init")
	mustDispatch(t, d, "addwin", "w", "10", "40", "0", "0")

	// The whole batch is attempted; the unknown token fails the verb.
	res := d.Dispatch("attr", []string{"w", "bold", "bogus"})
	if res.OK || !strings.Contains(res.Message, "attribute `bogus' not known") {
		t.Fatalf("got %+v", res)
	}

	mustDispatch(t, d, "attr", "w", "bold", "+reverse")
}

func TestDispatchAddDelScenario(t *testing.T) {
	_, _, _, d := setup(t)
	mustDispatch(t, d, "init")

	mustDispatch(t, d, "addwin", "w", "10", "40", "0", "0")

	res := d.Dispatch("addwin", []string{"w", "5", "5", "0", "0"})
	if res.OK || !strings.Contains(res.Message, "window already defined") {
		t.Fatalf("duplicate addwin: %+v", res)
	}

	mustDispatch(t, d, "delwin", "w")

	res = d.Dispatch("delwin", []string{"w"})
	if res.OK || !strings.Contains(res.Message, "window undefined") {
		t.Fatalf("second delwin: %+v", res)
	}
}

func TestDispatchDrawAndPosition(t *testing.T) {
	_, reg, b, d := setup(t)
	mustDispatch(t, d, "init")
	mustDispatch(t, d, "addwin", "w", "10", "40", "2", "4")
	mustDispatch(t, d, "move", "w", "1", "3")
	mustDispatch(t, d, "string", "w", "hello")
	mustDispatch(t, d, "char", "w", "!")
	mustDispatch(t, d, "border", "w")
	mustDispatch(t, d, "refresh", "w")

	sim := reg.Lookup("w").Handle().(*term.SimWindow)
	if got := sim.Line(1); !strings.Contains(got, "hello!") {
		t.Errorf("line 1 = %q, want drawn text", got)
	}
	if sim.Refreshes() != 1 {
		t.Errorf("refreshes = %d, want 1", sim.Refreshes())
	}

	mustDispatch(t, d, "position", "w", "pos")
	want := []string{"1", "9", "2", "4", "10", "40"}
	got := b.arrays["pos"]
	if len(got) != len(want) {
		t.Fatalf("position = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position = %v, want %v", got, want)
		}
	}
}

func TestDispatchRefreshWholeDisplay(t *testing.T) {
	dev, _, _, d := setup(t)
	mustDispatch(t, d, "init")

	mustDispatch(t, d, "refresh")
	if dev.Refreshes() != 1 {
		t.Errorf("whole-display refreshes = %d, want 1", dev.Refreshes())
	}
}

func TestDispatchClearVariants(t *testing.T) {
	_, _, _, d := setup(t)
	mustDispatch(t, d, "init")
	mustDispatch(t, d, "addwin", "w", "10", "40", "0", "0")

	for _, mode := range []string{"redraw", "eol", "bot"} {
		mustDispatch(t, d, "clear", "w", mode)
	}
	mustDispatch(t, d, "clear", "w")

	res := d.Dispatch("clear", []string{"w", "sideways"})
	if res.OK || !strings.Contains(res.Message, "`clear' expects") {
		t.Fatalf("got %+v", res)
	}
}

func TestDispatchInputDefaultsToReply(t *testing.T) {
	_, reg, b, d := setup(t)
	mustDispatch(t, d, "init")

	root := reg.Lookup(curses.RootName).Handle().(*term.SimWindow)
	root.QueueRune('x')

	mustDispatch(t, d, "input", curses.RootName)
	if b.strings["REPLY"] != "x" {
		t.Errorf("REPLY = %q, want %q", b.strings["REPLY"], "x")
	}
	if root.Keypad() {
		t.Error("keypad must stay off without a keyname binding")
	}
}

func TestDispatchInputWithKeynameBinding(t *testing.T) {
	_, reg, b, d := setup(t)
	mustDispatch(t, d, "init")

	root := reg.Lookup(curses.RootName).Handle().(*term.SimWindow)
	root.QueueCode(term.F(10))

	mustDispatch(t, d, "input", curses.RootName, "ch", "key")
	if b.strings["ch"] != "" {
		t.Errorf("ch = %q, want empty for a special key", b.strings["ch"])
	}
	if b.strings["key"] != "F10" {
		t.Errorf("key = %q, want F10", b.strings["key"])
	}
}

func TestDispatchInputReadFailure(t *testing.T) {
	_, _, _, d := setup(t)
	mustDispatch(t, d, "init")

	res := d.Dispatch("input", []string{curses.RootName})
	if res.OK {
		t.Fatal("expected failure when the read fails")
	}
}

func TestDispatchBadInteger(t *testing.T) {
	_, _, _, d := setup(t)
	mustDispatch(t, d, "init")

	res := d.Dispatch("addwin", []string{"w", "ten", "40", "0", "0"})
	if res.OK || !strings.Contains(res.Message, "must be an integer") {
		t.Fatalf("got %+v", res)
	}
}

func TestDispatchScroll(t *testing.T) {
	_, reg, _, d := setup(t)
	mustDispatch(t, d, "init")
	mustDispatch(t, d, "addwin", "w", "10", "40", "0", "0")

	mustDispatch(t, d, "scroll", "w", "3")
	if reg.Lookup("w").ScrollEnabled() {
		t.Error("numeric scroll must not persist the flag")
	}

	mustDispatch(t, d, "scroll", "w", "on")
	mustDispatch(t, d, "scroll", "w", "3")
	if !reg.Lookup("w").ScrollEnabled() {
		t.Error("scroll on must persist across a numeric scroll")
	}
}
