package curses_test

import (
	"errors"
	"testing"

	"github.com/Syphdias/zcurses/internal/curses"
	"github.com/Syphdias/zcurses/internal/term"
)

func startedRegistry(t *testing.T, dev *term.Sim) *curses.Registry {
	t.Helper()
	reg := curses.NewRegistry(dev)
	if err := reg.InitSession(); err != nil {
		t.Fatalf("InitSession: %v", err)
	}
	return reg
}

func TestValidateEmptyName(t *testing.T) {
	reg := curses.NewRegistry(term.NewSim(24, 80, 64))

	for _, c := range []curses.Criteria{curses.Any, curses.MustExist, curses.MustNotExist} {
		if _, err := reg.Validate("", c); !errors.Is(err, curses.ErrInvalidName) {
			t.Errorf("criteria %v: got %v, want ErrInvalidName", c, err)
		}
	}
}

func TestValidateBestEffortLookup(t *testing.T) {
	reg := startedRegistry(t, term.NewSim(24, 80, 64))

	w, err := reg.Validate("nosuch", curses.Any)
	if err != nil {
		t.Fatalf("best-effort lookup should not error, got %v", err)
	}
	if w != nil {
		t.Fatal("expected nil window for unknown name")
	}
}

func TestCreateDuplicateFails(t *testing.T) {
	reg := startedRegistry(t, term.NewSim(24, 80, 64))

	if err := reg.Create("w", 10, 40, 0, 0); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := reg.Create("w", 5, 5, 0, 0)
	if !errors.Is(err, curses.ErrAlreadyDefined) {
		t.Fatalf("second create: got %v, want ErrAlreadyDefined", err)
	}
}

func TestCreateFailureRegistersNothing(t *testing.T) {
	dev := term.NewSim(24, 80, 64)
	reg := startedRegistry(t, dev)

	dev.FailNewWindow = true
	if err := reg.Create("w", 10, 40, 0, 0); err == nil {
		t.Fatal("expected create to fail")
	}

	if reg.Lookup("w") != nil {
		t.Error("failed create must not register a window")
	}

	// The name stays available.
	dev.FailNewWindow = false
	if err := reg.Create("w", 10, 40, 0, 0); err != nil {
		t.Errorf("create after failure: %v", err)
	}
}

func TestDestroyUndefined(t *testing.T) {
	reg := startedRegistry(t, term.NewSim(24, 80, 64))

	if err := reg.Destroy("nosuch"); !errors.Is(err, curses.ErrUndefined) {
		t.Fatalf("got %v, want ErrUndefined", err)
	}
}

func TestDestroyPermanentRefused(t *testing.T) {
	reg := startedRegistry(t, term.NewSim(24, 80, 64))

	if err := reg.Destroy(curses.RootName); !errors.Is(err, curses.ErrPermanent) {
		t.Fatalf("got %v, want ErrPermanent", err)
	}
	if reg.Lookup(curses.RootName) == nil {
		t.Error("root window must survive a destroy attempt")
	}
}

func TestDestroyReleaseFailureKeepsEntry(t *testing.T) {
	dev := term.NewSim(24, 80, 64)
	reg := startedRegistry(t, dev)

	if err := reg.Create("w", 10, 40, 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	dev.FailClose = true
	if err := reg.Destroy("w"); err == nil {
		t.Fatal("expected destroy to fail")
	}
	if reg.Lookup("w") == nil {
		t.Error("entry must be kept when handle release fails")
	}

	dev.FailClose = false
	if err := reg.Destroy("w"); err != nil {
		t.Errorf("destroy after release failure cleared: %v", err)
	}
}

func TestCreateDestroyScenario(t *testing.T) {
	reg := startedRegistry(t, term.NewSim(24, 80, 64))

	if err := reg.Create("w", 10, 40, 0, 0); err != nil {
		t.Fatalf("addwin: %v", err)
	}
	if err := reg.Create("w", 5, 5, 0, 0); !errors.Is(err, curses.ErrAlreadyDefined) {
		t.Fatalf("duplicate addwin: got %v, want ErrAlreadyDefined", err)
	}
	if err := reg.Destroy("w"); err != nil {
		t.Fatalf("delwin: %v", err)
	}
	if err := reg.Destroy("w"); !errors.Is(err, curses.ErrUndefined) {
		t.Fatalf("second delwin: got %v, want ErrUndefined", err)
	}
}

func TestNamesCreationOrder(t *testing.T) {
	reg := startedRegistry(t, term.NewSim(24, 80, 64))

	for _, name := range []string{"alpha", "beta", "gamma"} {
		if err := reg.Create(name, 5, 5, 0, 0); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := reg.Destroy("beta"); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	got := reg.Names()
	want := []string{curses.RootName, "alpha", "gamma"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestInitSessionIdempotent(t *testing.T) {
	dev := term.NewSim(24, 80, 64)
	reg := startedRegistry(t, dev)

	if !dev.RawMode() {
		t.Fatal("session start must switch to raw input")
	}

	// Re-entry restores the captured session mode.
	if err := reg.InitSession(); err != nil {
		t.Fatalf("second InitSession: %v", err)
	}
	if len(dev.ModeLog) == 0 {
		t.Fatal("expected a mode restore on re-entry")
	}
	if names := reg.Names(); len(names) != 1 || names[0] != curses.RootName {
		t.Fatalf("re-init must not add windows, got %v", names)
	}
}

func TestInitSessionBuildsCacheOnlyWithColor(t *testing.T) {
	colorReg := startedRegistry(t, term.NewSim(24, 80, 64))
	if colorReg.Cache() == nil {
		t.Error("color terminal must get a pair cache")
	}

	monoReg := startedRegistry(t, term.NewMonoSim(24, 80))
	if monoReg.Cache() != nil {
		t.Error("mono terminal must not get a pair cache")
	}
}

func TestEndSessionRestoresModeAndKeepsWindows(t *testing.T) {
	dev := term.NewSim(24, 80, 64)
	reg := startedRegistry(t, dev)

	if err := reg.Create("w", 10, 40, 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := reg.EndSession(); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	if dev.RawMode() {
		t.Error("pre-session mode must be restored")
	}
	if reg.Lookup("w") == nil {
		t.Error("window entries survive session end")
	}
	if !reg.Started() {
		t.Error("root window survives session end")
	}

	// Resuming restores the raw session mode.
	if err := reg.InitSession(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !dev.RawMode() {
		t.Error("resume must restore raw input mode")
	}
}

func TestEndSessionBeforeInitIsNoop(t *testing.T) {
	reg := curses.NewRegistry(term.NewSim(24, 80, 64))
	if err := reg.EndSession(); err != nil {
		t.Fatalf("EndSession without init: %v", err)
	}
}

func TestCleanupReleasesEverything(t *testing.T) {
	dev := term.NewSim(24, 80, 64)
	reg := startedRegistry(t, dev)

	if err := reg.Create("w", 10, 40, 0, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	w := reg.Lookup("w").Handle().(*term.SimWindow)

	reg.Cleanup()

	if !w.Closed() {
		t.Error("cleanup must release window handles")
	}
	if !dev.Finished() {
		t.Error("cleanup must finalize the device")
	}
	if reg.Started() {
		t.Error("registry must be empty after cleanup")
	}
}
