// Package host embeds the Lua interpreter that drives the windowing
// engine. Scripts see a single entry function, zcurses(verb, ...), plus
// read-only reflection globals describing colors, attributes, windows and
// terminal capacities.
package host

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/Syphdias/zcurses/internal/command"
	"github.com/Syphdias/zcurses/internal/curses"
	"github.com/Syphdias/zcurses/internal/term"
)

// Host owns one Lua state, one window registry and one terminal device.
// There is exactly one Host per process lifetime.
type Host struct {
	L    *lua.LState
	reg  *curses.Registry
	disp *command.Dispatcher
	log  zerolog.Logger
	id   string
}

// New wires a Lua state to a fresh registry over the given device.
func New(dev term.Device, log zerolog.Logger) *Host {
	id := uuid.NewString()
	log = log.With().Str("session", id).Logger()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	h := &Host{
		L:   L,
		reg: curses.NewRegistry(dev),
		log: log,
		id:  id,
	}
	h.disp = command.NewDispatcher(h.reg, h, log)

	L.SetGlobal("zcurses", L.NewFunction(h.call))
	h.publishReflection()

	return h
}

// openSafeLibraries opens only the Lua standard libraries a display
// script needs. io, os, debug and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// Registry returns the window registry, for callers that need teardown.
func (h *Host) Registry() *curses.Registry { return h.reg }

// SessionID returns the host's unique session identifier.
func (h *Host) SessionID() string { return h.id }

// Run executes a Lua script file.
func (h *Host) Run(path string) error {
	h.log.Info().Str("script", path).Msg("running script")
	return h.L.DoFile(path)
}

// RunString executes Lua source directly.
func (h *Host) RunString(src string) error {
	return h.L.DoString(src)
}

// Close tears down the registry, the display and the Lua state.
func (h *Host) Close() {
	h.reg.Cleanup()
	h.L.Close()
}

// call implements the zcurses(verb, ...) Lua function. It returns true on
// success, or false plus a diagnostic string; command failures never
// raise Lua errors.
func (h *Host) call(L *lua.LState) int {
	top := L.GetTop()
	if top < 1 {
		L.ArgError(1, "subcommand expected")
		return 0
	}

	verb := L.CheckString(1)
	args := make([]string, 0, top-1)
	for i := 2; i <= top; i++ {
		args = append(args, argString(L.Get(i)))
	}

	res := h.disp.Dispatch(verb, args)

	// The window list may have changed; reflection globals are
	// republished after every command.
	h.publishReflection()

	if res.OK {
		L.Push(lua.LTrue)
		return 1
	}
	L.Push(lua.LFalse)
	L.Push(lua.LString(res.Message))
	return 2
}

// argString coerces a Lua argument to the string form the command table
// expects. Numbers format the way Lua prints them.
func argString(lv lua.LValue) string {
	switch v := lv.(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return v.String()
	case *lua.LNilType:
		return ""
	default:
		return lv.String()
	}
}

// BindString publishes a scalar command output as a Lua global.
func (h *Host) BindString(name, value string) error {
	if name == "" {
		return fmt.Errorf("empty variable name")
	}
	h.L.SetGlobal(name, lua.LString(value))
	return nil
}

// BindArray publishes a list command output as a Lua sequence table.
func (h *Host) BindArray(name string, values []string) error {
	if name == "" {
		return fmt.Errorf("empty variable name")
	}
	tbl := h.L.NewTable()
	for i, v := range values {
		tbl.RawSetInt(i+1, lua.LString(v))
	}
	h.L.SetGlobal(name, tbl)
	return nil
}
