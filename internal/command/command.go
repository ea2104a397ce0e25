// Package command routes windowing verbs to their handlers. The table is
// intentionally thin: arity and session gating live here, everything with
// behavior lives in the curses core.
package command

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Syphdias/zcurses/internal/curses"
)

// Binder publishes command output into the host environment's variables.
type Binder interface {
	// BindString publishes a scalar under the given variable name.
	BindString(name, value string) error

	// BindArray publishes a list under the given variable name.
	BindArray(name string, values []string) error
}

// Result is the outcome of one dispatched verb: a boolean success plus a
// diagnostic for the failure case.
type Result struct {
	OK      bool
	Message string
}

// Success returns a successful result.
func Success() Result {
	return Result{OK: true}
}

// Failf returns a failed result with a formatted diagnostic.
func Failf(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// HandlerFunc executes one verb against the registry.
type HandlerFunc func(reg *curses.Registry, b Binder, args []string) error

// Spec describes one verb: its argument-count bounds and handler.
// MaxArgs of -1 means unbounded.
type Spec struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      HandlerFunc
}

// Table returns the verb table in its canonical order.
func Table() []Spec {
	return []Spec{
		{"init", 0, 0, cmdInit},
		{"addwin", 5, 5, cmdAddWin},
		{"delwin", 1, 1, cmdDelWin},
		{"refresh", 0, 1, cmdRefresh},
		{"move", 3, 3, cmdMove},
		{"clear", 1, 2, cmdClear},
		{"position", 2, 2, cmdPosition},
		{"char", 2, 2, cmdChar},
		{"string", 2, 2, cmdString},
		{"border", 1, 1, cmdBorder},
		{"end", 0, 0, cmdEnd},
		{"attr", 2, -1, cmdAttr},
		{"scroll", 2, 2, cmdScroll},
		{"input", 1, 3, cmdInput},
	}
}

// Dispatcher resolves verbs against the table and runs their handlers.
type Dispatcher struct {
	reg    *curses.Registry
	binder Binder
	specs  map[string]Spec
	log    zerolog.Logger
}

// NewDispatcher builds a dispatcher over a registry and output binder.
func NewDispatcher(reg *curses.Registry, b Binder, log zerolog.Logger) *Dispatcher {
	specs := make(map[string]Spec)
	for _, s := range Table() {
		specs[s.Name] = s
	}
	return &Dispatcher{reg: reg, binder: b, specs: specs, log: log}
}

// Dispatch runs one verb to completion and reports the outcome. Every
// verb except init and end requires a started session.
func (d *Dispatcher) Dispatch(verb string, args []string) Result {
	spec, ok := d.specs[verb]
	if !ok {
		return Failf("unknown subcommand: %s", verb)
	}

	if len(args) < spec.MinArgs {
		return Failf("too few arguments for subcommand: %s", verb)
	}
	if spec.MaxArgs >= 0 && len(args) > spec.MaxArgs {
		return Failf("too many arguments for subcommand: %s", verb)
	}

	if verb != "init" && verb != "end" && !d.reg.Started() {
		return Failf("command `%s' can't be used before `init': %v", verb, curses.ErrNoSession)
	}

	if err := spec.Fn(d.reg, d.binder, args); err != nil {
		d.log.Debug().Str("verb", verb).Strs("args", args).Err(err).Msg("command failed")
		return Failf("%s: %v", verb, err)
	}

	d.log.Trace().Str("verb", verb).Strs("args", args).Msg("command ok")
	return Success()
}
