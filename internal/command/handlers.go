package command

import (
	"fmt"
	"strconv"

	"github.com/Syphdias/zcurses/internal/curses"
)

// targetWindow resolves a verb's window argument.
func targetWindow(reg *curses.Registry, name string) (*curses.Window, error) {
	w, err := reg.Validate(name, curses.MustExist)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}
	return w, nil
}

func intArg(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %s", what, s)
	}
	return n, nil
}

func cmdInit(reg *curses.Registry, _ Binder, _ []string) error {
	return reg.InitSession()
}

func cmdEnd(reg *curses.Registry, _ Binder, _ []string) error {
	return reg.EndSession()
}

func cmdAddWin(reg *curses.Registry, _ Binder, args []string) error {
	lines, err := intArg("lines", args[1])
	if err != nil {
		return err
	}
	cols, err := intArg("columns", args[2])
	if err != nil {
		return err
	}
	y, err := intArg("y origin", args[3])
	if err != nil {
		return err
	}
	x, err := intArg("x origin", args[4])
	if err != nil {
		return err
	}

	if err := reg.Create(args[0], lines, cols, y, x); err != nil {
		if err == curses.ErrInvalidName || err == curses.ErrAlreadyDefined {
			return fmt.Errorf("%w: %s", err, args[0])
		}
		return err
	}
	return nil
}

func cmdDelWin(reg *curses.Registry, _ Binder, args []string) error {
	if err := reg.Destroy(args[0]); err != nil {
		switch err {
		case curses.ErrInvalidName, curses.ErrUndefined, curses.ErrPermanent:
			return fmt.Errorf("%w: %s", err, args[0])
		}
		return err
	}
	return nil
}

func cmdRefresh(reg *curses.Registry, _ Binder, args []string) error {
	if len(args) == 0 {
		return reg.Device().Refresh()
	}
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}
	return w.Handle().Refresh()
}

func cmdMove(reg *curses.Registry, _ Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}
	y, err := intArg("y", args[1])
	if err != nil {
		return err
	}
	x, err := intArg("x", args[2])
	if err != nil {
		return err
	}
	return w.Handle().Move(y, x)
}

func cmdClear(reg *curses.Registry, _ Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return w.Handle().Erase()
	}
	switch args[1] {
	case "redraw":
		return w.Handle().Clear()
	case "eol":
		return w.Handle().ClearToEOL()
	case "bot":
		return w.Handle().ClearToBottom()
	default:
		return fmt.Errorf("`clear' expects `redraw', `eol' or `bot'")
	}
}

func cmdPosition(reg *curses.Registry, b Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}

	cy, cx := w.Handle().Cursor()
	oy, ox := w.Handle().Origin()
	lines, cols := w.Handle().Size()

	vals := []int{cy, cx, oy, ox, lines, cols}
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = strconv.Itoa(v)
	}
	return b.BindArray(args[1], strs)
}

func cmdChar(reg *curses.Registry, _ Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}
	if args[1] == "" {
		return fmt.Errorf("character argument is empty")
	}
	// Only the first character of the argument is drawn.
	for _, r := range args[1] {
		return w.Handle().AddRune(r)
	}
	return nil
}

func cmdString(reg *curses.Registry, _ Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}
	return w.Handle().AddString(args[1])
}

func cmdBorder(reg *curses.Registry, _ Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}
	return w.Handle().Border()
}

func cmdAttr(reg *curses.Registry, _ Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}
	return reg.ApplyStyleTokens(w, args[1:])
}

func cmdScroll(reg *curses.Registry, _ Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}
	return reg.SetScroll(w, args[1])
}

// cmdInput reads one key event. The decoded text goes to the variable
// named by the second argument (REPLY by default); the symbolic key name
// goes to the third variable only when the caller supplied both names.
func cmdInput(reg *curses.Registry, b Binder, args []string) error {
	w, err := targetWindow(reg, args[0])
	if err != nil {
		return err
	}

	wantName := len(args) >= 3

	dk, err := curses.ReadKey(w, wantName)
	if err != nil {
		return err
	}

	textVar := "REPLY"
	if len(args) >= 2 {
		textVar = args[1]
	}
	if err := b.BindString(textVar, dk.Text); err != nil {
		return err
	}
	if wantName {
		if err := b.BindString(args[2], dk.Name); err != nil {
			return err
		}
	}
	return nil
}
