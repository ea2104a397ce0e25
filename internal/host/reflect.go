package host

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/Syphdias/zcurses/internal/curses"
)

// Reflection globals. They are plain tables rather than guarded proxies;
// every zcurses() call republishes them, so script-side mutation never
// survives the next command.
const (
	globalColors     = "zcurses_colors"
	globalAttrs      = "zcurses_attrs"
	globalWindows    = "zcurses_windows"
	globalColorCount = "ZCURSES_COLORS"
	globalPairCount  = "ZCURSES_COLOR_PAIRS"
)

// publishReflection refreshes every reflection global from the registry
// and device.
func (h *Host) publishReflection() {
	h.setList(globalColors, curses.ColorNames())
	h.setList(globalAttrs, curses.AttrNames())
	h.setList(globalWindows, h.reg.Names())

	dev := h.reg.Device()
	h.L.SetGlobal(globalColorCount, lua.LNumber(dev.Colors()))
	h.L.SetGlobal(globalPairCount, lua.LNumber(dev.ColorPairs()))
}

func (h *Host) setList(name string, values []string) {
	tbl := h.L.NewTable()
	for i, v := range values {
		tbl.RawSetInt(i+1, lua.LString(v))
	}
	h.L.SetGlobal(name, tbl)
}
