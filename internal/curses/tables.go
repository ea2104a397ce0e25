package curses

import "github.com/Syphdias/zcurses/internal/term"

// The attribute and color tables are fixed: listing order is the order the
// names are published through reflection, and lookups are exact,
// case-sensitive string matches.

type attrEntry struct {
	name string
	mask term.AttrMask
}

var attrTable = []attrEntry{
	{"blink", term.AttrBlink},
	{"bold", term.AttrBold},
	{"dim", term.AttrDim},
	{"reverse", term.AttrReverse},
	{"standout", term.AttrStandout},
	{"underline", term.AttrUnderline},
}

type colorEntry struct {
	name  string
	color term.Color
}

var colorTable = []colorEntry{
	{"black", term.ColorBlack},
	{"red", term.ColorRed},
	{"green", term.ColorGreen},
	{"yellow", term.ColorYellow},
	{"blue", term.ColorBlue},
	{"magenta", term.ColorMagenta},
	{"cyan", term.ColorCyan},
	{"white", term.ColorWhite},
}

// AttrNames returns the attribute names in table order.
func AttrNames() []string {
	names := make([]string, len(attrTable))
	for i, e := range attrTable {
		names[i] = e.name
	}
	return names
}

// ColorNames returns the color names in table order.
func ColorNames() []string {
	names := make([]string, len(colorTable))
	for i, e := range colorTable {
		names[i] = e.name
	}
	return names
}

// attrMask resolves an attribute name against the fixed table.
func attrMask(name string) (term.AttrMask, bool) {
	for _, e := range attrTable {
		if e.name == name {
			return e.mask, true
		}
	}
	return 0, false
}

// colorNumber resolves a color name against the fixed table. The second
// return is false for unknown names.
func colorNumber(name string) (term.Color, bool) {
	for _, e := range colorTable {
		if e.name == name {
			return e.color, true
		}
	}
	return 0, false
}

// keypadNames maps special-key codes to their symbolic names.
var keypadNames = map[int]string{
	term.KeyDown:      "DOWN",
	term.KeyUp:        "UP",
	term.KeyLeft:      "LEFT",
	term.KeyRight:     "RIGHT",
	term.KeyHome:      "HOME",
	term.KeyBackspace: "BACKSPACE",
	term.KeyDL:        "DL",
	term.KeyIL:        "IL",
	term.KeyDC:        "DC",
	term.KeyIC:        "IC",
	term.KeyEIC:       "EIC",
	term.KeyClear:     "CLEAR",
	term.KeyEOS:       "EOS",
	term.KeyEOL:       "EOL",
	term.KeySF:        "SF",
	term.KeySR:        "SR",
	term.KeyNPage:     "NPAGE",
	term.KeyPPage:     "PPAGE",
	term.KeySTab:      "STAB",
	term.KeyCTab:      "CTAB",
	term.KeyCATab:     "CATAB",
	term.KeyEnter:     "ENTER",
	term.KeyPrint:     "PRINT",
	term.KeyLL:        "LL",
	term.KeyA1:        "A1",
	term.KeyA3:        "A3",
	term.KeyB2:        "B2",
	term.KeyC1:        "C1",
	term.KeyC3:        "C3",
	term.KeyBTab:      "BTAB",
	term.KeyBeg:       "BEG",
	term.KeyCancel:    "CANCEL",
	term.KeyClose:     "CLOSE",
	term.KeyCommand:   "COMMAND",
	term.KeyCopy:      "COPY",
	term.KeyCreate:    "CREATE",
	term.KeyEnd:       "END",
	term.KeyExit:      "EXIT",
	term.KeyFind:      "FIND",
	term.KeyHelp:      "HELP",
	term.KeyMark:      "MARK",
	term.KeyMessage:   "MESSAGE",
	term.KeyMove:      "MOVE",
	term.KeyNext:      "NEXT",
	term.KeyOpen:      "OPEN",
	term.KeyOptions:   "OPTIONS",
	term.KeyPrevious:  "PREVIOUS",
	term.KeyRedo:      "REDO",
	term.KeyReference: "REFERENCE",
	term.KeyRefresh:   "REFRESH",
	term.KeyReplace:   "REPLACE",
	term.KeyRestart:   "RESTART",
	term.KeyResume:    "RESUME",
	term.KeySave:      "SAVE",
	term.KeySelect:    "SELECT",
	term.KeySuspend:   "SUSPEND",
	term.KeyUndo:      "UNDO",
}
