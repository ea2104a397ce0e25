package term

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Errors returned by the tcell-backed device.
var (
	ErrNotInitialized = errors.New("term: device not initialized")
	ErrRootWindow     = errors.New("term: root window cannot be closed")
	ErrClosedWindow   = errors.New("term: window handle is closed")
	ErrOffscreen      = errors.New("term: position outside window")
	ErrNoScroll       = errors.New("term: scrolling not enabled")
)

// pairSlots is the number of color-pair slots the device reports. tcell
// composes styles directly, so the slot budget is fixed rather than taken
// from terminfo.
const pairSlots = 256

// Screen implements Device on top of a tcell screen. Windows are
// rectangles over the shared cell grid, each with its own cursor and
// active style.
type Screen struct {
	mu        sync.Mutex
	screen    tcell.Screen
	root      *screenWindow
	pairs     map[int][2]Color
	raw       bool
	suspended bool
	inited    bool
}

// NewScreen creates a device over the calling process's terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: s, pairs: make(map[int][2]Color)}, nil
}

func (d *Screen) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inited {
		return nil
	}
	if err := d.screen.Init(); err != nil {
		return err
	}
	cols, lines := d.screen.Size()
	d.root = &screenWindow{dev: d, lines: lines, cols: cols, isRoot: true}
	d.inited = true
	return nil
}

func (d *Screen) Fini() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inited && !d.suspended {
		d.screen.Fini()
	}
	d.inited = false
	d.raw = false
}

func (d *Screen) Root() Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.root
}

func (d *Screen) NewWindow(lines, cols, y, x int) (Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited {
		return nil, ErrNotInitialized
	}
	scrCols, scrLines := d.screen.Size()
	if lines <= 0 || cols <= 0 || y < 0 || x < 0 ||
		y+lines > scrLines || x+cols > scrCols {
		return nil, fmt.Errorf("term: window %dx%d at %d,%d does not fit a %dx%d screen",
			lines, cols, y, x, scrLines, scrCols)
	}
	return &screenWindow{dev: d, y0: y, x0: x, lines: lines, cols: cols}, nil
}

func (d *Screen) HasColors() bool {
	return d.screen.Colors() > 0
}

func (d *Screen) Colors() int {
	return d.screen.Colors()
}

func (d *Screen) ColorPairs() int {
	return pairSlots
}

func (d *Screen) DefinePair(id int, fg, bg Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id <= 0 || id >= pairSlots {
		return fmt.Errorf("term: pair %d out of range", id)
	}
	d.pairs[id] = [2]Color{fg, bg}
	return nil
}

func (d *Screen) Refresh() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited {
		return ErrNotInitialized
	}
	d.screen.Sync()
	return nil
}

func (d *Screen) CaptureMode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Mode{raw: d.raw && !d.suspended}
}

// RestoreMode resumes or suspends the screen to match the captured mode.
// tcell owns the actual termios state, so mode restoration maps onto its
// suspend/resume pair.
func (d *Screen) RestoreMode(m Mode) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited {
		return ErrNotInitialized
	}
	if m.raw {
		if d.suspended {
			if err := d.screen.Resume(); err != nil {
				return err
			}
			d.suspended = false
		}
		return nil
	}
	if !d.suspended {
		if err := d.screen.Suspend(); err != nil {
			return err
		}
		d.suspended = true
	}
	return nil
}

func (d *Screen) RawInput() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited {
		return ErrNotInitialized
	}
	// tcell is already unbuffered and non-echoing once initialized.
	d.raw = true
	return nil
}

// pairStyle returns the style for a defined pair id, or the default style
// for pair 0.
func (d *Screen) pairStyle(id int) (tcell.Style, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id == 0 {
		return tcell.StyleDefault, true
	}
	p, ok := d.pairs[id]
	if !ok {
		return tcell.StyleDefault, false
	}
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(int(p[0]))).
		Background(tcell.PaletteColor(int(p[1]))), true
}

// screenWindow is a rectangular view onto the device's cell grid.
type screenWindow struct {
	dev    *Screen
	y0, x0 int
	lines  int
	cols   int
	cy, cx int

	attrs  AttrMask
	pairID int

	scroll bool
	keypad bool
	isRoot bool
	closed bool
}

func (w *screenWindow) style() tcell.Style {
	st, _ := w.dev.pairStyle(w.pairID)
	if w.attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	if w.attrs&AttrDim != 0 {
		st = st.Dim(true)
	}
	if w.attrs&AttrBlink != 0 {
		st = st.Blink(true)
	}
	if w.attrs&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	// Standout has no direct tcell equivalent; reverse video is the
	// conventional rendering.
	if w.attrs&(AttrReverse|AttrStandout) != 0 {
		st = st.Reverse(true)
	}
	return st
}

func (w *screenWindow) Move(y, x int) error {
	if w.closed {
		return ErrClosedWindow
	}
	if y < 0 || y >= w.lines || x < 0 || x >= w.cols {
		return ErrOffscreen
	}
	w.cy, w.cx = y, x
	return nil
}

func (w *screenWindow) AddRune(r rune) error {
	if w.closed {
		return ErrClosedWindow
	}
	switch r {
	case '\n':
		w.cx = 0
		return w.advanceLine()
	case '\t':
		next := (w.cx/8 + 1) * 8
		for w.cx < next && w.cx < w.cols {
			w.put(' ')
			w.cx++
		}
		return w.wrap()
	default:
		w.put(r)
		w.cx++
		return w.wrap()
	}
}

// put writes a rune at the current cursor without moving it.
func (w *screenWindow) put(r rune) {
	w.dev.screen.SetContent(w.x0+w.cx, w.y0+w.cy, r, nil, w.style())
}

// wrap advances to the next line when the cursor has run off the right
// edge.
func (w *screenWindow) wrap() error {
	if w.cx < w.cols {
		return nil
	}
	w.cx = 0
	return w.advanceLine()
}

// advanceLine moves the cursor one line down, scrolling if the window
// allows it. Without scrolling the cursor sticks to the bottom line and
// the overflow is reported.
func (w *screenWindow) advanceLine() error {
	if w.cy+1 < w.lines {
		w.cy++
		return nil
	}
	if !w.scroll {
		w.cx = w.cols - 1
		return ErrOffscreen
	}
	return w.scrollBy(1)
}

func (w *screenWindow) AddString(s string) error {
	for _, r := range s {
		if err := w.AddRune(r); err != nil {
			return err
		}
	}
	return nil
}

func (w *screenWindow) blank(fromY, fromX int) {
	st := tcell.StyleDefault
	for y := fromY; y < w.lines; y++ {
		x := 0
		if y == fromY {
			x = fromX
		}
		for ; x < w.cols; x++ {
			w.dev.screen.SetContent(w.x0+x, w.y0+y, ' ', nil, st)
		}
	}
}

func (w *screenWindow) Erase() error {
	if w.closed {
		return ErrClosedWindow
	}
	w.blank(0, 0)
	return nil
}

func (w *screenWindow) Clear() error {
	if err := w.Erase(); err != nil {
		return err
	}
	// Force a repaint from scratch on the next refresh.
	w.dev.screen.Sync()
	return nil
}

func (w *screenWindow) ClearToEOL() error {
	if w.closed {
		return ErrClosedWindow
	}
	st := tcell.StyleDefault
	for x := w.cx; x < w.cols; x++ {
		w.dev.screen.SetContent(w.x0+x, w.y0+w.cy, ' ', nil, st)
	}
	return nil
}

func (w *screenWindow) ClearToBottom() error {
	if w.closed {
		return ErrClosedWindow
	}
	w.blank(w.cy, w.cx)
	return nil
}

func (w *screenWindow) Border() error {
	if w.closed {
		return ErrClosedWindow
	}
	if w.lines < 2 || w.cols < 2 {
		return ErrOffscreen
	}
	st := w.style()
	s := w.dev.screen
	for x := 1; x < w.cols-1; x++ {
		s.SetContent(w.x0+x, w.y0, tcell.RuneHLine, nil, st)
		s.SetContent(w.x0+x, w.y0+w.lines-1, tcell.RuneHLine, nil, st)
	}
	for y := 1; y < w.lines-1; y++ {
		s.SetContent(w.x0, w.y0+y, tcell.RuneVLine, nil, st)
		s.SetContent(w.x0+w.cols-1, w.y0+y, tcell.RuneVLine, nil, st)
	}
	s.SetContent(w.x0, w.y0, tcell.RuneULCorner, nil, st)
	s.SetContent(w.x0+w.cols-1, w.y0, tcell.RuneURCorner, nil, st)
	s.SetContent(w.x0, w.y0+w.lines-1, tcell.RuneLLCorner, nil, st)
	s.SetContent(w.x0+w.cols-1, w.y0+w.lines-1, tcell.RuneLRCorner, nil, st)
	return nil
}

func (w *screenWindow) Refresh() error {
	if w.closed {
		return ErrClosedWindow
	}
	w.dev.screen.Show()
	return nil
}

func (w *screenWindow) SetAttr(mask AttrMask, on bool) error {
	if w.closed {
		return ErrClosedWindow
	}
	if on {
		w.attrs |= mask
	} else {
		w.attrs &^= mask
	}
	return nil
}

func (w *screenWindow) SetPair(id int) error {
	if w.closed {
		return ErrClosedWindow
	}
	if _, ok := w.dev.pairStyle(id); !ok {
		return fmt.Errorf("term: pair %d not defined", id)
	}
	w.pairID = id
	return nil
}

func (w *screenWindow) SetScroll(on bool) error {
	if w.closed {
		return ErrClosedWindow
	}
	w.scroll = on
	return nil
}

func (w *screenWindow) ScrollBy(n int) error {
	if w.closed {
		return ErrClosedWindow
	}
	if !w.scroll {
		return ErrNoScroll
	}
	return w.scrollBy(n)
}

func (w *screenWindow) scrollBy(n int) error {
	if n == 0 {
		return nil
	}
	s := w.dev.screen
	if n > 0 {
		for y := 0; y < w.lines-n; y++ {
			w.copyRow(y+n, y)
		}
		for y := max(w.lines-n, 0); y < w.lines; y++ {
			for x := 0; x < w.cols; x++ {
				s.SetContent(w.x0+x, w.y0+y, ' ', nil, tcell.StyleDefault)
			}
		}
		return nil
	}
	n = -n
	for y := w.lines - 1; y >= n; y-- {
		w.copyRow(y-n, y)
	}
	for y := 0; y < n && y < w.lines; y++ {
		for x := 0; x < w.cols; x++ {
			s.SetContent(w.x0+x, w.y0+y, ' ', nil, tcell.StyleDefault)
		}
	}
	return nil
}

func (w *screenWindow) copyRow(src, dst int) {
	s := w.dev.screen
	for x := 0; x < w.cols; x++ {
		r, _, st, _ := s.GetContent(w.x0+x, w.y0+src)
		s.SetContent(w.x0+x, w.y0+dst, r, nil, st)
	}
}

func (w *screenWindow) SetKeypad(on bool) {
	w.keypad = on
}

func (w *screenWindow) ReadKey() (KeyEvent, error) {
	if w.closed {
		return KeyEvent{}, ErrClosedWindow
	}
	for {
		ev := w.dev.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			return w.decodeKey(e), nil
		case *tcell.EventResize:
			if w.isRoot {
				cols, lines := w.dev.screen.Size()
				w.cols, w.lines = cols, lines
			}
		case nil:
			return KeyEvent{}, ErrNotInitialized
		}
	}
}

// decodeKey translates a tcell key event into the device's event shape.
// tcell always translates escape sequences, so special keys arrive as
// codes even when keypad translation is off; keys with a single-byte
// equivalent fall back to that byte in non-keypad mode.
func (w *screenWindow) decodeKey(e *tcell.EventKey) KeyEvent {
	if e.Key() == tcell.KeyRune {
		return KeyEvent{Rune: e.Rune()}
	}
	if !w.keypad {
		if b, ok := rawByte(e.Key()); ok {
			return KeyEvent{Rune: b}
		}
	}
	if code, ok := specialCode(e.Key()); ok {
		return KeyEvent{Code: code, IsCode: true}
	}
	if b, ok := rawByte(e.Key()); ok {
		return KeyEvent{Rune: b}
	}
	return KeyEvent{Code: int(e.Key()), IsCode: true}
}

// rawByte maps keys with a single-byte representation to that byte.
func rawByte(k tcell.Key) (rune, bool) {
	switch k {
	case tcell.KeyBackspace2:
		return 0x7f, true
	case tcell.KeyEsc:
		return 0x1b, true
	}
	if k < 0x20 {
		// Control characters (includes Tab and Enter/CR).
		return rune(k), true
	}
	return 0, false
}

// specialCode maps tcell special keys to the device key-code space.
func specialCode(k tcell.Key) (int, bool) {
	if k >= tcell.KeyF1 && k <= tcell.KeyF64 {
		return KeyF0 + 1 + int(k-tcell.KeyF1), true
	}
	switch k {
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyHome:
		return KeyHome, true
	case tcell.KeyEnd:
		return KeyEnd, true
	case tcell.KeyPgUp:
		return KeyPPage, true
	case tcell.KeyPgDn:
		return KeyNPage, true
	case tcell.KeyInsert:
		return KeyIC, true
	case tcell.KeyDelete:
		return KeyDC, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, true
	case tcell.KeyEnter:
		return KeyEnter, true
	case tcell.KeyClear:
		return KeyClear, true
	case tcell.KeyCancel:
		return KeyCancel, true
	case tcell.KeyPrint:
		return KeyPrint, true
	case tcell.KeyHelp:
		return KeyHelp, true
	case tcell.KeyExit:
		return KeyExit, true
	case tcell.KeyBacktab:
		return KeyBTab, true
	}
	return 0, false
}

func (w *screenWindow) Cursor() (int, int) {
	return w.cy, w.cx
}

func (w *screenWindow) Origin() (int, int) {
	return w.y0, w.x0
}

func (w *screenWindow) Size() (int, int) {
	return w.lines, w.cols
}

func (w *screenWindow) Close() error {
	if w.isRoot {
		return ErrRootWindow
	}
	if w.closed {
		return ErrClosedWindow
	}
	w.closed = true
	return nil
}
