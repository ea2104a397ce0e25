package term

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned by a simulated read when the key queue is empty.
var ErrNoInput = errors.New("term: no input available")

// Sim is an in-memory Device for tests. It records cell writes and mode
// changes, serves scripted key events, and can be told to fail specific
// operations.
type Sim struct {
	lines, cols int

	root    *SimWindow
	windows []*SimWindow
	pairs   map[int][2]Color

	colors     int
	colorPairs int
	hasColors  bool

	raw       bool
	inited    bool
	finished  bool
	refreshes int

	// ModeLog records every RestoreMode call for assertions.
	ModeLog []Mode

	// FailNewWindow makes window allocation fail.
	FailNewWindow bool
	// FailDefinePair makes pair definition fail.
	FailDefinePair bool
	// FailClose makes handle release fail.
	FailClose bool
}

// NewSim creates a simulated device of the given screen size with color
// support and the given pair capacity.
func NewSim(lines, cols, colorPairs int) *Sim {
	return &Sim{
		lines:      lines,
		cols:       cols,
		pairs:      make(map[int][2]Color),
		colors:     8,
		colorPairs: colorPairs,
		hasColors:  true,
	}
}

// NewMonoSim creates a simulated device without color support.
func NewMonoSim(lines, cols int) *Sim {
	s := NewSim(lines, cols, 0)
	s.hasColors = false
	s.colors = 0
	return s
}

func (d *Sim) Init() error {
	if d.inited {
		return nil
	}
	d.root = d.newWindow(d.lines, d.cols, 0, 0, true)
	d.inited = true
	d.finished = false
	return nil
}

func (d *Sim) Fini() {
	d.inited = false
	d.finished = true
}

// Finished reports whether Fini has been called.
func (d *Sim) Finished() bool {
	return d.finished
}

func (d *Sim) Root() Handle {
	return d.root
}

func (d *Sim) newWindow(lines, cols, y, x int, root bool) *SimWindow {
	w := &SimWindow{
		dev:    d,
		y0:     y,
		x0:     x,
		lines:  lines,
		cols:   cols,
		isRoot: root,
	}
	w.cells = make([][]rune, lines)
	for i := range w.cells {
		w.cells[i] = make([]rune, cols)
		for j := range w.cells[i] {
			w.cells[i][j] = ' '
		}
	}
	d.windows = append(d.windows, w)
	return w
}

func (d *Sim) NewWindow(lines, cols, y, x int) (Handle, error) {
	if !d.inited {
		return nil, ErrNotInitialized
	}
	if d.FailNewWindow {
		return nil, errors.New("term: window allocation refused")
	}
	if lines <= 0 || cols <= 0 {
		return nil, fmt.Errorf("term: bad geometry %dx%d", lines, cols)
	}
	return d.newWindow(lines, cols, y, x, false), nil
}

func (d *Sim) HasColors() bool { return d.hasColors }
func (d *Sim) Colors() int     { return d.colors }
func (d *Sim) ColorPairs() int { return d.colorPairs }

func (d *Sim) DefinePair(id int, fg, bg Color) error {
	if d.FailDefinePair {
		return errors.New("term: pair definition refused")
	}
	if id <= 0 || id >= d.colorPairs {
		return fmt.Errorf("term: pair %d out of range", id)
	}
	d.pairs[id] = [2]Color{fg, bg}
	return nil
}

// DefinedPairs returns the number of pair slots defined so far.
func (d *Sim) DefinedPairs() int {
	return len(d.pairs)
}

// Pair returns the colors assigned to a pair slot.
func (d *Sim) Pair(id int) ([2]Color, bool) {
	p, ok := d.pairs[id]
	return p, ok
}

func (d *Sim) Refresh() error {
	if !d.inited {
		return ErrNotInitialized
	}
	d.refreshes++
	return nil
}

// Refreshes returns how many whole-display refreshes were requested.
func (d *Sim) Refreshes() int {
	return d.refreshes
}

func (d *Sim) CaptureMode() Mode {
	return Mode{raw: d.raw}
}

func (d *Sim) RestoreMode(m Mode) error {
	d.raw = m.raw
	d.ModeLog = append(d.ModeLog, m)
	return nil
}

func (d *Sim) RawInput() error {
	d.raw = true
	return nil
}

// RawMode reports whether the simulated terminal is in raw input mode.
func (d *Sim) RawMode() bool {
	return d.raw
}

// SimWindow is the Sim device's window handle.
type SimWindow struct {
	dev    *Sim
	y0, x0 int
	lines  int
	cols   int
	cy, cx int

	cells [][]rune

	attrs     AttrMask
	pairID    int
	scrollOn  bool
	keypadOn  bool
	isRoot    bool
	closed    bool
	refreshes int
	scrolled  int

	// keys is the scripted input queue.
	keys []KeyEvent

	// FailMove makes the next Move fail.
	FailMove bool
	// FailScroll makes ScrollBy fail.
	FailScroll bool
	// FailSetPair makes SetPair fail.
	FailSetPair bool
}

// QueueKey appends a scripted input event.
func (w *SimWindow) QueueKey(ev KeyEvent) {
	w.keys = append(w.keys, ev)
}

// QueueRune appends a scripted plain-character event.
func (w *SimWindow) QueueRune(r rune) {
	w.QueueKey(KeyEvent{Rune: r})
}

// QueueCode appends a scripted special-key event.
func (w *SimWindow) QueueCode(code int) {
	w.QueueKey(KeyEvent{Code: code, IsCode: true})
}

// Keypad reports whether keypad translation was enabled by the last
// SetKeypad call.
func (w *SimWindow) Keypad() bool { return w.keypadOn }

// ScrollEnabled reports the handle's scroll flag.
func (w *SimWindow) ScrollEnabled() bool { return w.scrollOn }

// Scrolled returns the net number of lines scrolled.
func (w *SimWindow) Scrolled() int { return w.scrolled }

// Attrs returns the active attribute mask.
func (w *SimWindow) Attrs() AttrMask { return w.attrs }

// ActivePair returns the currently applied color pair.
func (w *SimWindow) ActivePair() int { return w.pairID }

// Closed reports whether the handle has been released.
func (w *SimWindow) Closed() bool { return w.closed }

// Refreshes returns how many times this window was refreshed.
func (w *SimWindow) Refreshes() int { return w.refreshes }

// Line returns the contents of one window line.
func (w *SimWindow) Line(y int) string {
	if y < 0 || y >= w.lines {
		return ""
	}
	return string(w.cells[y])
}

func (w *SimWindow) Move(y, x int) error {
	if w.closed {
		return ErrClosedWindow
	}
	if w.FailMove {
		return errors.New("term: move refused")
	}
	if y < 0 || y >= w.lines || x < 0 || x >= w.cols {
		return ErrOffscreen
	}
	w.cy, w.cx = y, x
	return nil
}

func (w *SimWindow) AddRune(r rune) error {
	if w.closed {
		return ErrClosedWindow
	}
	if r == '\n' {
		w.cx = 0
		return w.advanceLine()
	}
	w.cells[w.cy][w.cx] = r
	w.cx++
	if w.cx < w.cols {
		return nil
	}
	w.cx = 0
	return w.advanceLine()
}

func (w *SimWindow) advanceLine() error {
	if w.cy+1 < w.lines {
		w.cy++
		return nil
	}
	if !w.scrollOn {
		w.cx = w.cols - 1
		return ErrOffscreen
	}
	return w.shift(1)
}

func (w *SimWindow) AddString(s string) error {
	for _, r := range s {
		if err := w.AddRune(r); err != nil {
			return err
		}
	}
	return nil
}

func (w *SimWindow) blank(fromY, fromX int) {
	for y := fromY; y < w.lines; y++ {
		x := 0
		if y == fromY {
			x = fromX
		}
		for ; x < w.cols; x++ {
			w.cells[y][x] = ' '
		}
	}
}

func (w *SimWindow) Erase() error {
	if w.closed {
		return ErrClosedWindow
	}
	w.blank(0, 0)
	return nil
}

func (w *SimWindow) Clear() error {
	return w.Erase()
}

func (w *SimWindow) ClearToEOL() error {
	if w.closed {
		return ErrClosedWindow
	}
	for x := w.cx; x < w.cols; x++ {
		w.cells[w.cy][x] = ' '
	}
	return nil
}

func (w *SimWindow) ClearToBottom() error {
	if w.closed {
		return ErrClosedWindow
	}
	w.blank(w.cy, w.cx)
	return nil
}

func (w *SimWindow) Border() error {
	if w.closed {
		return ErrClosedWindow
	}
	if w.lines < 2 || w.cols < 2 {
		return ErrOffscreen
	}
	for x := 0; x < w.cols; x++ {
		w.cells[0][x] = '-'
		w.cells[w.lines-1][x] = '-'
	}
	for y := 0; y < w.lines; y++ {
		w.cells[y][0] = '|'
		w.cells[y][w.cols-1] = '|'
	}
	w.cells[0][0] = '+'
	w.cells[0][w.cols-1] = '+'
	w.cells[w.lines-1][0] = '+'
	w.cells[w.lines-1][w.cols-1] = '+'
	return nil
}

func (w *SimWindow) Refresh() error {
	if w.closed {
		return ErrClosedWindow
	}
	w.refreshes++
	return nil
}

func (w *SimWindow) SetAttr(mask AttrMask, on bool) error {
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

func (w *SimWindow) SetPair(id int) error {
	if w.closed {
		return ErrClosedWindow
	}
	if w.FailSetPair {
		return errors.New("term: pair apply refused")
	}
	if id != 0 {
		if _, ok := w.dev.pairs[id]; !ok {
			return fmt.Errorf("term: pair %d not defined", id)
		}
	}
	w.pairID = id
	return nil
}

func (w *SimWindow) SetScroll(on bool) error {
	if w.closed {
		return ErrClosedWindow
	}
	w.scrollOn = on
	return nil
}

func (w *SimWindow) ScrollBy(n int) error {
	if w.closed {
		return ErrClosedWindow
	}
	if w.FailScroll {
		return errors.New("term: scroll refused")
	}
	if !w.scrollOn {
		return ErrNoScroll
	}
	return w.shift(n)
}

func (w *SimWindow) shift(n int) error {
	w.scrolled += n
	if n > 0 {
		for y := 0; y+n < w.lines; y++ {
			copy(w.cells[y], w.cells[y+n])
		}
		for y := max(w.lines-n, 0); y < w.lines; y++ {
			for x := range w.cells[y] {
				w.cells[y][x] = ' '
			}
		}
		return nil
	}
	for y := w.lines - 1; y+n >= 0; y-- {
		copy(w.cells[y], w.cells[y+n])
	}
	for y := 0; y < -n && y < w.lines; y++ {
		for x := range w.cells[y] {
			w.cells[y][x] = ' '
		}
	}
	return nil
}

func (w *SimWindow) SetKeypad(on bool) {
	w.keypadOn = on
}

func (w *SimWindow) ReadKey() (KeyEvent, error) {
	if w.closed {
		return KeyEvent{}, ErrClosedWindow
	}
	if len(w.keys) == 0 {
		return KeyEvent{}, ErrNoInput
	}
	ev := w.keys[0]
	w.keys = w.keys[1:]
	return ev, nil
}

func (w *SimWindow) Cursor() (int, int) { return w.cy, w.cx }
func (w *SimWindow) Origin() (int, int) { return w.y0, w.x0 }
func (w *SimWindow) Size() (int, int)   { return w.lines, w.cols }

func (w *SimWindow) Close() error {
	if w.isRoot {
		return ErrRootWindow
	}
	if w.closed {
		return ErrClosedWindow
	}
	if w.dev.FailClose {
		return errors.New("term: handle release refused")
	}
	w.closed = true
	return nil
}
