// Package term abstracts the character-cell terminal so the windowing core
// can run against a real screen or an in-memory simulation.
package term

// Color identifies one of the base terminal colors, numbered the way the
// terminal reports them.
type Color int

const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// AttrMask is a bitmask of display attributes applied to drawn cells.
type AttrMask int

const (
	AttrBlink AttrMask = 1 << iota
	AttrBold
	AttrDim
	AttrReverse
	AttrStandout
	AttrUnderline
)

// Mode is an opaque snapshot of the terminal's input mode. Snapshots are
// produced by CaptureMode and only meaningful to the device that made them.
type Mode struct {
	raw bool
}

// KeyEvent is one decoded input unit: either a plain character or a
// special-key code, never both.
type KeyEvent struct {
	// Rune holds the character when the event is plain input.
	Rune rune

	// Code holds the special-key code when IsCode is set.
	Code int

	// IsCode reports whether the event is a special key rather than text.
	IsCode bool
}

// Device is the terminal capability surface. Exactly one Device backs a
// session; it owns the physical screen and all window handles.
type Device interface {
	// Init takes over the terminal. Must be called before any window
	// operation.
	Init() error

	// Fini tears the display down and releases the terminal.
	Fini()

	// Root returns the handle covering the whole screen. Only valid
	// after Init.
	Root() Handle

	// NewWindow allocates a window of the given geometry. The handle is
	// owned by the caller and must be released with Close.
	NewWindow(lines, cols, y, x int) (Handle, error)

	// HasColors reports whether the terminal can display colors.
	HasColors() bool

	// Colors returns the number of colors the terminal supports.
	Colors() int

	// ColorPairs returns the number of color-pair slots available.
	ColorPairs() int

	// DefinePair assigns a foreground/background combination to a pair
	// slot. Pair 0 is reserved for the terminal default.
	DefinePair(id int, fg, bg Color) error

	// Refresh repaints the entire display from scratch.
	Refresh() error

	// CaptureMode snapshots the current input mode.
	CaptureMode() Mode

	// RestoreMode puts the terminal back into a captured input mode.
	RestoreMode(Mode) error

	// RawInput switches the terminal into unbuffered, no-echo input.
	RawInput() error
}

// Handle is one addressable drawing surface with its own cursor and
// display state.
type Handle interface {
	// Move places the cursor at window-relative coordinates.
	Move(y, x int) error

	// AddRune draws one character at the cursor and advances it.
	AddRune(r rune) error

	// AddString draws a string starting at the cursor.
	AddString(s string) error

	// Erase blanks the window without forcing a repaint.
	Erase() error

	// Clear blanks the window and forces a full repaint on the next
	// refresh.
	Clear() error

	// ClearToEOL blanks from the cursor to the end of the line.
	ClearToEOL() error

	// ClearToBottom blanks from the cursor to the end of the window.
	ClearToBottom() error

	// Border draws the default box border around the window edge.
	Border() error

	// Refresh pushes the window's pending output to the display.
	Refresh() error

	// SetAttr turns a display attribute on or off for subsequent drawing.
	SetAttr(mask AttrMask, on bool) error

	// SetPair makes a defined color pair active for subsequent drawing.
	SetPair(id int) error

	// SetScroll toggles scrolling when the cursor moves past the last
	// line.
	SetScroll(on bool) error

	// ScrollBy shifts the window contents up by n lines (down if
	// negative).
	ScrollBy(n int) error

	// SetKeypad toggles translation of multi-byte key sequences into
	// special-key codes for ReadKey.
	SetKeypad(on bool)

	// ReadKey blocks until one input event is available.
	ReadKey() (KeyEvent, error)

	// Cursor returns the cursor position relative to the window origin.
	Cursor() (y, x int)

	// Origin returns the window's position on the screen.
	Origin() (y, x int)

	// Size returns the window's dimensions.
	Size() (lines, cols int)

	// Close releases the window handle. The root handle cannot be
	// closed.
	Close() error
}
