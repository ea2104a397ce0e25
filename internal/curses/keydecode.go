package curses

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/Syphdias/zcurses/internal/term"
)

// Meta introduces a two-byte escape for input that cannot be represented
// in the host's string encoding: the escaped byte follows, XORed with 32.
const Meta = 0x83

// DecodedKey is the normalized form of one input event: Text holds the
// character for plain input (empty for a pure special key), Name holds
// the symbolic key name (empty for plain input).
type DecodedKey struct {
	Text string
	Name string
}

// ReadKey blocks on one input event from the window. Keypad translation
// is enabled for the read only when the caller asked for the symbolic
// name, mirroring the output contract: without a name binding,
// special-key sequences arrive as plain bytes.
func ReadKey(w *Window, wantName bool) (DecodedKey, error) {
	w.handle.SetKeypad(wantName)

	ev, err := w.handle.ReadKey()
	if err != nil {
		return DecodedKey{}, fmt.Errorf("reading input: %w", err)
	}

	if ev.IsCode {
		return DecodedKey{Name: KeyName(ev.Code)}, nil
	}
	return DecodedKey{Text: encodeRune(ev.Rune)}, nil
}

// encodeRune converts one input character to the host string encoding.
// Characters that cannot be encoded are meta-quoted instead of failing
// the read.
func encodeRune(r rune) string {
	if r != 0 && utf8.ValidRune(r) {
		return string(r)
	}
	return string([]byte{Meta, byte(r) ^ 32})
}

// KeyName resolves a special-key code to its symbolic name: the fixed
// keypad table first, then "F<n>" for codes above the function-key base,
// then the decimal code as a last resort.
func KeyName(code int) string {
	if name, ok := keypadNames[code]; ok {
		return name
	}
	if code > term.KeyF0 {
		return "F" + strconv.Itoa(code-term.KeyF0)
	}
	return strconv.Itoa(code)
}
