package curses

import (
	"fmt"
	"strconv"
	"strings"
)

// applyAttr parses one attribute token and toggles it on the window's
// handle. A leading '+' or no sign turns the attribute on, a leading '-'
// turns it off.
func applyAttr(w *Window, token string) error {
	on := true
	name := token
	switch {
	case strings.HasPrefix(token, "-"):
		on = false
		name = token[1:]
	case strings.HasPrefix(token, "+"):
		name = token[1:]
	}

	mask, ok := attrMask(name)
	if !ok {
		return fmt.Errorf("attribute `%s' not known", name)
	}
	return w.handle.SetAttr(mask, on)
}

// ApplyStyleTokens processes a batch of attribute and color tokens
// left-to-right. Tokens containing '/' are color pairs and go through the
// pair cache; the rest are attribute toggles. Every token is attempted
// even after a failure, and the first error is reported for the batch.
func (r *Registry) ApplyStyleTokens(w *Window, tokens []string) error {
	var firstErr error
	for _, tok := range tokens {
		var err error
		if strings.Contains(tok, "/") {
			if r.cache == nil {
				err = ErrNoColor
			} else {
				err = r.cache.Resolve(w.handle, tok)
			}
		} else {
			err = applyAttr(w, tok)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SetScroll handles the scroll verb's mode argument: "on" and "off" set
// the persisted scrolling flag, an integer scrolls by that many lines.
// A numeric scroll on a window with scrolling disabled enables it only
// for the single scroll call and restores the disabled state afterwards.
func (r *Registry) SetScroll(w *Window, mode string) error {
	switch mode {
	case "on":
		if err := w.handle.SetScroll(true); err != nil {
			return err
		}
		w.scroll = true
		return nil
	case "off":
		if err := w.handle.SetScroll(false); err != nil {
			return err
		}
		w.scroll = false
		return nil
	}

	n, err := strconv.Atoi(mode)
	if err != nil {
		return fmt.Errorf("scroll requires `on', `off' or integer: %s", mode)
	}

	if !w.scroll {
		_ = w.handle.SetScroll(true)
	}
	scrollErr := w.handle.ScrollBy(n)
	if !w.scroll {
		_ = w.handle.SetScroll(false)
	}
	return scrollErr
}
