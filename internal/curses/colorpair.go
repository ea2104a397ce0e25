package curses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Syphdias/zcurses/internal/term"
)

// PairCache multiplexes the terminal's bounded color-pair slots across an
// unbounded set of "fg/bg" keys. Entries are never evicted: a key keeps
// its pair id for the life of the color subsystem, because reclamation
// would require tracking every window still referencing the pair.
//
// The cache starts unprimed: the first resolution after color support
// comes up must allocate a fresh hardware pair even when the key is
// already cached, since cached ids may have been invalidated by a display
// reinitialization. Every later resolution looks up before allocating.
type PairCache struct {
	dev    term.Device
	pairs  map[string]int
	next   int
	primed bool
}

// NewPairCache creates an unprimed cache over the device's pair slots.
func NewPairCache(dev term.Device) *PairCache {
	return &PairCache{dev: dev, pairs: make(map[string]int)}
}

// Len returns the number of cached keys.
func (c *PairCache) Len() int { return len(c.pairs) }

// Primed reports whether the initial bypass allocation has happened.
func (c *PairCache) Primed() bool { return c.primed }

// Resolve maps a "fg/bg" key to a pair id, allocating a slot when needed,
// and applies the pair to the window handle. Both halves of the key are
// checked against the color table and unknown names are reported
// independently.
func (c *PairCache) Resolve(h term.Handle, key string) error {
	id, cached := c.pairs[key]

	if !c.primed || !cached {
		c.primed = true

		fgName, bgName, ok := strings.Cut(key, "/")
		if !ok {
			return fmt.Errorf("bad color pair %q", key)
		}

		fg, fgOK := colorNumber(fgName)
		bg, bgOK := colorNumber(bgName)
		if !fgOK || !bgOK {
			var errs []error
			if !fgOK {
				errs = append(errs, fmt.Errorf("foreground color `%s' not known", fgName))
			}
			if !bgOK {
				errs = append(errs, fmt.Errorf("background color `%s' not known", bgName))
			}
			return errors.Join(errs...)
		}

		// Pair 0 is reserved, so the counter advances before the
		// capacity check.
		c.next++
		if c.next >= c.dev.ColorPairs() {
			return fmt.Errorf("out of color pairs for %q", key)
		}
		if err := c.dev.DefinePair(c.next, fg, bg); err != nil {
			return fmt.Errorf("defining pair for %q: %w", key, err)
		}

		c.pairs[key] = c.next
		id = c.next
	}

	return h.SetPair(id)
}
