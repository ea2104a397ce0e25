// Package curses implements the windowing core: the named-window registry,
// the color-pair cache, attribute and scroll handling, and key-event
// decoding. It owns every terminal resource for the lifetime of the
// process; the terminal itself is reached only through the term.Device
// capability interface.
package curses

import (
	"fmt"

	"github.com/Syphdias/zcurses/internal/term"
)

// RootName is the reserved name of the permanent whole-screen window
// created by session start.
const RootName = "stdscr"

// Criteria selects what Validate requires of a window name.
type Criteria int

const (
	// Any performs a best-effort lookup with no existence requirement.
	Any Criteria = iota
	// MustExist fails the lookup when the name is not registered.
	MustExist
	// MustNotExist fails the lookup when the name is registered.
	MustNotExist
)

// Window is one named drawing surface. The handle is owned exclusively by
// the registry entry and released exactly once, on destruction.
type Window struct {
	name      string
	handle    term.Handle
	permanent bool
	scroll    bool
}

// Name returns the window's registry name.
func (w *Window) Name() string { return w.name }

// Handle returns the underlying terminal handle.
func (w *Window) Handle() term.Handle { return w.handle }

// Permanent reports whether this is the root window.
func (w *Window) Permanent() bool { return w.permanent }

// ScrollEnabled reports the persisted scrolling-mode flag.
func (w *Window) ScrollEnabled() bool { return w.scroll }

// Registry is the insertion-ordered collection of live windows plus the
// session state: terminal-mode snapshots and the color-pair cache. There
// is exactly one Registry per process; it is threaded explicitly through
// the command handlers rather than living in package globals.
type Registry struct {
	dev     term.Device
	windows []*Window

	preMode  term.Mode
	sessMode term.Mode

	cache *PairCache
}

// NewRegistry creates an empty registry over a terminal device.
func NewRegistry(dev term.Device) *Registry {
	return &Registry{dev: dev}
}

// Device returns the terminal device backing the registry.
func (r *Registry) Device() term.Device { return r.dev }

// Cache returns the color-pair cache, or nil when the terminal has no
// color support or the session has not started.
func (r *Registry) Cache() *PairCache { return r.cache }

// Lookup finds a window by name without any validation.
func (r *Registry) Lookup(name string) *Window {
	for _, w := range r.windows {
		if w.name == name {
			return w
		}
	}
	return nil
}

// Validate looks up name under the given criteria. An empty name is
// ErrInvalidName regardless of criteria; MustNotExist fails with
// ErrAlreadyDefined on a hit and MustExist with ErrUndefined on a miss.
func (r *Registry) Validate(name string, c Criteria) (*Window, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	w := r.Lookup(name)

	if w != nil && c == MustNotExist {
		return nil, ErrAlreadyDefined
	}
	if w == nil && c == MustExist {
		return nil, ErrUndefined
	}
	return w, nil
}

// Started reports whether the session has been initialized. The root
// window stays registered after EndSession, so this keeps returning true
// for a suspended session; that matches the command-gating contract.
func (r *Registry) Started() bool {
	return r.Lookup(RootName) != nil
}

// Names returns the live window names in creation order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.windows))
	for i, w := range r.windows {
		names[i] = w.name
	}
	return names
}

// Create allocates a window handle of the given geometry and registers it
// under name. Nothing is registered when handle allocation fails.
func (r *Registry) Create(name string, lines, cols, y, x int) error {
	if _, err := r.Validate(name, MustNotExist); err != nil {
		return err
	}

	h, err := r.dev.NewWindow(lines, cols, y, x)
	if err != nil {
		return fmt.Errorf("creating window %q: %w", name, err)
	}

	r.windows = append(r.windows, &Window{name: name, handle: h})
	return nil
}

// Destroy releases a window's handle and removes it from the registry.
// The root window is refused. When handle release fails, the entry is
// kept: removing it would leave a handle whose release failed
// unaccounted for.
func (r *Registry) Destroy(name string) error {
	w, err := r.Validate(name, MustExist)
	if err != nil {
		return err
	}
	if w.permanent {
		return ErrPermanent
	}

	if err := w.handle.Close(); err != nil {
		return fmt.Errorf("releasing window %q: %w", name, err)
	}

	for i, entry := range r.windows {
		if entry == w {
			r.windows = append(r.windows[:i], r.windows[i+1:]...)
			break
		}
	}
	return nil
}

// InitSession starts the session, or resumes it when the root window
// already exists. A fresh start captures the terminal mode, takes over
// the display, registers the root window, switches to raw no-echo input,
// captures the resulting session mode, and constructs the color-pair
// cache when the terminal supports color. Resumption only restores the
// previously captured session mode.
func (r *Registry) InitSession() error {
	if r.Started() {
		return r.dev.RestoreMode(r.sessMode)
	}

	r.preMode = r.dev.CaptureMode()

	if err := r.dev.Init(); err != nil {
		return fmt.Errorf("initializing display: %w", err)
	}

	r.windows = append(r.windows, &Window{
		name:      RootName,
		handle:    r.dev.Root(),
		permanent: true,
	})

	if r.dev.HasColors() && r.cache == nil {
		r.cache = NewPairCache(r.dev)
	}

	// Raw input immediately, to catch typeahead.
	if err := r.dev.RawInput(); err != nil {
		return fmt.Errorf("entering raw input mode: %w", err)
	}
	r.sessMode = r.dev.CaptureMode()

	return nil
}

// EndSession tears the display down and restores the pre-session terminal
// mode. Registry entries other than the session state are left untouched;
// their handles are invalid for further use, which is a caller contract.
func (r *Registry) EndSession() error {
	if !r.Started() {
		return nil
	}
	if err := r.dev.RestoreMode(r.preMode); err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	return nil
}

// Cleanup releases every window handle and the display at process end.
func (r *Registry) Cleanup() {
	for _, w := range r.windows {
		if !w.permanent {
			// Release failures are moot during teardown.
			_ = w.handle.Close()
		}
	}
	r.windows = nil
	r.cache = nil
	r.dev.Fini()
}
