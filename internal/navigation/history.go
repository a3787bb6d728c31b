package navigation

import (
	"context"
	"fmt"
)

// Mounter is implemented by views that need to prepare before they are
// shown.
type Mounter interface {
	Mount(ctx context.Context, m Match) error
}

// Unmounter is implemented by views that need to clean up when navigation
// leaves them.
type Unmounter interface {
	Unmount(ctx context.Context, m Match)
}

// State is the state of a [History].
type State int

const (
	// NoMatch means the current location matches no route and no view is
	// mounted.
	NoMatch State = iota
	// Mounted means the view of the current location is mounted.
	Mounted
)

func (s State) String() string {
	switch s {
	case NoMatch:
		return "NoMatch"
	case Mounted:
		return "Mounted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Location is one entry of a history.
type Location struct {
	Path    string
	Match   Match
	Matched bool
}

// Listener observes completed navigations.
type Listener func(to, from Location)

// History is the navigation state of a single client: a stack of visited
// locations with a cursor, where the location under the cursor has its view
// mounted. History is not safe for concurrent use.
type History struct {
	table     *Table
	entries   []Location
	index     int
	state     State
	listeners []*Listener
}

// NewHistory starts a history at initialPath and mounts its view.
func NewHistory(ctx context.Context, table *Table, initialPath string) (*History, error) {
	h := &History{table: table}
	loc := h.resolve(initialPath)
	h.entries = []Location{loc}

	return h, h.enter(ctx, loc)
}

// Current returns the location under the cursor.
func (h *History) Current() Location {
	return h.entries[h.index]
}

// State returns [Mounted] when a view is mounted, [NoMatch] otherwise.
func (h *History) State() State {
	return h.state
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Push navigates to path, discarding any forward entries. Pushing the
// current path is a no-op.
func (h *History) Push(ctx context.Context, path string) error {
	if cleanPath(path) == h.Current().Path {
		return nil
	}
	loc := h.resolve(path)
	h.entries = append(h.entries[:h.index+1], loc)
	return h.transition(ctx, h.index+1)
}

// Replace navigates to path, overwriting the current entry.
func (h *History) Replace(ctx context.Context, path string) error {
	from := h.Current()
	h.leave(ctx)
	loc := h.resolve(path)
	h.entries[h.index] = loc

	err := h.enter(ctx, loc)
	h.notify(loc, from)
	return err
}

// Back moves the cursor one entry back, or fails with [ErrNoHistory].
func (h *History) Back(ctx context.Context) error {
	if h.index == 0 {
		return ErrNoHistory
	}
	return h.transition(ctx, h.index-1)
}

// Forward moves the cursor one entry forward, or fails with [ErrNoHistory].
func (h *History) Forward(ctx context.Context) error {
	if h.index+1 >= len(h.entries) {
		return ErrNoHistory
	}
	return h.transition(ctx, h.index+1)
}

// AfterEach registers fn to run after every following navigation. The
// returned func removes it.
func (h *History) AfterEach(fn Listener) (remove func()) {
	l := &fn
	h.listeners = append(h.listeners, l)
	return func() {
		for i, other := range h.listeners {
			if other == l {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

// Close unmounts the current view.
func (h *History) Close(ctx context.Context) {
	h.leave(ctx)
}

func (h *History) resolve(path string) Location {
	path = cleanPath(path)
	m, ok := h.table.Match(path)
	return Location{Path: path, Match: m, Matched: ok}
}

func (h *History) transition(ctx context.Context, index int) error {
	from := h.Current()
	h.leave(ctx)
	h.index = index
	to := h.Current()

	err := h.enter(ctx, to)
	h.notify(to, from)
	return err
}

func (h *History) enter(ctx context.Context, loc Location) error {
	if !loc.Matched {
		h.state = NoMatch
		return nil
	}
	if mounter, ok := loc.Match.Route.View.(Mounter); ok {
		if err := mounter.Mount(ctx, loc.Match); err != nil {
			h.state = NoMatch
			return fmt.Errorf("mount %q: %w", loc.Match.Route.Name, err)
		}
	}
	h.state = Mounted
	return nil
}

func (h *History) leave(ctx context.Context) {
	if h.state != Mounted {
		return
	}
	loc := h.Current()
	if unmounter, ok := loc.Match.Route.View.(Unmounter); ok {
		unmounter.Unmount(ctx, loc.Match)
	}
	h.state = NoMatch
}

func (h *History) notify(to, from Location) {
	for _, l := range h.listeners {
		(*l)(to, from)
	}
}
