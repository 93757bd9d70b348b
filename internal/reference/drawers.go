package reference

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSessions bounds how many drawers are kept; the least recently
// used one is dropped first.
const DefaultSessions = 1024

type drawers struct {
	catalog *Catalog

	mu   sync.Mutex
	navs *lru.Cache[string, *Navigator]
}

func NewDrawers(c *Catalog, sessions int) (Drawers, error) {
	navs, err := lru.New[string, *Navigator](sessions)
	if err != nil {
		return nil, fmt.Errorf("reference: drawer cache: %w", err)
	}
	return &drawers{catalog: c, navs: navs}, nil
}

// nav must be called with mu held.
func (d *drawers) nav(session string) *Navigator {
	n, ok := d.navs.Get(session)
	if !ok {
		n = &Navigator{}
		d.navs.Add(session, n)
	}
	return n
}

// Open accepts only top-level catalog entries.
func (d *drawers) Open(session, entryID string) (State, error) {
	if !d.catalog.IsEntry(entryID) {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownEntry, entryID)
	}
	v, _ := d.catalog.View(entryID)

	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.nav(session)
	n.Open(Frame{ViewID: v.ID, Title: v.Title})
	return d.state(n), nil
}

// Drill follows a row link of the current view.
func (d *drawers) Drill(session, link string) (State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.nav(session)

	cur, ok := n.Current()
	if !ok {
		return d.state(n), ErrClosed
	}
	view, _ := d.catalog.View(cur.ViewID)
	if !view.Links(link) {
		return d.state(n), fmt.Errorf("%w: %q", ErrNotLinked, link)
	}
	target, ok := d.catalog.View(link)
	if !ok {
		return d.state(n), fmt.Errorf("%w: %q", ErrUnknownView, link)
	}

	n.DrillInto(Frame{ViewID: target.ID, Title: target.Title})
	return d.state(n), nil
}

func (d *drawers) Back(session string) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.nav(session)
	n.Back()
	return d.state(n)
}

func (d *drawers) Close(session string) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.nav(session)
	n.Close()
	return d.state(n)
}

func (d *drawers) State(session string) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state(d.nav(session))
}

func (d *drawers) state(n *Navigator) State {
	var s State
	if cur, ok := n.Current(); ok {
		s.Current = &cur
		if v, ok := d.catalog.View(cur.ViewID); ok {
			s.View = &v
		}
	}
	if prev, ok := n.Previous(); ok {
		s.Previous = &prev
	}
	return s
}
