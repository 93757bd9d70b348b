package reference

import "errors"

var (
	ErrUnknownEntry = errors.New("reference: not a catalog entry")
	ErrUnknownView  = errors.New("reference: unknown view")
	ErrNotLinked    = errors.New("reference: current view has no row linking there")
	ErrClosed       = errors.New("reference: drawer is closed")
)

// State is what the UI renders for one drawer.
type State struct {
	Current  *Frame `json:"current"`
	Previous *Frame `json:"previous"`
	View     *View  `json:"view"`
}

// Drawers — per-session drawer navigation over a catalog.
type Drawers interface {
	Open(session, entryID string) (State, error)
	Drill(session, link string) (State, error)
	Back(session string) State
	Close(session string) State
	State(session string) State
}
