package reference

// Frame identifies the view shown in the drawer.
type Frame struct {
	ViewID string `json:"viewId"`
	Title  string `json:"title"`
}

// Navigator keeps one level of history: drilling while a previous frame
// exists overwrites it, so earlier ancestors are lost.
type Navigator struct {
	current  *Frame
	previous *Frame
}

// Open starts a fresh drawer at f.
func (n *Navigator) Open(f Frame) {
	n.current = &f
	n.previous = nil
}

// DrillInto saves the current frame as previous and shows f.
func (n *Navigator) DrillInto(f Frame) {
	n.previous = n.current
	n.current = &f
}

// Back restores previous; false when there is nothing to go back to.
func (n *Navigator) Back() bool {
	if n.previous == nil {
		return false
	}
	n.current = n.previous
	n.previous = nil
	return true
}

func (n *Navigator) Close() {
	n.current = nil
	n.previous = nil
}

func (n *Navigator) Current() (Frame, bool) {
	if n.current == nil {
		return Frame{}, false
	}
	return *n.current, true
}

func (n *Navigator) Previous() (Frame, bool) {
	if n.previous == nil {
		return Frame{}, false
	}
	return *n.previous, true
}
