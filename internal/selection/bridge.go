// Package selection turns ambient text selections into a pre-filled next query.
package selection

import "strings"

// Point is the on-screen anchor of a selection, in CSS pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Capture struct {
	Text   string `json:"text"`
	Anchor Point  `json:"anchor"`
}

// Query is the pending query input.
type Query struct {
	Text    string `json:"text"`
	Focused bool   `json:"focused"`
}

// Bridge holds at most one captured selection and the pending query.
type Bridge struct {
	captured *Capture
	query    Query
}

// OnSelectionChange captures non-collapsed, non-blank selections and clears
// the capture otherwise.
func (b *Bridge) OnSelectionChange(text string, collapsed bool, anchor Point) {
	text = strings.TrimSpace(text)
	if collapsed || text == "" {
		b.captured = nil
		return
	}
	b.captured = &Capture{Text: text, Anchor: anchor}
}

func (b *Bridge) Captured() (Capture, bool) {
	if b.captured == nil {
		return Capture{}, false
	}
	return *b.captured, true
}

// Apply copies the captured text into the query, focuses it and drops the
// capture. Without a capture nothing changes.
func (b *Bridge) Apply() (Query, bool) {
	if b.captured == nil {
		return b.query, false
	}
	b.query = Query{Text: b.captured.Text, Focused: true}
	b.captured = nil
	return b.query, true
}

func (b *Bridge) SetQuery(text string) {
	b.query.Text = text
}

func (b *Bridge) Blur() {
	b.query.Focused = false
}

func (b *Bridge) Query() Query {
	return b.query
}

func (b *Bridge) Clear() {
	b.captured = nil
}
