// Package pad implements a scrollable window: item records stacked on an
// off-screen surface, a viewport onto it and scrollbars on the frame.
package pad

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/avitaltamir/vibechat/internal/screen"
)

// Segment is a run of text in one attribute.
type Segment struct {
	Text string
	Attr screen.Attr
}

// Line is one row of an item: a background for the whole row and the
// segments drawn over it from the left.
type Line struct {
	Bg       screen.Attr
	Segments []Segment
}

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Segments {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// Text returns the line without attributes.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Content is something a pad can display. Lines is called on every redraw,
// so it may depend on live state such as unread counts. width is the
// viewport width.
type Content interface {
	Lines(width int, expanded, selected bool) []Line
}

// Record is a pad's bookkeeping for one item.
type Record struct {
	Content  Content
	Selected bool
	Expanded bool
	// Fixed records are always expanded and cannot be collapsed.
	Fixed bool

	Top    int
	Lines  []Line
	Height int
	Width  int
}

// render regenerates the cached lines and size.
func (r *Record) render(width int) {
	r.Lines = r.Content.Lines(width, r.Expanded || r.Fixed, r.Selected)
	r.Height = len(r.Lines)
	r.Width = 0
	for _, l := range r.Lines {
		r.Width = max(r.Width, l.Width())
	}
}

// Contains reports whether pad row lies within the record.
func (r *Record) Contains(row int) bool {
	return row >= r.Top && row < r.Top+r.Height
}
