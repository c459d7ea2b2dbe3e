package components

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/errors"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Orientation of a scrollbar.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Part identifies a cell of a scrollbar.
type Part int

const (
	PartNone Part = iota
	PartStart
	PartPageStart
	PartTrack
	PartHandle
	PartPageEnd
	PartEnd
)

// buttons is the number of button cells, two at each end. The handle
// travels over the cells between them.
const (
	buttonCells  = 2
	handleMargin = 2*buttonCells + 1
)

// ScrollBar draws a track with end and page buttons and a handle. It does
// not read input itself; its owner does the scrolling arithmetic and asks
// PartAt which cell was clicked.
type ScrollBar struct {
	Base
	orientation Orientation
	look        theme.ScrollBarLook
	enabled     bool
	position    *float64
}

// NewScrollBar creates a scrollbar of the given length along its orientation.
func NewScrollBar(scr *screen.Screen, th *theme.Theme, o Orientation, length int, topLeft Position) (*ScrollBar, error) {
	key := theme.VScrollBar
	if o == Horizontal {
		key = theme.HScrollBar
	}
	look, err := th.ScrollBar(key)
	if err != nil {
		return nil, err
	}
	return &ScrollBar{
		Base:        newBase(scr, extentFor(o, length), topLeft, false, logger.ComponentLogger("scrollbar")),
		orientation: o,
		look:        look,
	}, nil
}

func extentFor(o Orientation, length int) Extent {
	if o == Horizontal {
		return Extent{Rows: 1, Cols: length}
	}
	return Extent{Rows: length, Cols: 1}
}

// Orientation returns the scrollbar's orientation.
func (s *ScrollBar) Orientation() Orientation { return s.orientation }

// Length returns the number of cells along the scrollbar.
func (s *ScrollBar) Length() int {
	if s.orientation == Horizontal {
		return s.RealExtent().Cols
	}
	return s.RealExtent().Rows
}

// Enabled reports whether the scrollbar is drawn in its active look.
func (s *ScrollBar) Enabled() bool { return s.enabled }

// SetEnabled switches between the active and dimmed looks.
func (s *ScrollBar) SetEnabled(e bool) { s.enabled = e }

// Position returns the handle position in [0, 1], or nil when there is none.
func (s *ScrollBar) Position() *float64 { return s.position }

// SetPosition sets the handle position. nil removes the handle; values
// outside [0, 1] are a caller bug.
func (s *ScrollBar) SetPosition(p *float64) error {
	if p != nil && (*p < 0 || *p > 1 || math.IsNaN(*p)) {
		return errors.InvalidArgument(errors.Op("scrollbar.SetPosition"), "position must be within [0, 1]")
	}
	s.position = p
	return nil
}

// SetVisible shows or hides the scrollbar. Showing it redraws.
func (s *ScrollBar) SetVisible(v bool) {
	s.visible = v
	if v {
		s.Redraw()
	}
}

// Resize changes the length and position of the scrollbar.
func (s *ScrollBar) Resize(length int, topLeft Position) {
	s.resizeSurface(extentFor(s.orientation, length), topLeft)
}

// HandleIndex returns the cell index of the handle, or -1 when no handle
// is drawn.
func (s *ScrollBar) HandleIndex() int {
	n := s.Length()
	if s.position == nil || n < handleMargin {
		return -1
	}
	return int(math.Round(*s.position*float64(n-handleMargin))) + buttonCells
}

func (s *ScrollBar) cell(i int, r rune, a screen.Attr) {
	if s.orientation == Horizontal {
		s.Put(0, i, r, a)
	} else {
		s.Put(i, 0, r, a)
	}
}

// Redraw draws the track, then the end and page buttons, then the handle.
func (s *ScrollBar) Redraw() {
	if !s.visible {
		return
	}
	track, button, handle := s.look.Track, s.look.Button, s.look.Handle
	if !s.enabled {
		track, button, handle = s.look.TrackDisabled, s.look.ButtonDisabled, s.look.HandleDisabled
	}
	n := s.Length()
	for i := 0; i < n; i++ {
		s.cell(i, s.look.TrackChar, track)
	}
	if n >= 2 {
		s.cell(0, s.look.StartChar, button)
		s.cell(n-1, s.look.EndChar, button)
	}
	if n >= 4 {
		s.cell(1, s.look.PageStartChar, button)
		s.cell(n-2, s.look.PageEndChar, button)
	}
	if h := s.HandleIndex(); h >= 0 {
		s.cell(h, s.look.HandleChar, handle)
	}
	s.Stage()
}

// PartAt reports which part of the scrollbar p falls on.
func (s *ScrollBar) PartAt(p Position) Part {
	if !s.IsMouseOver(p) {
		return PartNone
	}
	i := p.Row - s.RealTopLeft().Row
	if s.orientation == Horizontal {
		i = p.Col - s.RealTopLeft().Col
	}
	n := s.Length()
	switch {
	case i == 0:
		return PartStart
	case i == n-1:
		return PartEnd
	case i == 1 && n >= 4:
		return PartPageStart
	case i == n-2 && n >= 4:
		return PartPageEnd
	case i == s.HandleIndex():
		return PartHandle
	}
	return PartTrack
}

func (s *ScrollBar) ProcessKey(tea.KeyMsg) Result { return Continue }
func (s *ScrollBar) ProcessMouse(Mouse) Result    { return Continue }
