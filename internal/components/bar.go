package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Bar is a one-row strip used under the menu bar items and for the status line.
type Bar struct {
	Base
	look theme.BarLook
}

// NewBar creates a bar using the theme component key.
func NewBar(scr *screen.Screen, th *theme.Theme, key string, cols int, topLeft Position) (*Bar, error) {
	look, err := th.Bar(key)
	if err != nil {
		return nil, err
	}
	return &Bar{
		Base: newBase(scr, Extent{Rows: 1, Cols: cols}, topLeft, false, logger.ComponentLogger("bar")),
		look: look,
	}, nil
}

// Look returns the bar's capability record.
func (b *Bar) Look() theme.BarLook { return b.look }

// Redraw fills the whole row with the background glyph.
func (b *Bar) Redraw() {
	if !b.visible {
		return
	}
	b.fill()
	b.Stage()
}

func (b *Bar) fill() {
	b.FillRow(0, 0, b.RealExtent().Cols, b.look.BgChar, b.look.Bg)
}

// SetVisible shows or hides the bar. Showing it redraws; hiding leaves the
// caller to paint over it.
func (b *Bar) SetVisible(v bool) {
	b.visible = v
	if v {
		b.Redraw()
	}
}

// SetFocused sets the focus flag. Gaining focus redraws.
func (b *Bar) SetFocused(f bool) {
	b.focused = f
	if f {
		b.Redraw()
	}
}

// Resize moves and resizes the bar to cols columns at topLeft.
func (b *Bar) Resize(cols int, topLeft Position) {
	b.resizeSurface(Extent{Rows: 1, Cols: cols}, topLeft)
}

func (b *Bar) ProcessKey(tea.KeyMsg) Result { return Continue }
func (b *Bar) ProcessMouse(Mouse) Result    { return Continue }

// StatusBar is a Bar showing left- and right-aligned text. A flash message
// replaces the left text until cleared.
type StatusBar struct {
	*Bar
	left, right string
	flash       string
}

// NewStatusBar creates a status bar.
func NewStatusBar(scr *screen.Screen, th *theme.Theme, cols int, topLeft Position) (*StatusBar, error) {
	bar, err := NewBar(scr, th, theme.StatusBar, cols, topLeft)
	if err != nil {
		return nil, err
	}
	return &StatusBar{Bar: bar}, nil
}

// SetText replaces both text runs.
func (s *StatusBar) SetText(left, right string) {
	s.left, s.right = left, right
}

// Flash shows msg in place of the left text.
func (s *StatusBar) Flash(msg string) { s.flash = msg }

// ClearFlash drops the flash message.
func (s *StatusBar) ClearFlash() { s.flash = "" }

// Text returns what the bar currently shows on the left.
func (s *StatusBar) Text() string {
	if s.flash != "" {
		return s.flash
	}
	return s.left
}

func (s *StatusBar) Redraw() {
	if !s.visible {
		return
	}
	s.fill()
	cols := s.RealExtent().Cols
	left := s.Text()
	attr := s.look.Text
	if s.flash != "" {
		attr = s.look.Highlight
	}
	s.Print(0, 1, runewidth.Truncate(left, max(cols-2, 0), "…"), attr)
	if w := runewidth.StringWidth(s.right); s.right != "" && w+runewidth.StringWidth(left)+4 <= cols {
		s.Print(0, cols-w-1, s.right, s.look.Text)
	}
	s.Stage()
}

// SetVisible shows or hides the status bar.
func (s *StatusBar) SetVisible(v bool) {
	s.visible = v
	if v {
		s.Redraw()
	}
}

// SetFocused sets the focus flag. Gaining focus redraws the text too.
func (s *StatusBar) SetFocused(f bool) {
	s.focused = f
	if f {
		s.Redraw()
	}
}
