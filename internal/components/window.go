package components

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// WindowOptions is the capability record that distinguishes one window from
// another. Everything else about windows is shared.
type WindowOptions struct {
	// ThemeKey names the window component in the theme.
	ThemeKey string
	Title    string
	// NoBorder draws no frame; the drawable extent equals the real extent.
	NoBorder bool
	// AlwaysVisible windows redraw even when hidden.
	AlwaysVisible bool
	// Hidden windows start invisible.
	Hidden bool
}

// Window is the composite region: a frame, an optional centred title, a
// filled interior and children drawn on top.
type Window struct {
	Base
	look          theme.WindowLook
	title         string
	alwaysVisible bool
	children      []Component
	onKey         func(tea.KeyMsg) Result
	onMouse       func(Mouse) Result
}

// NewWindow creates a window of real extent ext at topLeft.
func NewWindow(scr *screen.Screen, th *theme.Theme, opts WindowOptions, ext Extent, topLeft Position) (*Window, error) {
	look, err := th.Window(opts.ThemeKey)
	if err != nil {
		return nil, err
	}
	w := &Window{
		Base:          newBase(scr, ext, topLeft, !opts.NoBorder, logger.ComponentLogger("window")),
		look:          look,
		title:         opts.Title,
		alwaysVisible: opts.AlwaysVisible,
	}
	w.visible = !opts.Hidden
	return w, nil
}

// Look returns the window's capability record.
func (w *Window) Look() theme.WindowLook { return w.look }

// Title returns the title.
func (w *Window) Title() string { return w.title }

// SetTitle changes the title. It shows on the next redraw.
func (w *Window) SetTitle(t string) { w.title = t }

// Shown reports whether Redraw paints anything.
func (w *Window) Shown() bool { return w.visible || w.alwaysVisible }

// SetVisible shows or hides the window. Showing it redraws.
func (w *Window) SetVisible(v bool) {
	w.visible = v
	if v {
		w.Redraw()
	}
}

// AddChild appends a child. Children draw after the window, in order, and
// are offered input before the window's own handlers.
func (w *Window) AddChild(c Component) { w.children = append(w.children, c) }

// Children returns the children in draw order.
func (w *Window) Children() []Component { return w.children }

// ClearChildren drops every child.
func (w *Window) ClearChildren() { w.children = nil }

// SetKeyHandler installs the window's own key handler, run after children.
func (w *Window) SetKeyHandler(fn func(tea.KeyMsg) Result) { w.onKey = fn }

// SetMouseHandler installs the window's own mouse handler, run after
// children for events inside the window.
func (w *Window) SetMouseHandler(fn func(Mouse) Result) { w.onMouse = fn }

// Redraw paints frame, title and interior, stages the surface, then redraws
// the children over it.
func (w *Window) Redraw() {
	if !w.Shown() {
		return
	}
	w.Paint()
	w.Stage()
	for _, c := range w.children {
		c.Redraw()
	}
}

// Paint draws frame, title and interior into the surface without staging.
func (w *Window) Paint() {
	w.drawFrame()
	w.drawTitle()
	w.fillInterior()
}

func (w *Window) frame() (lipgloss.Border, screen.Attr) {
	if w.focused {
		return w.look.FrameFocus, w.look.BorderFocus
	}
	return w.look.Frame, w.look.Border
}

func glyph(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func (w *Window) drawFrame() {
	if !w.Bordered() {
		return
	}
	ext := w.RealExtent()
	if ext.Rows < 2 || ext.Cols < 2 {
		return
	}
	b, a := w.frame()
	last, right := ext.Rows-1, ext.Cols-1
	w.Put(0, 0, glyph(b.TopLeft), a)
	w.FillRow(0, 1, ext.Cols-2, glyph(b.Top), a)
	w.Put(0, right, glyph(b.TopRight), a)
	for row := 1; row < last; row++ {
		w.Put(row, 0, glyph(b.Left), a)
		w.Put(row, right, glyph(b.Right), a)
	}
	w.Put(last, 0, glyph(b.BottomLeft), a)
	w.FillRow(last, 1, ext.Cols-2, glyph(b.Bottom), a)
	w.Put(last, right, glyph(b.BottomRight), a)
}

func (w *Window) drawTitle() {
	if w.title == "" || !w.Bordered() {
		return
	}
	cols := w.RealExtent().Cols
	room := cols - 4
	if room <= 0 {
		return
	}
	a := w.look.Title
	if w.focused {
		a = w.look.TitleFocus
	}
	text := runewidth.Truncate(w.title, room, "…")
	width := runewidth.StringWidth(text) + 2
	col := (cols - width) / 2
	w.Put(0, col, w.look.TitleLead, a)
	w.Print(0, col+1, text, a)
	w.Put(0, col+width-1, w.look.TitleTail, a)
}

func (w *Window) fillInterior() {
	tl, ext := w.interiorOrigin(), w.Extent()
	for row := 0; row < ext.Rows; row++ {
		w.FillRow(tl.Row+row, tl.Col, ext.Cols, w.look.BgChar, w.look.Bg)
	}
}

// interiorOrigin is the drawable top-left in surface coordinates.
func (w *Window) interiorOrigin() Position {
	if w.Bordered() {
		return Position{Row: 1, Col: 1}
	}
	return Position{}
}

// PrintInterior writes text at row, col of the drawable area, clipped to it.
func (w *Window) PrintInterior(row, col int, text string, a screen.Attr) int {
	ext := w.Extent()
	if row < 0 || row >= ext.Rows || col < 0 || col >= ext.Cols {
		return 0
	}
	o := w.interiorOrigin()
	return w.Print(o.Row+row, o.Col+col, runewidth.Truncate(text, ext.Cols-col, ""), a)
}

// FillInteriorRow paints one drawable row with the background.
func (w *Window) FillInteriorRow(row int, a screen.Attr) {
	if row < 0 || row >= w.Extent().Rows {
		return
	}
	o := w.interiorOrigin()
	w.FillRow(o.Row+row, o.Col, w.Extent().Cols, w.look.BgChar, a)
}

// SetFocused changes the focus flag and repaints only the frame and title,
// plus any child that sits on the frame.
func (w *Window) SetFocused(f bool) {
	w.focused = f
	if !w.Shown() {
		return
	}
	w.drawFrame()
	w.drawTitle()
	w.stageFrame()
	for _, c := range w.children {
		if w.onFrame(c) {
			c.Redraw()
		}
	}
}

func (w *Window) stageFrame() {
	if !w.Bordered() {
		return
	}
	tl, ext := w.RealTopLeft(), w.RealExtent()
	w.scr.StageRegion(w.surface, 0, 0, tl.Row, tl.Col, 1, ext.Cols)
	w.scr.StageRegion(w.surface, ext.Rows-1, 0, tl.Row+ext.Rows-1, tl.Col, 1, ext.Cols)
	w.scr.StageRegion(w.surface, 1, 0, tl.Row+1, tl.Col, ext.Rows-2, 1)
	w.scr.StageRegion(w.surface, 1, ext.Cols-1, tl.Row+1, tl.Col+ext.Cols-1, ext.Rows-2, 1)
}

type placed interface {
	RealTopLeft() Position
	RealBottomRight() Position
}

// onFrame reports whether c covers any frame cell of the window.
func (w *Window) onFrame(c Component) bool {
	p, ok := c.(placed)
	if !ok {
		return false
	}
	tl, br := p.RealTopLeft(), p.RealBottomRight()
	wtl, wbr := w.RealTopLeft(), w.RealBottomRight()
	return tl.Row <= wtl.Row || br.Row >= wbr.Row || tl.Col <= wtl.Col || br.Col >= wbr.Col
}

// Resize resizes and/or moves the window. The new extents are read back
// from the surface, which is clipped to the screen.
func (w *Window) Resize(size Extent, topLeft Position, doResize, doMove bool) {
	ext, pos := w.RealExtent(), w.RealTopLeft()
	if doResize {
		ext = size
	}
	if doMove {
		pos = topLeft
	}
	w.resizeSurface(ext, pos)
}

// ProcessKey offers the key to the children, then to the key handler.
func (w *Window) ProcessKey(msg tea.KeyMsg) Result {
	if !w.Shown() {
		return Continue
	}
	for _, c := range w.children {
		if r := c.ProcessKey(msg); r != Continue {
			return r
		}
	}
	if w.onKey != nil {
		return w.onKey(msg)
	}
	return Continue
}

// ProcessMouse offers the event to the children, then to the mouse handler
// if it falls inside the window.
func (w *Window) ProcessMouse(m Mouse) Result {
	if !w.Shown() {
		return Continue
	}
	for _, c := range w.children {
		if r := c.ProcessMouse(m); r != Continue {
			return r
		}
	}
	if w.onMouse != nil && w.IsMouseOver(m.Pos) {
		return w.onMouse(m)
	}
	return Continue
}
