package pad

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/keys"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// DefaultPageSize is how many items page up/down move the selection.
const DefaultPageSize = 5

// Options configures a pad.
type Options struct {
	components.WindowOptions
	// PageSize for page up/down. Zero means DefaultPageSize.
	PageSize int
	// Fixed makes every record permanently expanded.
	Fixed bool
}

// Pad is a window whose interior is a viewport onto a larger off-screen
// surface of stacked item records.
type Pad struct {
	*components.Window

	scr     *screen.Screen
	pad     *screen.Surface
	records []*Record
	sel     components.Selection
	fixed   bool
	page    int

	displayTop, displayLeft  int
	contentRows, contentCols int

	vbar, hbar *components.ScrollBar

	onActivate func(index int, state components.State) components.Result
	onSelect   func(index int)

	keys keys.Map
	log  *slog.Logger
}

// New creates an empty pad.
func New(scr *screen.Screen, th *theme.Theme, opts Options, ext components.Extent, topLeft components.Position) (*Pad, error) {
	w, err := components.NewWindow(scr, th, opts.WindowOptions, ext, topLeft)
	if err != nil {
		return nil, err
	}
	vbar, err := components.NewScrollBar(scr, th, components.Vertical, 0, components.Position{})
	if err != nil {
		return nil, err
	}
	hbar, err := components.NewScrollBar(scr, th, components.Horizontal, 0, components.Position{})
	if err != nil {
		return nil, err
	}
	p := &Pad{
		Window: w,
		scr:    scr,
		pad:    screen.NewSurface(0, 0),
		fixed:  opts.Fixed,
		page:   opts.PageSize,
		vbar:   vbar,
		hbar:   hbar,
		keys:   keys.Default(),
		log:    logger.ComponentLogger("pad"),
	}
	if p.page <= 0 {
		p.page = DefaultPageSize
	}
	p.sel = components.NewSelection(0, -1, p.selectionChanged)
	if w.Bordered() {
		w.AddChild(vbar)
		w.AddChild(hbar)
	}
	p.placeScrollBars()
	p.rebuild()
	return p, nil
}

// SetOnActivate installs the hook run when an item is activated with Enter
// or a double click.
func (p *Pad) SetOnActivate(fn func(index int, state components.State) components.Result) {
	p.onActivate = fn
}

// SetOnSelect installs a hook run after the selection changes.
func (p *Pad) SetOnSelect(fn func(index int)) { p.onSelect = fn }

// SetItems replaces the records. The selection is kept if it is still in
// range, clamped otherwise.
func (p *Pad) SetItems(contents []Content) {
	p.records = make([]*Record, len(contents))
	for i, c := range contents {
		p.records[i] = &Record{Content: c, Fixed: p.fixed, Expanded: p.fixed}
	}
	p.sel.SetBounds(0, len(contents)-1)
	if i, ok := p.sel.Index(); ok {
		p.records[i].Selected = true
	}
	p.rebuild()
	p.SetDisplayTop(p.displayTop)
	p.SetDisplayLeft(p.displayLeft)
}

// Records returns the item records.
func (p *Pad) Records() []*Record { return p.records }

// Len returns the number of records.
func (p *Pad) Len() int { return len(p.records) }

// Selected returns the selected index.
func (p *Pad) Selected() (int, bool) { return p.sel.Index() }

// DisplayTop returns the first pad row shown in the viewport.
func (p *Pad) DisplayTop() int { return p.displayTop }

// DisplayLeft returns the first pad column shown in the viewport.
func (p *Pad) DisplayLeft() int { return p.displayLeft }

// ContentSize returns the summed height and widest width of the records.
func (p *Pad) ContentSize() (rows, cols int) { return p.contentRows, p.contentCols }

// PadSize returns the size of the off-screen surface. It is never smaller
// than the viewport.
func (p *Pad) PadSize() (rows, cols int) { return p.pad.Size() }

// VScrollBar returns the vertical scrollbar.
func (p *Pad) VScrollBar() *components.ScrollBar { return p.vbar }

// HScrollBar returns the horizontal scrollbar.
func (p *Pad) HScrollBar() *components.ScrollBar { return p.hbar }

func (p *Pad) selectionChanged(old, cur int) {
	if old >= 0 && old < len(p.records) {
		p.records[old].Selected = false
	}
	if cur >= 0 && cur < len(p.records) {
		p.records[cur].Selected = true
	}
}

// rebuild re-renders every record, restacks the tops and sizes the pad.
func (p *Pad) rebuild() {
	view := p.Extent()
	top, width := 0, 0
	for _, r := range p.records {
		r.render(view.Cols)
		r.Top = top
		top += r.Height
		width = max(width, r.Width)
	}
	p.contentRows, p.contentCols = top, width
	p.pad.Resize(max(top, view.Rows), max(width, view.Cols))
	p.updateScrollBars()
}

func (p *Pad) maxTop() int  { return max(0, p.contentRows-p.Extent().Rows) }
func (p *Pad) maxLeft() int { return max(0, p.contentCols-p.Extent().Cols) }

// SetDisplayTop scrolls to row, clamped to [0, contentRows-viewportRows].
func (p *Pad) SetDisplayTop(row int) {
	p.displayTop = min(max(row, 0), p.maxTop())
	p.updateScrollBars()
}

// SetDisplayLeft scrolls to col, clamped like SetDisplayTop.
func (p *Pad) SetDisplayLeft(col int) {
	p.displayLeft = min(max(col, 0), p.maxLeft())
	p.updateScrollBars()
}

func (p *Pad) updateScrollBars() {
	view := p.Extent()
	setBar(p.vbar, p.contentRows > view.Rows, p.displayTop, p.maxTop())
	setBar(p.hbar, p.contentCols > view.Cols, p.displayLeft, p.maxLeft())
}

func setBar(sb *components.ScrollBar, enabled bool, pos, span int) {
	sb.SetEnabled(enabled)
	if !enabled || span == 0 {
		_ = sb.SetPosition(nil)
		return
	}
	f := float64(pos) / float64(span)
	_ = sb.SetPosition(&f)
}

func (p *Pad) placeScrollBars() {
	tl, br, ext := p.RealTopLeft(), p.RealBottomRight(), p.Extent()
	p.vbar.Resize(ext.Rows, components.Position{Row: tl.Row + 1, Col: br.Col})
	p.hbar.Resize(ext.Cols, components.Position{Row: br.Row, Col: tl.Col + 1})
}

// Resize resizes and/or moves the pad and lays out its scrollbars again.
func (p *Pad) Resize(size components.Extent, topLeft components.Position, doResize, doMove bool) {
	p.Window.Resize(size, topLeft, doResize, doMove)
	p.placeScrollBars()
	p.rebuild()
	p.SetDisplayTop(p.displayTop)
	p.SetDisplayLeft(p.displayLeft)
}

func clip(err error) {
	if err != nil && !errors.Is(err, screen.ErrOverflow) {
		logger.Error("pad draw failed: %v", err)
	}
}

// render draws every record into the off-screen surface.
func (p *Pad) render() {
	look := p.Look()
	rows, cols := p.pad.Size()
	p.pad.Fill(look.BgChar, look.Bg)
	for _, r := range p.records {
		for i, l := range r.Lines {
			row := r.Top + i
			if row >= rows {
				return
			}
			clip(p.pad.FillRow(row, 0, cols, ' ', l.Bg))
			col := 0
			for _, s := range l.Segments {
				n, err := p.pad.Print(row, col, s.Text, s.Attr)
				clip(err)
				col += n
			}
		}
	}
}

// Redraw re-renders the records, draws the window and scrollbars and
// stages the viewport.
func (p *Pad) Redraw() {
	if !p.Shown() {
		return
	}
	p.rebuild()
	p.SetDisplayTop(p.displayTop)
	p.SetDisplayLeft(p.displayLeft)
	p.render()
	p.Window.Redraw()
	tl, ext := p.TopLeft(), p.Extent()
	p.scr.StageRegion(p.pad, p.displayTop, p.displayLeft, tl.Row, tl.Col, ext.Rows, ext.Cols)
}

// Select selects item i and brings it into view.
func (p *Pad) Select(i int) error {
	if err := p.sel.Set(i); err != nil {
		return err
	}
	p.rebuild()
	p.recentre()
	if p.onSelect != nil {
		p.onSelect(i)
	}
	return nil
}

// recentre puts the selected item's top row in the middle of the viewport.
func (p *Pad) recentre() {
	i, ok := p.sel.Index()
	if !ok {
		return
	}
	p.SetDisplayTop(p.records[i].Top - p.Extent().Rows/2)
}

// MoveSelection moves the selection by delta items. Moving past either end
// stops at the end and rings the bell once.
func (p *Pad) MoveSelection(delta int) {
	target, clamped := p.sel.Step(delta)
	if clamped {
		p.scr.Bell()
	}
	p.moveTo(target)
}

// moveTo selects target. The item being left collapses and target takes
// over its expanded state.
func (p *Pad) moveTo(target int) {
	cur, had := p.sel.Index()
	if target < 0 || target >= len(p.records) || (had && target == cur) {
		return
	}
	expanded := false
	if had {
		old := p.records[cur]
		expanded = old.Expanded
		if !old.Fixed {
			old.Expanded = false
		}
	}
	next := p.records[target]
	next.Expanded = next.Fixed || expanded
	if err := p.Select(target); err != nil {
		p.log.Error("move selection failed", "error", err)
	}
}

// ToggleExpanded flips the expanded state of the selected item.
func (p *Pad) ToggleExpanded() bool {
	i, ok := p.sel.Index()
	if !ok || p.records[i].Fixed {
		return false
	}
	p.records[i].Expanded = !p.records[i].Expanded
	p.rebuild()
	p.SetDisplayTop(p.displayTop)
	return true
}

// ScrollHorizontal moves the viewport delta columns, ringing the bell when
// it is already at the bound in that direction.
func (p *Pad) ScrollHorizontal(delta int) {
	target := p.displayLeft + delta
	if target < 0 || target > p.maxLeft() {
		p.scr.Bell()
	}
	p.SetDisplayLeft(target)
}

// ScrollVertical moves the viewport delta rows without changing the
// selection.
func (p *Pad) ScrollVertical(delta int) {
	p.SetDisplayTop(p.displayTop + delta)
}

// Activate runs the activate hook for the selected item.
func (p *Pad) Activate(state components.State) components.Result {
	i, ok := p.sel.Index()
	if !ok || p.onActivate == nil {
		return components.Continue
	}
	return p.onActivate(i, state)
}

// ProcessKey handles navigation, expansion and activation.
func (p *Pad) ProcessKey(msg tea.KeyMsg) components.Result {
	if !p.Shown() {
		return components.Continue
	}
	switch {
	case key.Matches(msg, p.keys.Up):
		p.MoveSelection(-1)
	case key.Matches(msg, p.keys.Down):
		p.MoveSelection(1)
	case key.Matches(msg, p.keys.PageUp):
		p.MoveSelection(-p.page)
	case key.Matches(msg, p.keys.PageDown):
		p.MoveSelection(p.page)
	case key.Matches(msg, p.keys.Home):
		p.moveTo(0)
	case key.Matches(msg, p.keys.End):
		p.moveTo(len(p.records) - 1)
	case key.Matches(msg, p.keys.Left):
		p.ScrollHorizontal(-1)
	case key.Matches(msg, p.keys.Right):
		p.ScrollHorizontal(1)
	case key.Matches(msg, p.keys.Expand):
		if !p.ToggleExpanded() {
			return components.Rejected
		}
	case key.Matches(msg, p.keys.Enter):
		return p.Activate(components.StateActivated)
	default:
		return components.Continue
	}
	return components.Handled
}

// ProcessMouse scrolls on the wheel and the scrollbars, selects on click
// and activates on double click.
func (p *Pad) ProcessMouse(ev components.Mouse) components.Result {
	if !p.Shown() || !p.IsMouseOver(ev.Pos) {
		return components.Continue
	}
	view := p.Extent()
	switch {
	case ev.Buttons.Has(components.WheelUp):
		p.ScrollVertical(-1)
		return components.Handled
	case ev.Buttons.Has(components.WheelDown):
		p.ScrollVertical(1)
		return components.Handled
	}
	if p.Bordered() {
		if part := p.vbar.PartAt(ev.Pos); part != components.PartNone {
			p.ScrollVertical(scrollBy(part, view.Rows, ev.Pos.Row-p.vbar.RealTopLeft().Row, p.vbar.HandleIndex()))
			return components.Handled
		}
		if part := p.hbar.PartAt(ev.Pos); part != components.PartNone {
			p.ScrollHorizontal(scrollBy(part, view.Cols, ev.Pos.Col-p.hbar.RealTopLeft().Col, p.hbar.HandleIndex()))
			return components.Handled
		}
	}
	if !p.IsInside(ev.Pos) {
		return components.Handled
	}
	row := ev.Pos.Row - p.TopLeft().Row + p.displayTop
	for i, r := range p.records {
		if !r.Contains(row) {
			continue
		}
		p.moveTo(i)
		if ev.Buttons.Has(components.LeftDoubleClick) {
			if res := p.Activate(components.StateLeftDoubleClick); res != components.Continue {
				return res
			}
		}
		return components.Handled
	}
	return components.Handled
}

// scrollBy converts a click on a scrollbar part into a scroll distance.
func scrollBy(part components.Part, page, at, handle int) int {
	switch part {
	case components.PartStart:
		return -1
	case components.PartEnd:
		return 1
	case components.PartPageStart:
		return -page
	case components.PartPageEnd:
		return page
	case components.PartTrack:
		if handle >= 0 && at < handle {
			return -page
		}
		return page
	}
	return 0
}
