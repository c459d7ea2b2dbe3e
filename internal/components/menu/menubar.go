package menu

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/keys"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// idle is the active index while no menu is open.
const idle = -1

// Bar is the one-row menu bar. Each item owns one drop-down menu.
//
// While idle, left/right move the selection and Enter or a click opens the
// selected menu. While open, keys go to the menu first; Escape and
// Backspace close it, Tab and Shift-Tab close it and continue so focus can
// move, left/right switch to the neighbouring menu.
type Bar struct {
	*components.Bar

	scr    *screen.Screen
	th     *theme.Theme
	items  []*components.Control
	menus  []*Menu
	sel    components.Selection
	active int
	keys   keys.Map
	log    *slog.Logger
}

// NewBar creates an empty menu bar across cols columns at topLeft.
func NewBar(scr *screen.Screen, th *theme.Theme, cols int, topLeft components.Position) (*Bar, error) {
	bar, err := components.NewBar(scr, th, theme.MenuBar, cols, topLeft)
	if err != nil {
		return nil, err
	}
	b := &Bar{
		Bar:    bar,
		scr:    scr,
		th:     th,
		active: idle,
		keys:   keys.Default(),
		log:    logger.ComponentLogger("menubar"),
	}
	b.sel = components.NewSelection(0, -1, b.selectionChanged)
	return b, nil
}

// Add appends a top-level item labelled label that opens m. The menu is
// placed under the item.
func (b *Bar) Add(label string, m *Menu) error {
	col := b.RealTopLeft().Col + 1
	if n := len(b.items); n > 0 {
		last := b.items[n-1]
		col = last.RealBottomRight().Col + 2
	}
	c, err := components.NewMenuBarItem(b.scr, b.th, components.ControlOptions{Label: label, NoEnter: true},
		components.Position{Row: b.RealTopLeft().Row, Col: col})
	if err != nil {
		return err
	}
	i := len(b.items)
	b.items = append(b.items, c)
	b.menus = append(b.menus, m)
	m.Move(components.Position{Row: b.RealTopLeft().Row + 1, Col: col})
	m.SetOnChoose(func(r components.Result) {
		if b.active == i {
			b.close()
		}
	})
	b.sel.SetBounds(0, len(b.items)-1)
	return nil
}

// Resize lays the bar out again across cols columns at topLeft.
func (b *Bar) Resize(cols int, topLeft components.Position) {
	b.Bar.Resize(cols, topLeft)
	col := topLeft.Col + 1
	for i, c := range b.items {
		c.Resize(c.NaturalWidth(), components.Position{Row: topLeft.Row, Col: col})
		b.menus[i].Move(components.Position{Row: topLeft.Row + 1, Col: col})
		b.menus[i].Relayout()
		col = c.RealBottomRight().Col + 2
	}
}

// Items returns the top-level items.
func (b *Bar) Items() []*components.Control { return b.items }

// Menu returns the menu owned by item i.
func (b *Bar) Menu(i int) *Menu { return b.menus[i] }

// Selected returns the selected top-level index.
func (b *Bar) Selected() (int, bool) { return b.sel.Index() }

// Select moves the top-level selection without opening anything.
func (b *Bar) Select(i int) error { return b.sel.Set(i) }

// ActiveMenu returns the open menu, or nil while idle.
func (b *Bar) ActiveMenu() *Menu {
	if b.active == idle {
		return nil
	}
	return b.menus[b.active]
}

// IsMenuActivated reports whether a menu is open.
func (b *Bar) IsMenuActivated() bool { return b.active != idle }

func (b *Bar) selectionChanged(old, cur int) {
	if old >= 0 && old < len(b.items) {
		b.items[old].SetSelected(false)
	}
	if cur >= 0 && cur < len(b.items) {
		b.items[cur].SetSelected(b.Focused() || b.active != idle)
	}
}

// Open selects item i and shows its menu, closing any other.
func (b *Bar) Open(i int) error {
	if err := b.sel.Set(i); err != nil {
		return err
	}
	if b.active != idle && b.active != i {
		b.menus[b.active].Deactivate()
	}
	b.active = i
	b.items[i].SetSelected(true)
	b.menus[i].Activate()
	b.log.Debug("menu opened", "menu", b.items[i].Text())
	return nil
}

// Close hides the open menu, if any.
func (b *Bar) Close() { b.close() }

func (b *Bar) close() {
	if b.active == idle {
		return
	}
	b.menus[b.active].Deactivate()
	b.log.Debug("menu closed", "menu", b.items[b.active].Text())
	b.active = idle
	if !b.Focused() {
		if i, ok := b.sel.Index(); ok {
			b.items[i].SetSelected(false)
		}
	}
}

func (b *Bar) step(delta int) {
	n := len(b.items)
	if n == 0 {
		return
	}
	cur, ok := b.sel.Index()
	if !ok {
		cur = 0
		delta = 0
	}
	_ = b.sel.Set(((cur+delta)%n + n) % n)
}

// SetFocused marks the selected item as selected while the bar holds focus.
func (b *Bar) SetFocused(f bool) {
	b.Bar.SetFocused(f)
	if f {
		if _, ok := b.sel.Index(); !ok && len(b.items) > 0 {
			_ = b.sel.Set(0)
		}
	} else {
		b.close()
	}
	if i, ok := b.sel.Index(); ok {
		b.items[i].SetSelected(f)
	}
	b.Redraw()
}

// Redraw draws the bar, its items, and the open menu on top.
func (b *Bar) Redraw() {
	if !b.Visible() {
		return
	}
	b.Bar.Redraw()
	for _, c := range b.items {
		c.Redraw()
	}
	if m := b.ActiveMenu(); m != nil {
		m.Redraw()
	}
}

// ProcessKey runs the idle/open state machine.
func (b *Bar) ProcessKey(msg tea.KeyMsg) components.Result {
	if b.active == idle {
		switch {
		case key.Matches(msg, b.keys.Left):
			b.step(-1)
			return components.Handled
		case key.Matches(msg, b.keys.Right):
			b.step(1)
			return components.Handled
		case key.Matches(msg, b.keys.Enter):
			if i, ok := b.sel.Index(); ok {
				_ = b.Open(i)
				return components.Handled
			}
		}
		return components.Continue
	}

	if r := b.menus[b.active].ProcessKey(msg); r != components.Continue {
		return r
	}
	switch {
	case key.Matches(msg, b.keys.FocusNext, b.keys.FocusPrev):
		b.close()
		return components.Continue
	case key.Matches(msg, b.keys.Escape, b.keys.Back):
		b.close()
		return components.Handled
	case key.Matches(msg, b.keys.Left, b.keys.Right):
		delta := 1
		if key.Matches(msg, b.keys.Left) {
			delta = -1
		}
		b.close()
		b.step(delta)
		i, _ := b.sel.Index()
		_ = b.Open(i)
		return components.Handled
	}
	return components.Rejected
}

// ProcessMouse opens, toggles or moves between menus on clicks on the bar
// and forwards clicks inside the open menu. A click anywhere else closes
// the open menu.
func (b *Bar) ProcessMouse(ev components.Mouse) components.Result {
	if m := b.ActiveMenu(); m != nil && m.IsMouseOver(ev.Pos) {
		return m.ProcessMouse(ev)
	}
	click := ev.Buttons.Has(components.LeftClick | components.LeftDoubleClick)
	for i, c := range b.items {
		if !c.IsMouseOver(ev.Pos) {
			continue
		}
		if !click {
			return components.Handled
		}
		if b.active == i {
			b.close()
		} else {
			_ = b.Open(i)
		}
		return components.Handled
	}
	if b.active != idle && click {
		b.close()
		return components.Handled
	}
	if b.IsMouseOver(ev.Pos) {
		return components.Handled
	}
	return components.Continue
}
