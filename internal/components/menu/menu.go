// Package menu implements drop-down menus and the menu bar that owns them.
package menu

import (
	"log/slog"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/keys"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Entry describes one menu item.
type Entry struct {
	Label    string
	Callback components.Callback
	Args     []any
	Disabled bool
}

// Menu is a bordered drop-down list of menu items with a selection. It is
// either fully shown (active) or fully hidden.
type Menu struct {
	*components.Window

	scr      *screen.Screen
	th       *theme.Theme
	items    []*components.Control
	sel      components.Selection
	active   bool
	onChoose func(components.Result)
	keys     keys.Map
	log      *slog.Logger
}

// New creates a hidden menu using the window theme key themeKey.
func New(scr *screen.Screen, th *theme.Theme, themeKey string, entries []Entry, topLeft components.Position) (*Menu, error) {
	w, err := components.NewWindow(scr, th, components.WindowOptions{ThemeKey: themeKey, Hidden: true}, components.Extent{}, topLeft)
	if err != nil {
		return nil, err
	}
	m := &Menu{
		Window: w,
		scr:    scr,
		th:     th,
		keys:   keys.Default(),
		log:    logger.ComponentLogger("menu"),
	}
	if err := m.SetEntries(entries); err != nil {
		return nil, err
	}
	return m, nil
}

// SetEntries replaces the items and resizes the menu to fit them. The
// selection is reset.
func (m *Menu) SetEntries(entries []Entry) error {
	width := 0
	items := make([]*components.Control, 0, len(entries))
	for _, e := range entries {
		c, err := components.NewMenuItem(m.scr, m.th, components.ControlOptions{
			Label:    e.Label,
			Callback: e.Callback,
			Args:     e.Args,
			Disabled: e.Disabled,
		}, components.Position{})
		if err != nil {
			return err
		}
		c.SetVisible(m.active)
		width = max(width, c.NaturalWidth())
		items = append(items, c)
	}
	m.items = items
	m.sel = components.NewSelection(0, len(items)-1, m.selectionChanged)
	m.layout(width)
	return nil
}

func (m *Menu) layout(width int) {
	m.Window.Resize(components.Extent{Rows: len(m.items) + 2, Cols: width + 2}, components.Position{}, true, false)
	m.place()
	for _, c := range m.items {
		c.Resize(width, c.RealTopLeft())
	}
}

// place positions the items inside the window.
func (m *Menu) place() {
	m.Window.ClearChildren()
	tl := m.Window.TopLeft()
	for i, c := range m.items {
		c.Move(components.Position{Row: tl.Row + i, Col: tl.Col})
		m.Window.AddChild(c)
	}
}

// Relayout resizes the menu to fit its items at the current position.
func (m *Menu) Relayout() {
	width := 0
	for _, c := range m.items {
		width = max(width, c.NaturalWidth())
	}
	m.layout(width)
}

// Move places the menu's top-left corner at p.
func (m *Menu) Move(p components.Position) {
	m.Window.Resize(components.Extent{}, p, false, true)
	m.place()
}

func (m *Menu) selectionChanged(old, cur int) {
	if old >= 0 && old < len(m.items) {
		m.items[old].SetSelected(false)
	}
	if cur >= 0 && cur < len(m.items) {
		m.items[cur].SetSelected(true)
	}
}

// Items returns the menu items in order.
func (m *Menu) Items() []*components.Control { return m.items }

// Selected returns the selected item index.
func (m *Menu) Selected() (int, bool) { return m.sel.Index() }

// Select selects item i.
func (m *Menu) Select(i int) error { return m.sel.Set(i) }

// Active reports whether the menu is shown.
func (m *Menu) Active() bool { return m.active }

// SetOnChoose installs a hook run after an item has been activated, with
// the item's result.
func (m *Menu) SetOnChoose(fn func(components.Result)) { m.onChoose = fn }

// Activate shows the menu, selecting the first item if none is selected.
func (m *Menu) Activate() {
	m.active = true
	for _, c := range m.items {
		c.SetVisible(true)
	}
	if _, ok := m.sel.Index(); !ok && !m.sel.Empty() {
		_ = m.sel.Set(0)
	}
	m.Window.SetVisible(true)
}

// Deactivate hides the menu. The caller repaints what was underneath.
func (m *Menu) Deactivate() {
	m.active = false
	m.Window.SetVisible(false)
	for _, c := range m.items {
		c.SetVisible(false)
	}
}

// Redraw draws the menu only while it is active.
func (m *Menu) Redraw() {
	if !m.active {
		return
	}
	m.Window.Redraw()
}

func (m *Menu) choose(i int) components.Result {
	if err := m.sel.Set(i); err != nil {
		m.log.Error("choose failed", "error", err)
		return components.Rejected
	}
	r := m.items[i].Activate(components.StateActivated)
	m.log.Debug("item chosen", "item", m.items[i].Text(), "result", r)
	if m.onChoose != nil && r != components.Rejected {
		m.onChoose(r)
	}
	return r
}

func (m *Menu) step(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	cur, ok := m.sel.Index()
	switch {
	case !ok && delta > 0:
		_ = m.sel.Set(0)
	case !ok:
		_ = m.sel.Set(n - 1)
	default:
		_ = m.sel.Set(((cur+delta)%n + n) % n)
	}
}

// ProcessKey moves the selection, activates the selected item on Enter and
// activates an item by its accelerator.
func (m *Menu) ProcessKey(msg tea.KeyMsg) components.Result {
	if !m.active {
		return components.Continue
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.step(-1)
		return components.Handled
	case key.Matches(msg, m.keys.Down):
		m.step(1)
		return components.Handled
	case key.Matches(msg, m.keys.Enter):
		if i, ok := m.sel.Index(); ok {
			return m.choose(i)
		}
		return components.Handled
	case keys.IsPrintable(msg):
		r := unicode.ToLower(msg.Runes[0])
		for i, c := range m.items {
			if c.Accelerator() == r {
				return m.choose(i)
			}
		}
	}
	return components.Continue
}

// ProcessMouse selects and activates the item under the pointer. Clicks on
// the frame are swallowed.
func (m *Menu) ProcessMouse(ev components.Mouse) components.Result {
	if !m.active || !m.Window.IsMouseOver(ev.Pos) {
		return components.Continue
	}
	for i, c := range m.items {
		if !c.IsMouseOver(ev.Pos) {
			continue
		}
		if err := m.sel.Set(i); err != nil {
			return components.Rejected
		}
		r := c.ProcessMouse(ev)
		chose := ev.Buttons.Has(components.LeftClick | components.LeftDoubleClick)
		if chose && r != components.Continue && r != components.Rejected && m.onChoose != nil {
			m.onChoose(r)
		}
		if r == components.Continue {
			return components.Handled
		}
		return r
	}
	return components.Handled
}
