package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/layout"
)

// clickTracker turns two presses of the same button at the same cell
// within threshold into a double click.
type clickTracker struct {
	threshold time.Duration
	now       func() time.Time

	armed  bool
	button tea.MouseButton
	pos    components.Position
	at     time.Time
}

// press records a press and reports whether it completes a double click.
// The press after a double click starts over.
func (c *clickTracker) press(b tea.MouseButton, p components.Position) bool {
	t := c.now()
	if c.armed && b == c.button && p == c.pos && t.Sub(c.at) <= c.threshold {
		c.armed = false
		return true
	}
	c.armed, c.button, c.pos, c.at = true, b, p, t
	return false
}

// decodeMouse converts a terminal mouse event. Releases and motion are
// not component input.
func (m *Model) decodeMouse(msg tea.MouseMsg) (components.Mouse, bool) {
	ev := components.Mouse{Pos: components.Position{Row: msg.Y, Col: msg.X}}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ev.Buttons = components.WheelUp
	case tea.MouseButtonWheelDown:
		ev.Buttons = components.WheelDown
	case tea.MouseButtonLeft, tea.MouseButtonRight:
		if msg.Action != tea.MouseActionPress {
			return ev, false
		}
		double := m.clicks.press(msg.Button, ev.Pos)
		switch {
		case msg.Button == tea.MouseButtonLeft && double:
			ev.Buttons = components.LeftDoubleClick
		case msg.Button == tea.MouseButtonLeft:
			ev.Buttons = components.LeftClick
		case double:
			ev.Buttons = components.RightDoubleClick
		default:
			ev.Buttons = components.RightClick
		}
	default:
		return ev, false
	}
	return ev, true
}

// pane is a focusable component with a screen area.
type pane interface {
	components.Focusable
	IsMouseOver(p components.Position) bool
}

// handleMouse routes an event in fixed priority: dialog, menu bar and its
// open menu, contacts, messages, typing, status bar. A click focuses what
// it lands on.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.handleDrag(msg) {
		return
	}
	ev, ok := m.decodeMouse(msg)
	if !ok {
		return
	}
	if m.dialog != nil {
		m.settleDialog(m.dialog.ProcessMouse(ev))
		return
	}

	click := ev.Buttons.Has(components.LeftClick | components.LeftDoubleClick | components.RightClick | components.RightDoubleClick)
	if m.menuBar.IsMenuActivated() || m.menuBar.IsMouseOver(ev.Pos) {
		if click && !m.menuBar.IsMenuActivated() {
			m.ring.Focus(m.menuBar)
		}
		if r := m.menuBar.ProcessMouse(ev); r != components.Continue {
			m.settle(m.menuBar, r)
			return
		}
	}

	for _, p := range []pane{m.contacts, m.messages, m.typing} {
		if !p.IsMouseOver(ev.Pos) {
			continue
		}
		if click {
			m.ring.Focus(p)
		}
		m.settle(p, p.ProcessMouse(ev))
		return
	}
	m.settle(m.status, m.status.ProcessMouse(ev))
}

// handleDrag resizes the contacts pane while the left button drags the
// divider. It reports whether it consumed the event.
func (m *Model) handleDrag(msg tea.MouseMsg) bool {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
		m.dialog == nil && !m.menuBar.IsMenuActivated() && m.onDivider(msg.X, msg.Y):
		m.resizing = true
		return true
	case msg.Action == tea.MouseActionMotion && m.resizing:
		p := layout.ClampPercent(msg.X * 100 / max(m.width, 1))
		if p != m.contactsPercent {
			m.contactsPercent = p
			m.relayout()
			m.redrawAll()
		}
		return true
	case msg.Action == tea.MouseActionRelease && m.resizing:
		m.resizing = false
		return true
	}
	return false
}

// onDivider reports whether x, y is on the left border of the right-hand
// panes.
func (m *Model) onDivider(x, y int) bool {
	l := m.layout
	return x == l.ContactsWidth && y >= l.MenuHeight && y < l.MenuHeight+l.MainHeight
}
