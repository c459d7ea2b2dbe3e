package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/avitaltamir/vibechat/internal/keys"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// DefaultMarker toggles accelerator runs in control labels: "_F_ile".
const DefaultMarker = '_'

// ControlOptions configures an interactive control.
type ControlOptions struct {
	Label string
	// Marker toggles accelerator runs in Label. Zero means DefaultMarker.
	Marker   rune
	Callback Callback
	Args     []any
	// Triggers are the mouse buttons that run the callback. Zero keeps the
	// constructor's default.
	Triggers ButtonState
	// EnterState is passed to the callback when Enter activates the control.
	// Empty means StateActivated.
	EnterState State
	// NoEnter disables activation by the Enter key.
	NoEnter  bool
	Disabled bool
	// Width of the control. Zero sizes it to the label.
	Width int
}

type labelRun struct {
	text  string
	accel bool
}

// Control is a labelled, selectable, activatable region: a button, a menu
// item or a menu-bar item. The kinds differ only by theme key and default
// triggers.
type Control struct {
	Base
	looks theme.ControlLooks

	label    string
	runs     []labelRun
	accel    rune
	selected bool
	enabled  bool

	callback   Callback
	args       []any
	triggers   ButtonState
	enterState State
	enter      key.Binding
}

// NewControl creates a control from the theme component key.
func NewControl(scr *screen.Screen, th *theme.Theme, themeKey string, opts ControlOptions, topLeft Position) (*Control, error) {
	looks, err := th.Control(themeKey)
	if err != nil {
		return nil, err
	}
	c := &Control{
		looks:      looks,
		enabled:    !opts.Disabled,
		callback:   opts.Callback,
		args:       opts.Args,
		triggers:   opts.Triggers,
		enterState: opts.EnterState,
		enter:      keys.Default().Enter,
	}
	if c.enterState == "" {
		c.enterState = StateActivated
	}
	if opts.NoEnter {
		c.enter.SetEnabled(false)
	}
	c.setLabel(opts.Label, opts.Marker)
	width := opts.Width
	if width <= 0 {
		width = c.NaturalWidth()
	}
	c.Base = newBase(scr, Extent{Rows: 1, Cols: width}, topLeft, false, logger.ComponentLogger("control"))
	return c, nil
}

// NewButton creates a dialog button. Left clicks activate it.
func NewButton(scr *screen.Screen, th *theme.Theme, opts ControlOptions, topLeft Position) (*Control, error) {
	if opts.Triggers == 0 {
		opts.Triggers = LeftClick
	}
	return NewControl(scr, th, theme.Button, opts, topLeft)
}

// NewMenuItem creates a drop-down menu entry. Left clicks and double clicks
// activate it.
func NewMenuItem(scr *screen.Screen, th *theme.Theme, opts ControlOptions, topLeft Position) (*Control, error) {
	if opts.Triggers == 0 {
		opts.Triggers = LeftClick | LeftDoubleClick
	}
	return NewControl(scr, th, theme.MenuItem, opts, topLeft)
}

// NewMenuBarItem creates a top-level menu-bar entry.
func NewMenuBarItem(scr *screen.Screen, th *theme.Theme, opts ControlOptions, topLeft Position) (*Control, error) {
	if opts.Triggers == 0 {
		opts.Triggers = LeftClick
	}
	return NewControl(scr, th, theme.MenuBarItem, opts, topLeft)
}

// parseLabel splits a label into plain and accelerator runs. Each marker
// toggles between the two and is dropped.
func parseLabel(label string, marker rune) []labelRun {
	var runs []labelRun
	var b strings.Builder
	accel := false
	for _, r := range label {
		if r == marker {
			if b.Len() > 0 {
				runs = append(runs, labelRun{text: b.String(), accel: accel})
				b.Reset()
			}
			accel = !accel
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		runs = append(runs, labelRun{text: b.String(), accel: accel})
	}
	return runs
}

func (c *Control) setLabel(label string, marker rune) {
	if marker == 0 {
		marker = DefaultMarker
	}
	c.label = label
	c.runs = parseLabel(label, marker)
	c.accel = 0
	for _, run := range c.runs {
		if run.accel {
			for _, r := range run.text {
				c.accel = unicode.ToLower(r)
				break
			}
			break
		}
	}
}

// Label returns the label as configured, markers included.
func (c *Control) Label() string { return c.label }

// Text returns the label with the markers removed.
func (c *Control) Text() string {
	var b strings.Builder
	for _, run := range c.runs {
		b.WriteString(run.text)
	}
	return b.String()
}

// Accelerator returns the lower-cased first accelerator rune, or 0.
func (c *Control) Accelerator() rune { return c.accel }

// NaturalWidth is the width that fits lead glyph, label and tail glyph.
func (c *Control) NaturalWidth() int {
	return runewidth.StringWidth(c.Text()) + 2
}

// Selected reports whether the control is drawn selected.
func (c *Control) Selected() bool { return c.selected }

// SetSelected changes the selected look. Becoming selected redraws.
func (c *Control) SetSelected(s bool) {
	was := c.selected
	c.selected = s
	if s && !was {
		c.Redraw()
	}
}

// Enabled reports whether the control can be activated.
func (c *Control) Enabled() bool { return c.enabled }

// SetEnabled switches between the enabled and disabled looks.
func (c *Control) SetEnabled(e bool) { c.enabled = e }

// SetVisible shows or hides the control. Becoming visible redraws.
func (c *Control) SetVisible(v bool) {
	was := c.visible
	c.visible = v
	if v && !was {
		c.Redraw()
	}
}

// Resize moves the control and sets its width.
func (c *Control) Resize(width int, topLeft Position) {
	c.resizeSurface(Extent{Rows: 1, Cols: width}, topLeft)
}

// Move places the control at topLeft keeping its width.
func (c *Control) Move(topLeft Position) {
	c.Resize(c.RealExtent().Cols, topLeft)
}

// Redraw draws lead glyph, label runs and tail glyph, padding the label to
// the control width.
func (c *Control) Redraw() {
	if !c.visible {
		return
	}
	look := c.looks.For(c.selected, c.enabled)
	width := c.RealExtent().Cols
	c.FillRow(0, 0, width, ' ', look.Label)
	c.Put(0, 0, look.LeadChar, look.Lead)
	col := 1
	for _, run := range c.runs {
		a := look.Label
		if run.accel {
			a = look.Accel
		}
		text := runewidth.Truncate(run.text, max(width-1-col, 0), "")
		col += c.Print(0, col, text, a)
	}
	c.Put(0, width-1, look.TailChar, look.Tail)
	c.Stage()
}

// Activate runs the callback with state. Without a callback the activation
// is still handled.
func (c *Control) Activate(state State) Result {
	if !c.enabled {
		return Rejected
	}
	if c.callback == nil {
		return Handled
	}
	c.log.Debug("activated", "label", c.Text(), "state", state)
	return c.callback(state, c.args...)
}

// ProcessKey activates the control on Enter.
func (c *Control) ProcessKey(msg tea.KeyMsg) Result {
	if !key.Matches(msg, c.enter) {
		return Continue
	}
	return c.Activate(c.enterState)
}

// ProcessMouse activates the control when one of its trigger buttons is
// pressed over it.
func (c *Control) ProcessMouse(m Mouse) Result {
	if !c.visible || !c.IsMouseOver(m.Pos) {
		return Continue
	}
	var button ButtonState
	var state State
	switch {
	case m.Buttons.Has(LeftDoubleClick):
		button, state = LeftDoubleClick, StateLeftDoubleClick
	case m.Buttons.Has(LeftClick):
		button, state = LeftClick, StateLeftClick
	case m.Buttons.Has(RightDoubleClick):
		button, state = RightDoubleClick, StateRightDoubleClick
	case m.Buttons.Has(RightClick):
		button, state = RightClick, StateRightClick
	default:
		return Continue
	}
	if !c.triggers.Has(button) {
		return Handled
	}
	return c.Activate(state)
}
