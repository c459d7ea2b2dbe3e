// Package dialog provides the modal message boxes: the quit confirmation
// and the informational boxes of the Help menu.
package dialog

import (
	"log/slog"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/keys"
	"github.com/avitaltamir/vibechat/internal/logger"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

const (
	minWidth  = 20
	buttonGap = 2
)

// Button describes one answer of a dialog.
type Button struct {
	// Label may mark an accelerator: "_Y_es".
	Label string
	// Result is what the dialog returns when this button answers.
	Result components.Result
}

// Options describes a dialog.
type Options struct {
	Title   string
	Lines   []string
	Buttons []Button
	// Default is the button selected when the dialog opens.
	Default int
	// Cancel is the button Escape answers with.
	Cancel int
}

// Dialog is a bordered window with text lines over a row of buttons. It is
// shown modally: while open it receives every key.
type Dialog struct {
	*components.Window

	lines   []string
	buttons []*components.Control
	sel     int
	cancel  int
	keys    keys.Map
	log     *slog.Logger
}

// New builds a dialog sized to its content at the screen origin. Move it
// into place with Move.
func New(scr *screen.Screen, th *theme.Theme, opts Options) (*Dialog, error) {
	width := runewidth.StringWidth(opts.Title) + 4
	for _, l := range opts.Lines {
		width = max(width, runewidth.StringWidth(l)+4)
	}
	ext := components.Extent{Rows: len(opts.Lines) + 4, Cols: width}
	w, err := components.NewWindow(scr, th, components.WindowOptions{ThemeKey: theme.DialogWindow, Title: opts.Title, Hidden: true}, ext, components.Position{})
	if err != nil {
		return nil, err
	}
	d := &Dialog{Window: w, lines: opts.Lines, cancel: opts.Cancel, keys: keys.Default(), log: logger.ComponentLogger("dialog")}

	row := 0
	for _, b := range opts.Buttons {
		c, err := components.NewButton(scr, th, components.ControlOptions{
			Label:    b.Label,
			Callback: func(components.State, ...any) components.Result { return b.Result },
			NoEnter:  true,
		}, components.Position{})
		if err != nil {
			return nil, err
		}
		c.SetVisible(false)
		row += c.NaturalWidth()
		d.buttons = append(d.buttons, c)
		w.AddChild(c)
	}
	row += buttonGap * max(len(d.buttons)-1, 0)
	if need := max(row+4, minWidth); need > width {
		w.Resize(components.Extent{Rows: ext.Rows, Cols: need}, components.Position{}, true, false)
	}
	d.sel = min(max(opts.Default, 0), max(len(d.buttons)-1, 0))
	if len(d.buttons) > 0 {
		d.buttons[d.sel].SetSelected(true)
	}
	d.Move(components.Position{})
	return d, nil
}

// NewConfirm builds a Yes/No question. Yes answers with yes; No and Escape
// answer Rejected. No is the default.
func NewConfirm(scr *screen.Screen, th *theme.Theme, title string, yes components.Result, lines ...string) (*Dialog, error) {
	return New(scr, th, Options{
		Title: title,
		Lines: lines,
		Buttons: []Button{
			{Label: "_Y_es", Result: yes},
			{Label: "_N_o", Result: components.Rejected},
		},
		Default: 1,
		Cancel:  1,
	})
}

// NewInfo builds a box with a single OK button that closes it.
func NewInfo(scr *screen.Screen, th *theme.Theme, title string, lines ...string) (*Dialog, error) {
	return New(scr, th, Options{
		Title:   title,
		Lines:   lines,
		Buttons: []Button{{Label: "_O_K", Result: components.Rejected}},
	})
}

// Buttons returns the button controls in order.
func (d *Dialog) Buttons() []*components.Control { return d.buttons }

// Selected returns the index of the selected button.
func (d *Dialog) Selected() int { return d.sel }

// Lines returns the text of the dialog.
func (d *Dialog) Lines() []string { return d.lines }

// Move places the dialog's top-left corner and lays its buttons out
// centred on the last interior row.
func (d *Dialog) Move(topLeft components.Position) {
	d.Resize(d.RealExtent(), topLeft, false, true)
	total := buttonGap * max(len(d.buttons)-1, 0)
	for _, b := range d.buttons {
		total += b.NaturalWidth()
	}
	tl, ext := d.TopLeft(), d.Extent()
	col := tl.Col + max((ext.Cols-total)/2, 0)
	row := tl.Row + ext.Rows - 1
	for _, b := range d.buttons {
		b.Resize(b.NaturalWidth(), components.Position{Row: row, Col: col})
		col += b.NaturalWidth() + buttonGap
	}
}

// Open shows the dialog and draws it.
func (d *Dialog) Open() {
	d.Window.SetVisible(true)
	for _, b := range d.buttons {
		b.SetVisible(true)
	}
	d.Redraw()
}

// Close hides the dialog. The caller repaints whatever it covered.
func (d *Dialog) Close() {
	d.Window.SetVisible(false)
	for _, b := range d.buttons {
		b.SetVisible(false)
	}
}

// Redraw paints the frame, the text lines and the buttons.
func (d *Dialog) Redraw() {
	if !d.Shown() {
		return
	}
	d.Paint()
	look := d.Look()
	for i, l := range d.lines {
		d.PrintInterior(i, 1, l, look.Bg)
	}
	d.Stage()
	for _, b := range d.buttons {
		b.Redraw()
	}
}

func (d *Dialog) selectButton(i int) {
	n := len(d.buttons)
	if n == 0 {
		return
	}
	i = ((i % n) + n) % n
	if i == d.sel {
		return
	}
	d.buttons[d.sel].SetSelected(false)
	d.buttons[d.sel].Redraw()
	d.sel = i
	d.buttons[d.sel].SetSelected(true)
}

func (d *Dialog) answer(i int) components.Result {
	if i < 0 || i >= len(d.buttons) {
		return components.Rejected
	}
	r := d.buttons[i].Activate(components.StateActivated)
	d.log.Debug("answered", "button", d.buttons[i].Text(), "result", r)
	return r
}

// ProcessKey moves between buttons or answers. Keys the dialog has no use
// for return Continue; the caller must not pass them on while the dialog
// is modal.
func (d *Dialog) ProcessKey(msg tea.KeyMsg) components.Result {
	if !d.Shown() {
		return components.Continue
	}
	switch {
	case key.Matches(msg, d.keys.Left, d.keys.FocusPrev):
		d.selectButton(d.sel - 1)
		return components.Handled
	case key.Matches(msg, d.keys.Right, d.keys.FocusNext):
		d.selectButton(d.sel + 1)
		return components.Handled
	case key.Matches(msg, d.keys.Enter):
		return d.answer(d.sel)
	case key.Matches(msg, d.keys.Escape):
		return d.answer(d.cancel)
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		r := unicode.ToLower(msg.Runes[0])
		for i, b := range d.buttons {
			if b.Accelerator() != 0 && b.Accelerator() == r {
				d.selectButton(i)
				return d.answer(i)
			}
		}
	}
	return components.Continue
}

// ProcessMouse answers with a clicked button. Other clicks inside the
// dialog are Handled; clicks outside are Continue.
func (d *Dialog) ProcessMouse(m components.Mouse) components.Result {
	if !d.Shown() || !d.IsMouseOver(m.Pos) {
		return components.Continue
	}
	for i, b := range d.buttons {
		if !b.IsMouseOver(m.Pos) {
			continue
		}
		d.selectButton(i)
		if r := b.ProcessMouse(m); r != components.Continue {
			return r
		}
	}
	return components.Handled
}
