// Package typing implements the pane where outgoing messages are composed.
package typing

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/keys"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

// Placeholder is shown while the input is empty.
const Placeholder = "Type a message…"

// CharLimit bounds a single message.
const CharLimit = 2000

// Pane is a window around a single-line text input. The window draws the
// value itself so the cursor survives the cell-based screen.
type Pane struct {
	*components.Window

	input    textinput.Model
	offset   int
	onSubmit func(text string) components.Result
	keys     keys.Map
}

// New creates the typing pane.
func New(scr *screen.Screen, th *theme.Theme, ext components.Extent, topLeft components.Position) (*Pane, error) {
	w, err := components.NewWindow(scr, th, components.WindowOptions{ThemeKey: theme.TypingWindow, Title: "Message"}, ext, topLeft)
	if err != nil {
		return nil, err
	}
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.CharLimit = CharLimit
	ti.Prompt = ""
	ti.Focus()
	return &Pane{Window: w, input: ti, keys: keys.Default()}, nil
}

// SetOnSubmit installs the hook run when Enter is pressed on a non-empty
// value. The input is cleared unless the hook rejects the text.
func (p *Pane) SetOnSubmit(fn func(text string) components.Result) { p.onSubmit = fn }

// Value returns the text being composed.
func (p *Pane) Value() string { return p.input.Value() }

// SetValue replaces the text and moves the cursor to its end.
func (p *Pane) SetValue(s string) {
	p.input.SetValue(s)
	p.input.CursorEnd()
}

// Cursor returns the cursor position in runes.
func (p *Pane) Cursor() int { return p.input.Position() }

// Offset returns the first rune shown.
func (p *Pane) Offset() int { return p.offset }

// SetFocused repaints the whole pane so the cursor cell follows focus.
func (p *Pane) SetFocused(f bool) {
	p.Window.SetFocused(f)
	p.Redraw()
}

// Redraw draws the window and the visible part of the value with the
// cursor cell reversed.
func (p *Pane) Redraw() {
	if !p.Shown() {
		return
	}
	p.Paint()
	look := p.Look()
	value := []rune(p.input.Value())
	width := p.Extent().Cols
	if len(value) == 0 {
		p.PrintInterior(0, 0, Placeholder, look.Border)
	}
	p.scrollToCursor(value, width)

	col := 0
	pos := p.input.Position()
	for i := p.offset; i < len(value) && col < width; i++ {
		a := look.Bg
		if i == pos && p.Focused() {
			a.Reverse = !a.Reverse
		}
		col += p.PrintInterior(0, col, string(value[i]), a)
	}
	if pos >= len(value) && p.Focused() && col < width {
		a := look.Bg
		a.Reverse = !a.Reverse
		p.PrintInterior(0, col, " ", a)
	}
	p.Stage()
}

// scrollToCursor adjusts the offset so the cursor cell is inside width
// columns.
func (p *Pane) scrollToCursor(value []rune, width int) {
	pos := p.input.Position()
	if pos < p.offset {
		p.offset = pos
	}
	for p.offset < pos && columns(value, p.offset, pos)+1 > width {
		p.offset++
	}
	if p.offset > len(value) {
		p.offset = len(value)
	}
}

// columns is the display width of value[from:to].
func columns(value []rune, from, to int) int {
	return runewidth.StringWidth(string(value[from:min(to, len(value))]))
}

// passThrough reports whether msg belongs to the global shortcuts or is a
// function key.
func (p *Pane) passThrough(msg tea.KeyMsg) bool {
	if s := msg.String(); msg.Type != tea.KeyRunes && len(s) >= 2 && s[0] == 'f' && s[1] >= '1' && s[1] <= '9' {
		return true
	}
	return key.Matches(msg,
		p.keys.FocusNext, p.keys.FocusPrev, p.keys.Escape,
		p.keys.MenuFile, p.keys.MenuAccounts, p.keys.MenuHelp,
		p.keys.Quit, p.keys.Copy, p.keys.Reload,
	)
}

// ProcessKey edits the value. Enter submits it; focus, menu and other
// global keys are left for the caller.
func (p *Pane) ProcessKey(msg tea.KeyMsg) components.Result {
	if !p.Shown() || p.passThrough(msg) {
		return components.Continue
	}
	if key.Matches(msg, p.keys.Enter) {
		return p.submit()
	}
	p.input, _ = p.input.Update(msg)
	return components.Handled
}

func (p *Pane) submit() components.Result {
	text := p.input.Value()
	if text == "" || p.onSubmit == nil {
		return components.Rejected
	}
	r := p.onSubmit(text)
	if r != components.Rejected {
		p.input.Reset()
		p.offset = 0
	}
	return r
}

// ProcessMouse claims clicks inside the pane.
func (p *Pane) ProcessMouse(m components.Mouse) components.Result {
	if !p.Shown() || !p.IsMouseOver(m.Pos) {
		return components.Continue
	}
	return components.Handled
}
