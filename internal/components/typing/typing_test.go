package typing

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/vibechat/internal/components"
	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

func newPane(t *testing.T) (*Pane, *screen.Screen) {
	t.Helper()
	scr := screen.New(3, 12, io.Discard)
	th, err := theme.Builtin("mono")
	require.NoError(t, err)
	p, err := New(scr, th, components.Extent{Rows: 3, Cols: 12}, components.Position{})
	require.NoError(t, err)
	return p, scr
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPane_Typing(t *testing.T) {
	p, scr := newPane(t)

	assert.Equal(t, components.Handled, p.ProcessKey(runes("hello")))
	assert.Equal(t, "hello", p.Value())
	assert.Equal(t, 5, p.Cursor())

	p.Redraw()
	assert.Equal(t, "|hello     |", scr.Text(1))

	p.ProcessKey(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "hell", p.Value())
}

func TestPane_Placeholder(t *testing.T) {
	p, scr := newPane(t)
	p.Redraw()
	assert.Equal(t, "|Type a mes|", scr.Text(1))
}

func TestPane_KeepsCursorInView(t *testing.T) {
	p, scr := newPane(t)
	p.SetValue("abcdefghijklmno")
	p.SetFocused(true)

	assert.Equal(t, 6, p.Offset())
	assert.Contains(t, scr.Text(1), "ghijklmno ")
	assert.True(t, scr.CellAt(1, 10).Attr.Reverse != p.Look().Bg.Reverse)

	p.ProcessKey(tea.KeyMsg{Type: tea.KeyHome})
	p.Redraw()
	assert.Equal(t, 0, p.Offset())
}

func TestPane_Submit(t *testing.T) {
	p, _ := newPane(t)
	var sent []string
	p.SetOnSubmit(func(text string) components.Result {
		sent = append(sent, text)
		return components.Handled
	})

	assert.Equal(t, components.Rejected, p.ProcessKey(tea.KeyMsg{Type: tea.KeyEnter}), "empty input")

	p.ProcessKey(runes("hi"))
	assert.Equal(t, components.Handled, p.ProcessKey(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, []string{"hi"}, sent)
	assert.Empty(t, p.Value())
}

func TestPane_RejectedSubmitKeepsText(t *testing.T) {
	p, _ := newPane(t)
	p.SetOnSubmit(func(string) components.Result { return components.Rejected })
	p.SetValue("draft")

	assert.Equal(t, components.Rejected, p.ProcessKey(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "draft", p.Value())
}

func TestPane_GlobalKeysContinue(t *testing.T) {
	p, _ := newPane(t)
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyTab},
		{Type: tea.KeyShiftTab},
		{Type: tea.KeyEsc},
		{Type: tea.KeyF1},
		{Type: tea.KeyF7},
		{Type: tea.KeyCtrlQ},
	} {
		assert.Equal(t, components.Continue, p.ProcessKey(msg), msg.String())
	}
	assert.Empty(t, p.Value())
}

func TestPane_Mouse(t *testing.T) {
	p, _ := newPane(t)
	assert.Equal(t, components.Handled, p.ProcessMouse(components.Mouse{Pos: components.Position{Row: 1, Col: 3}, Buttons: components.LeftClick}))
	assert.Equal(t, components.Continue, p.ProcessMouse(components.Mouse{Pos: components.Position{Row: 5, Col: 3}, Buttons: components.LeftClick}))
}
