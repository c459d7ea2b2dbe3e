package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/vibechat/internal/theme"
)

func TestWindow_Redraw(t *testing.T) {
	scr := testScreen(5, 20)
	w, err := NewWindow(scr, monoTheme(t), WindowOptions{ThemeKey: theme.ContactsWindow, Title: "Chat"}, Extent{Rows: 5, Cols: 20}, Position{})
	require.NoError(t, err)

	w.Redraw()

	assert.Equal(t, "+------[Chat]------+", scr.Text(0))
	assert.Equal(t, "|                  |", scr.Text(2))
	assert.Equal(t, "+------------------+", scr.Text(4))
}

func TestWindow_TitleIsTruncated(t *testing.T) {
	scr := testScreen(3, 10)
	w, err := NewWindow(scr, monoTheme(t), WindowOptions{ThemeKey: theme.ContactsWindow, Title: "Conversations"}, Extent{Rows: 3, Cols: 10}, Position{})
	require.NoError(t, err)

	w.Redraw()
	assert.Equal(t, "+[Conve…]+", scr.Text(0))
}

func TestWindow_SetFocusedRestagesOnlyTheFrame(t *testing.T) {
	scr := testScreen(5, 20)
	th := monoTheme(t)
	w, err := NewWindow(scr, th, WindowOptions{ThemeKey: theme.MessagesWindow}, Extent{Rows: 5, Cols: 20}, Position{})
	require.NoError(t, err)
	w.Redraw()
	scr.Commit()

	b, err := NewButton(scr, th, ControlOptions{Label: "Ok"}, Position{Row: 2, Col: 2})
	require.NoError(t, err)
	w.AddChild(b)

	w.SetFocused(true)
	assert.Equal(t, 4, scr.Pending())
	assert.Equal(t, w.Look().FrameFocus.TopLeft, string(scr.CellAt(0, 0).Rune))
	assert.Equal(t, w.Look().BorderFocus, scr.CellAt(0, 5).Attr)

	w.SetFocused(false)
	assert.Equal(t, w.Look().Frame.TopLeft, string(scr.CellAt(0, 0).Rune))
}

func TestWindow_Resize(t *testing.T) {
	scr := testScreen(10, 30)
	w, err := NewWindow(scr, monoTheme(t), WindowOptions{ThemeKey: theme.TypingWindow}, Extent{Rows: 4, Cols: 10}, Position{Row: 1, Col: 1})
	require.NoError(t, err)

	w.Resize(Extent{Rows: 6, Cols: 12}, Position{}, true, false)
	assert.Equal(t, Extent{Rows: 6, Cols: 12}, w.RealExtent())
	assert.Equal(t, Position{Row: 1, Col: 1}, w.RealTopLeft())

	w.Resize(Extent{}, Position{Row: 6, Col: 25}, false, true)
	assert.Equal(t, Extent{Rows: 4, Cols: 5}, w.RealExtent(), "clipped to the screen")
	assert.Equal(t, Extent{Rows: 2, Cols: 3}, w.Extent())
}

func TestWindow_Dispatch(t *testing.T) {
	scr := testScreen(5, 20)
	th := monoTheme(t)
	w, err := NewWindow(scr, th, WindowOptions{ThemeKey: theme.DialogWindow}, Extent{Rows: 5, Cols: 20}, Position{})
	require.NoError(t, err)

	var order []string
	b, err := NewButton(scr, th, ControlOptions{
		Label:    "Ok",
		Callback: func(State, ...any) Result { order = append(order, "button"); return Rejected },
	}, Position{Row: 2, Col: 2})
	require.NoError(t, err)
	w.AddChild(b)
	w.SetKeyHandler(func(tea.KeyMsg) Result { order = append(order, "window"); return Handled })
	w.SetMouseHandler(func(Mouse) Result { order = append(order, "mouse"); return Handled })

	assert.Equal(t, Rejected, w.ProcessKey(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, Handled, w.ProcessKey(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, []string{"button", "window"}, order)

	order = nil
	assert.Equal(t, Handled, w.ProcessMouse(Mouse{Pos: Position{Row: 4, Col: 19}, Buttons: LeftClick}))
	assert.Equal(t, Continue, w.ProcessMouse(Mouse{Pos: Position{Row: 7, Col: 0}, Buttons: LeftClick}))
	assert.Equal(t, []string{"mouse"}, order)

	w.SetVisible(false)
	assert.Equal(t, Continue, w.ProcessKey(tea.KeyMsg{Type: tea.KeyTab}))
}
