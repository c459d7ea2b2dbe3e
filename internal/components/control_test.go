package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label string
		text  string
		accel rune
	}{
		{"_F_ile", "File", 'f'},
		{"E_x_it", "Exit", 'x'},
		{"Plain", "Plain", 0},
		{"_Q_uit _N_ow", "Quit Now", 'q'},
		{"", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			c, err := NewMenuItem(testScreen(1, 20), monoTheme(t), ControlOptions{Label: tt.label}, Position{})
			require.NoError(t, err)
			assert.Equal(t, tt.text, c.Text())
			assert.Equal(t, tt.accel, c.Accelerator())
			assert.Equal(t, tt.label, c.Label())
		})
	}

	t.Run("custom marker", func(t *testing.T) {
		c, err := NewMenuItem(testScreen(1, 20), monoTheme(t), ControlOptions{Label: "#H#elp", Marker: '#'}, Position{})
		require.NoError(t, err)
		assert.Equal(t, "Help", c.Text())
		assert.Equal(t, 'h', c.Accelerator())
	})
}

func TestControl_Redraw(t *testing.T) {
	scr := testScreen(2, 12)
	th := monoTheme(t)

	b, err := NewButton(scr, th, ControlOptions{Label: "_O_K"}, Position{Row: 1, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, b.RealExtent().Cols)

	b.Redraw()
	assert.True(t, strings.HasPrefix(scr.Text(1), "  [OK]"), scr.Text(1))

	m, err := NewMenuItem(scr, th, ControlOptions{Label: "Quit", Width: 8}, Position{})
	require.NoError(t, err)
	m.SetSelected(true)
	assert.True(t, strings.HasPrefix(scr.Text(0), "▸Quit   "), scr.Text(0))
}

func TestControl_Activate(t *testing.T) {
	th := monoTheme(t)

	t.Run("callback result is returned unchanged", func(t *testing.T) {
		var got []any
		var state State
		c, err := NewButton(testScreen(1, 10), th, ControlOptions{
			Label: "Yes",
			Args:  []any{"quit", 1},
			Callback: func(s State, args ...any) Result {
				state, got = s, args
				return Quit
			},
		}, Position{})
		require.NoError(t, err)

		assert.Equal(t, Quit, c.ProcessKey(tea.KeyMsg{Type: tea.KeyEnter}))
		assert.Equal(t, StateActivated, state)
		assert.Equal(t, []any{"quit", 1}, got)
	})

	t.Run("configured enter state", func(t *testing.T) {
		var state State
		c, err := NewButton(testScreen(1, 10), th, ControlOptions{
			Label:      "Go",
			EnterState: StateLeftClick,
			Callback:   func(s State, _ ...any) Result { state = s; return Handled },
		}, Position{})
		require.NoError(t, err)

		c.ProcessKey(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, StateLeftClick, state)
	})

	t.Run("disabled control rejects", func(t *testing.T) {
		called := false
		c, err := NewButton(testScreen(1, 10), th, ControlOptions{
			Label:    "No",
			Disabled: true,
			Callback: func(State, ...any) Result { called = true; return Handled },
		}, Position{})
		require.NoError(t, err)

		assert.Equal(t, Rejected, c.Activate(StateActivated))
		assert.False(t, called)
	})

	t.Run("no callback is handled", func(t *testing.T) {
		c, err := NewButton(testScreen(1, 10), th, ControlOptions{Label: "Ok"}, Position{})
		require.NoError(t, err)
		assert.Equal(t, Handled, c.Activate(StateActivated))
	})

	t.Run("other keys continue", func(t *testing.T) {
		c, err := NewButton(testScreen(1, 10), th, ControlOptions{Label: "Ok"}, Position{})
		require.NoError(t, err)
		assert.Equal(t, Continue, c.ProcessKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
	})

	t.Run("enter can be disabled", func(t *testing.T) {
		c, err := NewButton(testScreen(1, 10), th, ControlOptions{Label: "Ok", NoEnter: true}, Position{})
		require.NoError(t, err)
		assert.Equal(t, Continue, c.ProcessKey(tea.KeyMsg{Type: tea.KeyEnter}))
	})
}

func TestControl_ProcessMouse(t *testing.T) {
	th := monoTheme(t)
	var states []State
	c, err := NewMenuItem(testScreen(3, 10), th, ControlOptions{
		Label:    "Item",
		Callback: func(s State, _ ...any) Result { states = append(states, s); return Handled },
	}, Position{Row: 1, Col: 2})
	require.NoError(t, err)

	tests := []struct {
		name string
		m    Mouse
		want Result
	}{
		{"outside", Mouse{Pos: Position{Row: 0, Col: 2}, Buttons: LeftClick}, Continue},
		{"wheel", Mouse{Pos: Position{Row: 1, Col: 2}, Buttons: WheelUp}, Continue},
		{"left click", Mouse{Pos: Position{Row: 1, Col: 2}, Buttons: LeftClick}, Handled},
		{"double click", Mouse{Pos: Position{Row: 1, Col: 7}, Buttons: LeftDoubleClick}, Handled},
		{"right click is claimed but not a trigger", Mouse{Pos: Position{Row: 1, Col: 3}, Buttons: RightClick}, Handled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ProcessMouse(tt.m))
		})
	}
	assert.Equal(t, []State{StateLeftClick, StateLeftDoubleClick}, states)
}
