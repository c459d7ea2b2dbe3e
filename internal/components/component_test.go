package components

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avitaltamir/vibechat/internal/screen"
	"github.com/avitaltamir/vibechat/internal/theme"
)

func testScreen(rows, cols int) *screen.Screen {
	return screen.New(rows, cols, io.Discard)
}

func monoTheme(t *testing.T) *theme.Theme {
	t.Helper()
	th, err := theme.Builtin("mono")
	require.NoError(t, err)
	return th
}

func TestResult(t *testing.T) {
	assert.False(t, Continue.Stop())
	for _, r := range []Result{Handled, Rejected, Quit} {
		assert.True(t, r.Stop(), r.String())
	}
	assert.Equal(t, "quit", Quit.String())
}

func TestRegion(t *testing.T) {
	t.Run("bordered region shrinks the drawable area", func(t *testing.T) {
		r := NewRegion(Extent{Rows: 10, Cols: 20}, Position{Row: 2, Col: 3}, true)

		assert.Equal(t, Position{Row: 11, Col: 22}, r.RealBottomRight())
		assert.Equal(t, Extent{Rows: 8, Cols: 18}, r.Extent())
		assert.Equal(t, Position{Row: 3, Col: 4}, r.TopLeft())
		assert.Equal(t, Position{Row: 10, Col: 21}, r.BottomRight())
	})

	t.Run("unbordered region uses the real extent", func(t *testing.T) {
		r := NewRegion(Extent{Rows: 1, Cols: 5}, Position{Row: 4}, false)

		assert.Equal(t, r.RealExtent(), r.Extent())
		assert.Equal(t, r.RealTopLeft(), r.TopLeft())
		assert.Equal(t, Position{Row: 4, Col: 4}, r.BottomRight())
	})

	t.Run("bottom right follows extent", func(t *testing.T) {
		sizes := []Extent{{1, 1}, {3, 7}, {24, 80}}
		for _, ext := range sizes {
			for _, bordered := range []bool{false, true} {
				r := NewRegion(ext, Position{Row: 1, Col: 2}, bordered)
				assert.Equal(t, r.RealTopLeft().Row+r.RealExtent().Rows-1, r.RealBottomRight().Row)
				assert.Equal(t, r.RealTopLeft().Col+r.RealExtent().Cols-1, r.RealBottomRight().Col)
			}
		}
	})

	t.Run("negative sizes collapse to zero", func(t *testing.T) {
		r := NewRegion(Extent{Rows: -3, Cols: 1}, Position{}, true)
		assert.Equal(t, Extent{Rows: 0, Cols: 1}, r.RealExtent())
		assert.Equal(t, Extent{}, r.Extent())
	})

	t.Run("mouse over includes the border, inside does not", func(t *testing.T) {
		r := NewRegion(Extent{Rows: 4, Cols: 4}, Position{Row: 1, Col: 1}, true)

		tests := []struct {
			p            Position
			over, inside bool
		}{
			{Position{1, 1}, true, false},
			{Position{4, 4}, true, false},
			{Position{2, 2}, true, true},
			{Position{3, 3}, true, true},
			{Position{0, 2}, false, false},
			{Position{5, 2}, false, false},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.over, r.IsMouseOver(tt.p), "over %v", tt.p)
			assert.Equal(t, tt.inside, r.IsInside(tt.p), "inside %v", tt.p)
		}
	})
}

func TestBase_ClipsToScreen(t *testing.T) {
	scr := testScreen(5, 10)
	b := newBase(scr, Extent{Rows: 8, Cols: 20}, Position{Row: 2, Col: 4}, false, nil)

	assert.Equal(t, Extent{Rows: 3, Cols: 6}, b.RealExtent())
	rows, cols := b.Surface().Size()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 6, cols)
}

func TestBar(t *testing.T) {
	scr := testScreen(3, 10)
	th := monoTheme(t)

	t.Run("status bar prints left and right text", func(t *testing.T) {
		sb, err := NewStatusBar(scr, th, 10, Position{Row: 2})
		require.NoError(t, err)

		sb.SetText("ok", "F1")
		sb.Redraw()
		assert.Equal(t, " ok    F1 ", scr.Text(2))
	})

	t.Run("gaining focus keeps the text", func(t *testing.T) {
		s := testScreen(1, 10)
		sb, err := NewStatusBar(s, th, 10, Position{})
		require.NoError(t, err)

		sb.SetText("ok", "F1")
		sb.SetFocused(true)
		assert.True(t, sb.Focused())
		assert.Equal(t, " ok    F1 ", s.Text(0))
	})

	t.Run("flash replaces the left text", func(t *testing.T) {
		sb, err := NewStatusBar(scr, th, 10, Position{Row: 2})
		require.NoError(t, err)

		sb.SetText("ok", "")
		sb.Flash("copied")
		assert.Equal(t, "copied", sb.Text())
		sb.ClearFlash()
		assert.Equal(t, "ok", sb.Text())
	})

	t.Run("hidden bar does not stage", func(t *testing.T) {
		s := testScreen(1, 4)
		bar, err := NewBar(s, th, theme.MenuBar, 4, Position{})
		require.NoError(t, err)

		bar.visible = false
		bar.Redraw()
		assert.Equal(t, 0, s.Pending())
	})

	t.Run("wrong component kind is an error", func(t *testing.T) {
		_, err := NewBar(scr, th, theme.ContactsWindow, 10, Position{})
		assert.Error(t, err)
	})
}
