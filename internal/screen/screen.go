package screen

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Screen is the virtual terminal. Components stage their surfaces onto it
// in draw order; Commit turns the result into one frame.
type Screen struct {
	virtual *Surface
	frame   string

	pending int
	commits int

	pendingBells int
	bells        int
	bellOut      io.Writer

	styles map[Attr]lipgloss.Style
}

// New returns a screen of the given size. Bells are written to bellOut as
// BEL characters; pass io.Discard to silence them. bellOut usually shares
// the terminal with the renderer. The bells of one Commit go out in a single
// Write, which the terminal sees between two renderer writes.
func New(rows, cols int, bellOut io.Writer) *Screen {
	if bellOut == nil {
		bellOut = io.Discard
	}
	return &Screen{
		virtual: NewSurface(rows, cols),
		bellOut: bellOut,
		styles:  make(map[Attr]lipgloss.Style),
	}
}

// Size returns the screen dimensions.
func (s *Screen) Size() (rows, cols int) {
	return s.virtual.Size()
}

// Resize changes the screen size. The next Commit repaints everything that
// was staged since.
func (s *Screen) Resize(rows, cols int) {
	s.virtual.Resize(rows, cols)
	s.virtual.Fill(' ', DefaultAttr)
	s.pending++
}

// Fit clips a rectangle at top, left to the screen and returns the size
// that actually fits.
func (s *Screen) Fit(top, left, rows, cols int) (int, int) {
	sr, sc := s.Size()
	rows = min(rows, sr-top)
	cols = min(cols, sc-left)
	return max(rows, 0), max(cols, 0)
}

// Stage copies a whole surface onto the screen at top, left.
func (s *Screen) Stage(src *Surface, top, left int) {
	rows, cols := src.Size()
	s.StageRegion(src, 0, 0, top, left, rows, cols)
}

// StageRegion copies a rows x cols block of src starting at srcRow, srcCol
// onto the screen at top, left. Later stages overwrite earlier ones.
func (s *Screen) StageRegion(src *Surface, srcRow, srcCol, top, left, rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	s.virtual.copyFrom(src, srcRow, srcCol, top, left, rows, cols)
	s.pending++
}

// Pending reports the number of stages since the last Commit.
func (s *Screen) Pending() int {
	return s.pending
}

// Commits reports how many frames have been produced.
func (s *Screen) Commits() int {
	return s.commits
}

// Bell queues an audible bell for the next Commit.
func (s *Screen) Bell() {
	s.pendingBells++
}

// Bells reports the total number of bells rung, including queued ones.
func (s *Screen) Bells() int {
	return s.bells + s.pendingBells
}

// Commit renders the virtual screen into a frame if anything was staged and
// flushes queued bells in one write. It reports whether a new frame was produced.
func (s *Screen) Commit() bool {
	if s.pendingBells > 0 {
		_, _ = io.WriteString(s.bellOut, strings.Repeat("\a", s.pendingBells))
		s.bells += s.pendingBells
		s.pendingBells = 0
	}
	if s.pending == 0 {
		return false
	}
	s.frame = s.render()
	s.pending = 0
	s.commits++
	return true
}

// Frame returns the last committed frame.
func (s *Screen) Frame() string {
	return s.frame
}

// Text returns the plain text of one committed-or-staged screen row.
func (s *Screen) Text(row int) string {
	return s.virtual.Row(row)
}

// CellAt returns the staged cell at row, col.
func (s *Screen) CellAt(row, col int) Cell {
	return s.virtual.Cell(row, col)
}

func (s *Screen) render() string {
	rows, cols := s.virtual.Size()
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		cur := DefaultAttr
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(s.style(cur).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < cols; col++ {
			c := s.virtual.Cell(row, col)
			if c.Rune == 0 {
				continue
			}
			r := c.Rune
			if runewidth.RuneWidth(r) == 2 && (col+1 >= cols || s.virtual.Cell(row, col+1).Rune != 0) {
				r = ' '
			}
			if c.Attr != cur {
				flush()
				cur = c.Attr
			}
			run.WriteRune(r)
		}
		flush()
	}
	return b.String()
}

func (s *Screen) style(a Attr) lipgloss.Style {
	if st, ok := s.styles[a]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Bold(a.Bold).
		Underline(a.Underline).
		Reverse(a.Reverse)
	if a.Fg >= 0 {
		st = st.Foreground(lipgloss.Color(strconv.Itoa(a.Fg)))
	}
	if a.Bg >= 0 {
		st = st.Background(lipgloss.Color(strconv.Itoa(a.Bg)))
	}
	s.styles[a] = st
	return st
}
