// Package screen holds the cell buffers every component draws into and the
// virtual screen that composes them into one frame per input cycle.
package screen

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ErrOverflow is returned when a write lands on or runs past the last
// addressable cell of a surface. Callers drawing borders and fills hit it
// routinely and discard it.
var ErrOverflow = errors.New("screen: write past surface edge")

// Attr is the attribute record of a cell. Colours are 256-colour indices;
// -1 leaves the terminal default in place.
type Attr struct {
	Fg        int
	Bg        int
	Bold      bool
	Underline bool
	Reverse   bool
}

// DefaultAttr uses the terminal's own colours with no decoration.
var DefaultAttr = Attr{Fg: -1, Bg: -1}

// Cell is one character position. A wide rune occupies its cell and the
// following one; the following cell holds Rune == 0.
type Cell struct {
	Rune rune
	Attr Attr
}

var blank = Cell{Rune: ' ', Attr: DefaultAttr}

// Surface is a rows x cols grid of cells.
type Surface struct {
	rows, cols int
	cells      []Cell
}

// NewSurface returns a blank surface. Negative sizes are treated as zero.
func NewSurface(rows, cols int) *Surface {
	s := &Surface{}
	s.Resize(rows, cols)
	return s
}

// Size returns the surface dimensions.
func (s *Surface) Size() (rows, cols int) {
	return s.rows, s.cols
}

// Resize changes the surface dimensions, keeping the overlapping content.
func (s *Surface) Resize(rows, cols int) {
	rows, cols = max(rows, 0), max(cols, 0)
	if rows == s.rows && cols == s.cols && s.cells != nil {
		return
	}
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i] = blank
	}
	for r := 0; r < min(rows, s.rows); r++ {
		copy(cells[r*cols:r*cols+min(cols, s.cols)], s.cells[r*s.cols:r*s.cols+min(cols, s.cols)])
	}
	s.rows, s.cols, s.cells = rows, cols, cells
}

func (s *Surface) inside(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}

// Cell returns the cell at row, col or a blank cell outside the surface.
func (s *Surface) Cell(row, col int) Cell {
	if !s.inside(row, col) {
		return blank
	}
	return s.cells[row*s.cols+col]
}

// Put writes one rune. Outside the surface nothing is written and
// ErrOverflow is returned. Writing the final cell of the final row stores
// the rune and still reports ErrOverflow, the way a terminal cannot advance
// its cursor past the bottom-right corner.
func (s *Surface) Put(row, col int, r rune, a Attr) error {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		r, w = ' ', 1
	}
	if !s.inside(row, col) || col+w > s.cols {
		return ErrOverflow
	}
	s.clearWide(row, col)
	s.cells[row*s.cols+col] = Cell{Rune: r, Attr: a}
	if w == 2 {
		s.clearWide(row, col+1)
		s.cells[row*s.cols+col+1] = Cell{Rune: 0, Attr: a}
	}
	if row == s.rows-1 && col+w == s.cols {
		return ErrOverflow
	}
	return nil
}

// clearWide blanks the other half of a wide rune that is about to be split.
func (s *Surface) clearWide(row, col int) {
	c := s.cells[row*s.cols+col]
	if c.Rune == 0 && col > 0 {
		s.cells[row*s.cols+col-1] = Cell{Rune: ' ', Attr: s.cells[row*s.cols+col-1].Attr}
	}
	if runewidth.RuneWidth(c.Rune) == 2 && col+1 < s.cols {
		s.cells[row*s.cols+col+1] = Cell{Rune: ' ', Attr: c.Attr}
	}
}

// Print writes text starting at row, col and returns the number of columns
// consumed. Control characters are drawn as spaces. Text that does not fit
// is cut at the right edge and ErrOverflow is returned.
func (s *Surface) Print(row, col int, text string, a Attr) (int, error) {
	n := 0
	var err error
	for _, r := range text {
		if r < ' ' || r == 0x7f {
			r = ' '
		}
		w := max(runewidth.RuneWidth(r), 1)
		if e := s.Put(row, col+n, r, a); e != nil {
			err = e
			if col+n+w > s.cols || !s.inside(row, col+n) {
				return n, err
			}
		}
		n += w
	}
	return n, err
}

// FillRow writes n copies of r starting at row, col.
func (s *Surface) FillRow(row, col, n int, r rune, a Attr) error {
	var err error
	w := max(runewidth.RuneWidth(r), 1)
	for i := 0; i < n; i += w {
		if e := s.Put(row, col+i, r, a); e != nil {
			err = e
		}
	}
	return err
}

// Fill paints every cell of the surface.
func (s *Surface) Fill(r rune, a Attr) {
	for row := 0; row < s.rows; row++ {
		_ = s.FillRow(row, 0, s.cols, r, a)
	}
}

// Row returns the plain text of one row without attributes.
func (s *Surface) Row(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, c := range s.cells[row*s.cols : (row+1)*s.cols] {
		if c.Rune == 0 {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// copyFrom copies a rows x cols block from src at (srow, scol) to (drow, dcol),
// clipping against both surfaces.
func (s *Surface) copyFrom(src *Surface, srow, scol, drow, dcol, rows, cols int) {
	for r := 0; r < rows; r++ {
		sr, dr := srow+r, drow+r
		if sr < 0 || sr >= src.rows || dr < 0 || dr >= s.rows {
			continue
		}
		for c := 0; c < cols; c++ {
			sc, dc := scol+c, dcol+c
			if sc < 0 || sc >= src.cols || dc < 0 || dc >= s.cols {
				continue
			}
			s.cells[dr*s.cols+dc] = src.cells[sr*src.cols+sc]
		}
		// A wide rune cut at the left edge of the block leaves a dangling half.
		if dcol >= 0 && dcol < s.cols && dr >= 0 && dr < s.rows && s.cells[dr*s.cols+dcol].Rune == 0 {
			s.cells[dr*s.cols+dcol].Rune = ' '
		}
	}
}
