package components

// Position is a (row, col) screen coordinate.
type Position struct {
	Row, Col int
}

// Add returns p offset by d.
func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Extent is a (rows, cols) size.
type Extent struct {
	Rows, Cols int
}

// Region is a rectangle with a real extent, which includes the border, and
// a drawable extent, which is the interior. Corners are inclusive.
type Region struct {
	bordered bool

	realTopLeft     Position
	realBottomRight Position
	realExtent      Extent

	topLeft     Position
	bottomRight Position
	extent      Extent
}

// NewRegion returns a region of the given real extent at topLeft.
func NewRegion(ext Extent, topLeft Position, bordered bool) Region {
	r := Region{bordered: bordered}
	r.Resize(ext, topLeft)
	return r
}

// Resize recomputes both extents and all corners.
func (r *Region) Resize(ext Extent, topLeft Position) {
	ext.Rows, ext.Cols = max(ext.Rows, 0), max(ext.Cols, 0)

	r.realExtent = ext
	r.realTopLeft = topLeft
	r.realBottomRight = Position{Row: topLeft.Row + ext.Rows - 1, Col: topLeft.Col + ext.Cols - 1}

	if r.bordered {
		r.extent = Extent{Rows: max(ext.Rows-2, 0), Cols: max(ext.Cols-2, 0)}
		r.topLeft = Position{Row: topLeft.Row + 1, Col: topLeft.Col + 1}
	} else {
		r.extent = ext
		r.topLeft = topLeft
	}
	r.bottomRight = Position{Row: r.topLeft.Row + r.extent.Rows - 1, Col: r.topLeft.Col + r.extent.Cols - 1}
}

// IsMouseOver reports whether p lies inside the real rectangle, edges included.
func (r Region) IsMouseOver(p Position) bool {
	return p.Row >= r.realTopLeft.Row && p.Row <= r.realBottomRight.Row &&
		p.Col >= r.realTopLeft.Col && p.Col <= r.realBottomRight.Col
}

// IsInside reports whether p lies inside the drawable rectangle.
func (r Region) IsInside(p Position) bool {
	return p.Row >= r.topLeft.Row && p.Row <= r.bottomRight.Row &&
		p.Col >= r.topLeft.Col && p.Col <= r.bottomRight.Col
}

func (r Region) Bordered() bool            { return r.bordered }
func (r Region) RealTopLeft() Position     { return r.realTopLeft }
func (r Region) RealBottomRight() Position { return r.realBottomRight }
func (r Region) RealExtent() Extent        { return r.realExtent }
func (r Region) TopLeft() Position         { return r.topLeft }
func (r Region) BottomRight() Position     { return r.bottomRight }
func (r Region) Extent() Extent            { return r.extent }
