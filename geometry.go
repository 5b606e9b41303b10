package facet

// Rect is a rectangle in absolute character-cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty returns true if the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the cell at (x, y) is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the overlapping portion of two rects.
// The result is empty if they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// In returns true if r is fully contained within other.
// An empty rect is contained in anything.
func (r Rect) In(other Rect) bool {
	if r.Empty() {
		return true
	}
	return r.X >= other.X && r.Y >= other.Y &&
		r.X+r.Width <= other.X+other.Width &&
		r.Y+r.Height <= other.Y+other.Height
}

// Inset shrinks the rect by the given edges. Width and height floor at zero.
func (r Rect) Inset(e Edges) Rect {
	r.X += e.Left
	r.Y += e.Top
	r.Width -= e.Left + e.Right
	r.Height -= e.Top + e.Bottom
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// Region converts the rect into a half-open BufferRegion.
func (r Rect) Region() BufferRegion {
	return BufferRegion{
		StartX: r.X,
		StartY: r.Y,
		EndX:   r.X + r.Width,
		EndY:   r.Y + r.Height,
	}
}

// Edges is a four-sided record of cell counts, used for margin, padding
// and border widths.
type Edges struct {
	Top, Right, Bottom, Left int
}

// UniformEdges returns edges with the same value on all four sides.
func UniformEdges(n int) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// Horizontal returns the combined left and right edge.
func (e Edges) Horizontal() int {
	return e.Left + e.Right
}

// Vertical returns the combined top and bottom edge.
func (e Edges) Vertical() int {
	return e.Top + e.Bottom
}

// Add returns the per-side sum of two edge records.
func (e Edges) Add(other Edges) Edges {
	return Edges{
		Top:    e.Top + other.Top,
		Right:  e.Right + other.Right,
		Bottom: e.Bottom + other.Bottom,
		Left:   e.Left + other.Left,
	}
}

// Dimension is an explicit size in cells, or auto (unset).
// The zero value is auto.
type Dimension struct {
	value int
	set   bool
}

// Auto returns an unset dimension; the layout engine derives the size.
func Auto() Dimension {
	return Dimension{}
}

// Cells returns an explicit dimension of n character cells.
func Cells(n int) Dimension {
	return Dimension{value: n, set: true}
}

// IsAuto returns true if the dimension is unset.
func (d Dimension) IsAuto() bool {
	return !d.set
}

// Value returns the explicit size. Only meaningful when !IsAuto().
func (d Dimension) Value() int {
	return d.value
}

// BorderLine selects the character set a border is drawn with.
type BorderLine uint8

const (
	BorderNone BorderLine = iota
	BorderSingleLine
	BorderRoundedLine
	BorderDoubleLine
)

// Border is a four-sided border width record plus a line style tag.
type Border struct {
	Widths Edges
	Line   BorderLine
}

// UniformBorder returns a 1-cell border on all sides with the given line style.
func UniformBorder(line BorderLine) Border {
	if line == BorderNone {
		return Border{}
	}
	return Border{Widths: UniformEdges(1), Line: line}
}

// BufferRegion is a half-open rectangle of character cells in absolute
// buffer coordinates: StartX/StartY inclusive, EndX/EndY exclusive.
type BufferRegion struct {
	StartX, StartY int
	EndX, EndY     int
}

// NewBufferRegion constructs a region from half-open bounds.
func NewBufferRegion(startX, startY, endX, endY int) BufferRegion {
	return BufferRegion{StartX: startX, StartY: startY, EndX: endX, EndY: endY}
}

// Width returns the region width in cells.
func (r BufferRegion) Width() int {
	if r.EndX < r.StartX {
		return 0
	}
	return r.EndX - r.StartX
}

// Height returns the region height in rows.
func (r BufferRegion) Height() int {
	if r.EndY < r.StartY {
		return 0
	}
	return r.EndY - r.StartY
}

// Empty returns true if the region covers no cells.
func (r BufferRegion) Empty() bool {
	return r.EndX <= r.StartX || r.EndY <= r.StartY
}

// Rows returns the set of absolute buffer row indices the region occupies.
func (r BufferRegion) Rows() []int {
	if r.Empty() {
		return nil
	}
	rows := make([]int, 0, r.EndY-r.StartY)
	for y := r.StartY; y < r.EndY; y++ {
		rows = append(rows, y)
	}
	return rows
}

// Intersects reports whether two regions overlap. Both axes are half-open,
// so regions that merely touch (a.EndX == b.StartX) do not intersect.
// Empty regions intersect nothing.
func (r BufferRegion) Intersects(other BufferRegion) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.StartX < other.EndX && other.StartX < r.EndX &&
		r.StartY < other.EndY && other.StartY < r.EndY
}
