package component

// Point is a grid cell.
type Point struct {
	X, Y int
}

// Add returns p offset by d.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Sub returns the offset from o to p.
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Chebyshev is the king-move distance between two cells.
func (p Point) Chebyshev(o Point) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Manhattan is the rook-move distance between two cells.
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Position places an entity on the grid. RoomID is -1 outside any room.
type Position struct {
	X, Y   int
	RoomID int
}

func (p *Position) Point() Point { return Point{p.X, p.Y} }

// MoveTo sets the cell, leaving RoomID untouched.
func (p *Position) MoveTo(c Point) {
	p.X, p.Y = c.X, c.Y
}

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Dim is the colour of unlit light sources.
var Dim = Color{100, 100, 100}

// Renderable holds what a renderer needs to draw the entity.
// Drawing itself lives outside this module.
type Renderable struct {
	Glyph   rune
	Color   Color
	Layer   int // higher draws on top
	Visible bool
}

// Name gives an entity a display name and optional title.
type Name struct {
	Name        string
	Title       string
	Description string
}

func (n *Name) FullName() string {
	if n.Title != "" {
		return n.Title + " " + n.Name
	}
	return n.Name
}
