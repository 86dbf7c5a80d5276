package game

// Cell is a grid coordinate, 0-indexed from the top-left corner.
type Cell struct {
	Row, Col int
}

// Direction is a unit step on the grid. Dx moves along columns, Dy along rows.
type Direction struct {
	Dx, Dy int
}

var (
	Up    = Direction{Dx: 0, Dy: -1}
	Down  = Direction{Dx: 0, Dy: 1}
	Left  = Direction{Dx: -1, Dy: 0}
	Right = Direction{Dx: 1, Dy: 0}
)

var Directions = []Direction{Up, Right, Down, Left}

func (d Direction) Reverse() Direction {
	return Direction{Dx: -d.Dx, Dy: -d.Dy}
}

func (d Direction) IsOpposite(other Direction) bool {
	return d.Dx+other.Dx == 0 && d.Dy+other.Dy == 0
}

func (d Direction) isUnit() bool {
	return (d.Dx == 0) != (d.Dy == 0) && d.Dx*d.Dx+d.Dy*d.Dy == 1
}

func (c Cell) Step(d Direction) Cell {
	return Cell{Row: c.Row + d.Dy, Col: c.Col + d.Dx}
}

func (c Cell) InBounds(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

func GetManhattanDistance(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
