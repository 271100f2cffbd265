package game

type Direction int

const (
	NoDirection Direction = iota
	Up
	Right
	Down
	Left
)

var directionNames = map[Direction]string{
	NoDirection: "NONE",
	Up:          "UP",
	Right:       "RIGHT",
	Down:        "DOWN",
	Left:        "LEFT",
}

// Browser key identifiers and their bubbletea equivalents.
var keyDirections = map[string]Direction{
	"ArrowUp":    Up,
	"ArrowRight": Right,
	"ArrowDown":  Down,
	"ArrowLeft":  Left,
	"up":         Up,
	"right":      Right,
	"down":       Down,
	"left":       Left,
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return directionNames[NoDirection]
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func DirectionFromKey(key string) (Direction, bool) {
	d, ok := keyDirections[key]
	return d, ok
}

func CoordsInDirection(c Coord, d Direction) Coord {
	switch d {
	case Up:
		return Coord{Row: c.Row - 1, Col: c.Col}
	case Right:
		return Coord{Row: c.Row, Col: c.Col + 1}
	case Down:
		return Coord{Row: c.Row + 1, Col: c.Col}
	case Left:
		return Coord{Row: c.Row, Col: c.Col - 1}
	}
	return c
}

func OppositeDirection(d Direction) Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	}
	return NoDirection
}

// DirectionBetweenAdjacentNodes returns the direction of travel from a to b,
// or NoDirection when the two coordinates are not orthogonal neighbours.
func DirectionBetweenAdjacentNodes(a, b Coord) Direction {
	switch {
	case b.Row == a.Row && b.Col == a.Col+1:
		return Right
	case b.Row == a.Row && b.Col == a.Col-1:
		return Left
	case b.Col == a.Col && b.Row == a.Row+1:
		return Down
	case b.Col == a.Col && b.Row == a.Row-1:
		return Up
	}
	return NoDirection
}
