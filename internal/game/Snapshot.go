package game

type CellState int

const (
	CellEmpty CellState = iota
	CellSnake
	CellFood
)

// Snapshot is a read-only view of one game for presentation layers.
type Snapshot struct {
	BoardSize int       `json:"boardSize"`
	Rows      [][]int   `json:"rows"`
	Occupied  []int     `json:"occupied"`
	Body      []Coord   `json:"body"`
	FoodCell  int       `json:"foodCell"`
	Score     int       `json:"score"`
	Direction Direction `json:"direction"`
	Status    Status    `json:"status"`

	occupied CellSet
}

func (s GameState) Snapshot() Snapshot {
	body := s.Snake.Body()
	coords := make([]Coord, len(body))
	for i, node := range body {
		coords[i] = node.Coord
	}

	return Snapshot{
		BoardSize: s.Board.Size(),
		Rows:      s.Board.Rows(),
		Occupied:  s.Occupied.Sorted(),
		Body:      coords,
		FoodCell:  s.FoodCell,
		Score:     s.Score,
		Direction: s.Direction,
		Status:    s.Status,
		occupied:  s.Occupied.Clone(),
	}
}

// CellState reports how a cell should be drawn. The snake wins over food.
func (s Snapshot) CellState(cell int) CellState {
	if s.occupied.Has(cell) {
		return CellSnake
	}
	if cell == s.FoodCell {
		return CellFood
	}
	return CellEmpty
}

func (s Snapshot) Head() Coord {
	if len(s.Body) == 0 {
		return Coord{}
	}
	return s.Body[0]
}
