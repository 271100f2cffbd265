package game

import (
	"maps"
	"slices"
)

// CellSet holds the cell ids covered by the snake.
type CellSet map[int]struct{}

func NewCellSet(cells ...int) CellSet {
	set := make(CellSet, len(cells))
	for _, cell := range cells {
		set.Add(cell)
	}
	return set
}

func (s CellSet) Add(cell int) {
	s[cell] = struct{}{}
}

func (s CellSet) Remove(cell int) {
	delete(s, cell)
}

func (s CellSet) Has(cell int) bool {
	_, ok := s[cell]
	return ok
}

func (s CellSet) Len() int {
	return len(s)
}

func (s CellSet) Clone() CellSet {
	return maps.Clone(s)
}

// Sorted returns the cells in ascending order.
func (s CellSet) Sorted() []int {
	return slices.Sorted(maps.Keys(s))
}
