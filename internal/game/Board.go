package game

import "fmt"

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is an immutable N×N grid of cell ids assigned row-major from 1.
type Board struct {
	size  int
	cells [][]int
}

func CreateBoard(size int) Board {
	if size < 1 {
		panic(fmt.Sprintf("game: invalid board size %d", size))
	}

	cells := make([][]int, size)
	counter := 1
	for row := 0; row < size; row++ {
		cells[row] = make([]int, size)
		for col := 0; col < size; col++ {
			cells[row][col] = counter
			counter++
		}
	}

	return Board{size: size, cells: cells}
}

func (b Board) Size() int {
	return b.size
}

func (b Board) CellCount() int {
	return b.size * b.size
}

// CellAt expects an in-bounds coordinate.
func (b Board) CellAt(c Coord) int {
	return b.cells[c.Row][c.Col]
}

func (b Board) CoordOf(cell int) Coord {
	return Coord{Row: (cell - 1) / b.size, Col: (cell - 1) % b.size}
}

// Rows returns a copy of the grid for renderers.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for row := range b.cells {
		rows[row] = append([]int(nil), b.cells[row]...)
	}
	return rows
}

func IsOutOfBounds(c Coord, b Board) bool {
	if c.Row < 0 || c.Col < 0 {
		return true
	}

	if c.Row >= b.size || c.Col >= b.size {
		return true
	}

	return false
}
