package game

import "testing"

func TestCreateBoardIsRowMajor(t *testing.T) {
	for _, size := range []int{1, 2, 5, 10, 17} {
		board := CreateBoard(size)
		seen := make(map[int]bool)

		for row := 0; row < size; row++ {
			for col := 0; col < size; col++ {
				cell := board.CellAt(Coord{Row: row, Col: col})
				if want := row*size + col + 1; cell != want {
					t.Fatalf("size %d: cell(%d,%d) = %d, want %d", size, row, col, cell, want)
				}
				if seen[cell] {
					t.Fatalf("size %d: duplicate cell %d", size, cell)
				}
				seen[cell] = true
			}
		}

		if len(seen) != size*size {
			t.Errorf("size %d: got %d unique cells, want %d", size, len(seen), size*size)
		}
		if got := board.CellAt(Coord{Row: 0, Col: 0}); got != 1 {
			t.Errorf("size %d: first cell = %d, want 1", size, got)
		}
		if got := board.CellAt(Coord{Row: size - 1, Col: size - 1}); got != size*size {
			t.Errorf("size %d: last cell = %d, want %d", size, got, size*size)
		}
	}
}

func TestCoordOfInvertsCellAt(t *testing.T) {
	board := CreateBoard(7)
	for cell := 1; cell <= board.CellCount(); cell++ {
		if got := board.CellAt(board.CoordOf(cell)); got != cell {
			t.Fatalf("CellAt(CoordOf(%d)) = %d", cell, got)
		}
	}
}

func TestRowsIsACopy(t *testing.T) {
	board := CreateBoard(3)
	rows := board.Rows()
	rows[0][0] = 42

	if got := board.CellAt(Coord{}); got != 1 {
		t.Errorf("board changed through Rows(): cell(0,0) = %d", got)
	}
}

func TestIsOutOfBounds(t *testing.T) {
	board := CreateBoard(10)
	tests := []struct {
		coord Coord
		want  bool
	}{
		{Coord{Row: 0, Col: 0}, false},
		{Coord{Row: 9, Col: 9}, false},
		{Coord{Row: -1, Col: 3}, true},
		{Coord{Row: 3, Col: -1}, true},
		{Coord{Row: 10, Col: 0}, true},
		{Coord{Row: 0, Col: 10}, true},
	}

	for _, tt := range tests {
		if got := IsOutOfBounds(tt.coord, board); got != tt.want {
			t.Errorf("IsOutOfBounds(%+v) = %v, want %v", tt.coord, got, tt.want)
		}
	}
}

func TestCreateBoardPanicsOnInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for size 0")
		}
	}()
	CreateBoard(0)
}
