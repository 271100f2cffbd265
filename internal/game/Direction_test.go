package game

import "testing"

var allDirections = []Direction{Up, Right, Down, Left}

func TestOppositeDirectionIsAnInvolution(t *testing.T) {
	for _, d := range allDirections {
		if OppositeDirection(d) == d {
			t.Errorf("OppositeDirection(%v) returned itself", d)
		}
		if got := OppositeDirection(OppositeDirection(d)); got != d {
			t.Errorf("OppositeDirection twice on %v = %v", d, got)
		}
	}
}

func TestCoordsInDirection(t *testing.T) {
	origin := Coord{Row: 4, Col: 4}
	tests := map[Direction]Coord{
		Up:    {Row: 3, Col: 4},
		Right: {Row: 4, Col: 5},
		Down:  {Row: 5, Col: 4},
		Left:  {Row: 4, Col: 3},
	}

	for d, want := range tests {
		if got := CoordsInDirection(origin, d); got != want {
			t.Errorf("CoordsInDirection(%v) = %+v, want %+v", d, got, want)
		}
	}

	// no bounds checking
	if got := CoordsInDirection(Coord{}, Up); got != (Coord{Row: -1}) {
		t.Errorf("CoordsInDirection from origin going up = %+v", got)
	}
}

func TestDirectionBetweenAdjacentNodes(t *testing.T) {
	origin := Coord{Row: 2, Col: 2}
	for _, d := range allDirections {
		next := CoordsInDirection(origin, d)
		if got := DirectionBetweenAdjacentNodes(origin, next); got != d {
			t.Errorf("DirectionBetweenAdjacentNodes towards %v = %v", d, got)
		}
	}

	if got := DirectionBetweenAdjacentNodes(origin, Coord{Row: 3, Col: 3}); got != NoDirection {
		t.Errorf("diagonal neighbour gave %v, want none", got)
	}
	if got := DirectionBetweenAdjacentNodes(origin, origin); got != NoDirection {
		t.Errorf("same coordinate gave %v, want none", got)
	}
}

func TestDirectionFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want Direction
		ok   bool
	}{
		{"ArrowUp", Up, true},
		{"ArrowRight", Right, true},
		{"ArrowDown", Down, true},
		{"ArrowLeft", Left, true},
		{"up", Up, true},
		{"left", Left, true},
		{"w", NoDirection, false},
		{"Enter", NoDirection, false},
		{"", NoDirection, false},
	}

	for _, tt := range tests {
		got, ok := DirectionFromKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DirectionFromKey(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}
