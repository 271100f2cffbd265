package game

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func GetManhattanDistance(a, b Coord) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}
