package game

import "math"

// DefaultStrategy moves greedily towards the food, never into a wall or the
// body, and keeps its heading on ties.
type DefaultStrategy struct{}

func (s *DefaultStrategy) NextDirection(snapshot Snapshot) Direction {
	head := snapshot.Head()
	board := CreateBoard(snapshot.BoardSize)
	food := board.CoordOf(snapshot.FoodCell)
	hasFood := snapshot.FoodCell > 0

	best := snapshot.Direction
	bestScore := math.MaxInt32

	for _, dir := range []Direction{snapshot.Direction, Up, Right, Down, Left} {
		if dir == OppositeDirection(snapshot.Direction) && len(snapshot.Body) > 1 {
			continue
		}

		next := CoordsInDirection(head, dir)
		if IsOutOfBounds(next, board) || s.isBlocked(snapshot, board.CellAt(next)) {
			continue
		}

		score := 0
		if hasFood {
			score = GetManhattanDistance(next, food)
		}
		// fewer free neighbours means a likely dead end
		score += 4 - s.freeNeighbours(snapshot, board, next)

		if score < bestScore {
			best, bestScore = dir, score
		}
	}

	return best
}

// Moving into the current tail cell is game over too, so every snake cell blocks.
func (s *DefaultStrategy) isBlocked(snapshot Snapshot, cell int) bool {
	return snapshot.CellState(cell) == CellSnake
}

func (s *DefaultStrategy) freeNeighbours(snapshot Snapshot, board Board, c Coord) int {
	free := 0
	for _, dir := range []Direction{Up, Right, Down, Left} {
		n := CoordsInDirection(c, dir)
		if !IsOutOfBounds(n, board) && !s.isBlocked(snapshot, board.CellAt(n)) {
			free++
		}
	}
	return free
}
