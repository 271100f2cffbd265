package game

const noNode = -1

// SnakeNode is one body segment. next is the arena index of the segment
// closer to the head; the head has no successor.
type SnakeNode struct {
	Coord Coord
	Cell  int
	next  int
}

// Snake is a chain of nodes kept in an arena and addressed by index.
// Slots released by AdvanceTail are reused by later nodes.
type Snake struct {
	nodes  []SnakeNode
	free   []int
	head   int
	tail   int
	length int
}

func NewSnake(start Coord, cell int) *Snake {
	return &Snake{
		nodes:  []SnakeNode{{Coord: start, Cell: cell, next: noNode}},
		head:   0,
		tail:   0,
		length: 1,
	}
}

func (s *Snake) Head() SnakeNode {
	return s.nodes[s.head]
}

func (s *Snake) Tail() SnakeNode {
	return s.nodes[s.tail]
}

func (s *Snake) Len() int {
	return s.length
}

func (s *Snake) alloc(node SnakeNode) int {
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		s.nodes[idx] = node
		return idx
	}
	s.nodes = append(s.nodes, node)
	return len(s.nodes) - 1
}

// AdvanceHead links a new head node in front of the current one.
func (s *Snake) AdvanceHead(c Coord, cell int) {
	idx := s.alloc(SnakeNode{Coord: c, Cell: cell, next: noNode})
	s.nodes[s.head].next = idx
	s.head = idx
	s.length++
}

// AdvanceTail drops the tail node and returns the cell it vacated.
// A single-node snake has nowhere to move its tail and is left unchanged.
func (s *Snake) AdvanceTail() (int, bool) {
	old := s.nodes[s.tail]
	if old.next == noNode {
		return 0, false
	}

	s.free = append(s.free, s.tail)
	s.tail = old.next
	s.length--
	return old.Cell, true
}

// tailDirection is the local direction of travel at the tail. A tail that is
// also the head moves in the snake's travel direction.
func (s *Snake) tailDirection(travel Direction) Direction {
	tail := s.nodes[s.tail]
	if tail.next == noNode {
		return travel
	}
	return DirectionBetweenAdjacentNodes(tail.Coord, s.nodes[tail.next].Coord)
}

// GrowthCoord is the coordinate one step behind the tail.
func (s *Snake) GrowthCoord(travel Direction) Coord {
	return CoordsInDirection(s.Tail().Coord, OppositeDirection(s.tailDirection(travel)))
}

// GrowTail adds a node behind the tail. Growth is skipped when the target is
// off the board or already covered by the snake.
func (s *Snake) GrowTail(board Board, travel Direction, occupied CellSet) (int, bool) {
	c := s.GrowthCoord(travel)
	if IsOutOfBounds(c, board) {
		return 0, false
	}

	cell := board.CellAt(c)
	if occupied.Has(cell) {
		return 0, false
	}

	s.tail = s.alloc(SnakeNode{Coord: c, Cell: cell, next: s.tail})
	s.length++
	return cell, true
}

// Body returns the segments from head to tail.
func (s *Snake) Body() []SnakeNode {
	body := make([]SnakeNode, s.length)
	i := s.length - 1
	for idx := s.tail; idx != noNode; idx = s.nodes[idx].next {
		body[i] = s.nodes[idx]
		i--
	}
	return body
}

func (s *Snake) Clone() *Snake {
	clone := *s
	clone.nodes = append([]SnakeNode(nil), s.nodes...)
	clone.free = append([]int(nil), s.free...)
	return &clone
}
