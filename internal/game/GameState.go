package game

type Status int

const (
	StatusPlaying Status = iota
	StatusPaused
)

func (s Status) String() string {
	if s == StatusPaused {
		return "PAUSED"
	}
	return "PLAYING"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type TickEvent int

const (
	EventMoved TickEvent = iota
	EventAte
	EventHitWall
	EventHitSelf
	EventSkipped
)

var tickEventNames = map[TickEvent]string{
	EventMoved:   "moved",
	EventAte:     "ate",
	EventHitWall: "hit wall",
	EventHitSelf: "hit self",
	EventSkipped: "skipped",
}

func (e TickEvent) String() string {
	return tickEventNames[e]
}

func (e TickEvent) IsGameOver() bool {
	return e == EventHitWall || e == EventHitSelf
}

// TickResult describes what a tick did. Score is the score the game ended
// with for game over events and the current score otherwise.
type TickResult struct {
	Event TickEvent
	Score int
}

// RandomSource picks food cells. *rand.Rand from golang.org/x/exp/rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// GameState is everything one game owns. Transitions take a state and return
// a new one; the argument is left untouched.
type GameState struct {
	Board     Board
	Snake     *Snake
	Occupied  CellSet
	FoodCell  int
	Direction Direction
	Score     int
	Status    Status
}

// startingCoord is (StartingRow, StartingCol), pulled inside boards too small for it.
func startingCoord(board Board) Coord {
	return Coord{Row: min(StartingRow, board.Size()-1), Col: min(StartingCol, board.Size()-1)}
}

// startingFood wraps past the last cell; a one-cell board has no room for food.
func startingFood(board Board, start int) int {
	food := (start+StartingFoodOffset-1)%board.CellCount() + 1
	if food == start {
		return 0
	}
	return food
}

func NewGameState(board Board) GameState {
	return resetState(board, StartingDirection, StatusPlaying)
}

func resetState(board Board, direction Direction, status Status) GameState {
	start := startingCoord(board)
	cell := board.CellAt(start)
	return GameState{
		Board:     board,
		Snake:     NewSnake(start, cell),
		Occupied:  NewCellSet(cell),
		FoodCell:  startingFood(board, cell),
		Direction: direction,
		Score:     0,
		Status:    status,
	}
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Snake = s.Snake.Clone()
	clone.Occupied = s.Occupied.Clone()
	return clone
}

func (s GameState) IsPlaying() bool {
	return s.Status == StatusPlaying
}

// Tick advances the game by one step.
func Tick(state GameState, rng RandomSource) (GameState, TickResult) {
	if !state.IsPlaying() {
		return state, TickResult{Event: EventSkipped, Score: state.Score}
	}

	nextHead := CoordsInDirection(state.Snake.Head().Coord, state.Direction)
	if IsOutOfBounds(nextHead, state.Board) {
		return gameOver(state), TickResult{Event: EventHitWall, Score: state.Score}
	}

	nextCell := state.Board.CellAt(nextHead)
	if state.Occupied.Has(nextCell) {
		return gameOver(state), TickResult{Event: EventHitSelf, Score: state.Score}
	}

	next := state.Clone()
	next.Snake.AdvanceHead(nextHead, nextCell)
	next.Occupied.Remove(next.Snake.Tail().Cell)
	next.Occupied.Add(nextCell)
	next.Snake.AdvanceTail()

	if nextCell != next.FoodCell {
		return next, TickResult{Event: EventMoved, Score: next.Score}
	}

	if grown, ok := next.Snake.GrowTail(next.Board, next.Direction, next.Occupied); ok {
		next.Occupied.Add(grown)
	}
	next.FoodCell = placeFood(next.Board, next.Occupied, next.FoodCell, rng)
	next.Score++

	return next, TickResult{Event: EventAte, Score: next.Score}
}

func gameOver(state GameState) GameState {
	return resetState(state.Board, GameOverDirection, state.Status)
}

// placeFood draws uniform cell ids until one is free and differs from the
// current food. After maxFoodDraws rejections it picks among the free cells
// directly. It returns 0 when the snake covers the whole board.
func placeFood(board Board, occupied CellSet, current int, rng RandomSource) int {
	total := board.CellCount()
	for range maxFoodDraws {
		cell := rng.Intn(total) + 1
		if occupied.Has(cell) || cell == current {
			continue
		}
		return cell
	}

	free := make([]int, 0, total-occupied.Len())
	for cell := 1; cell <= total; cell++ {
		if !occupied.Has(cell) && cell != current {
			free = append(free, cell)
		}
	}
	if len(free) == 0 {
		if !occupied.Has(current) {
			return current
		}
		return 0
	}
	return free[rng.Intn(len(free))]
}

// ApplyInput commits the direction for a key. Unknown keys, reversals of a
// snake longer than one cell and input while paused are ignored.
func ApplyInput(state GameState, key string) GameState {
	direction, ok := DirectionFromKey(key)
	if !ok {
		return state
	}
	return ApplyDirection(state, direction)
}

// ApplyDirection is ApplyInput for an already decoded direction.
func ApplyDirection(state GameState, direction Direction) GameState {
	if !state.IsPlaying() || direction == NoDirection {
		return state
	}

	if OppositeDirection(direction) == state.Direction && state.Occupied.Len() > 1 {
		return state
	}

	state.Direction = direction
	return state
}

// Restart is an explicit reset and uses the starting direction.
func Restart(state GameState) GameState {
	return resetState(state.Board, StartingDirection, StatusPlaying)
}

func TogglePause(state GameState) GameState {
	if state.IsPlaying() {
		state.Status = StatusPaused
	} else {
		state.Status = StatusPlaying
	}
	return state
}
