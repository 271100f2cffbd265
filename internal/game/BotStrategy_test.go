package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultStrategyAvoidsWalls(t *testing.T) {
	board := CreateBoard(10)
	state := stateWithBody(board, Right, board.CellAt(Coord{Row: 9, Col: 9}), Coord{Row: 0, Col: 9})

	got := (&DefaultStrategy{}).NextDirection(state.Snapshot())
	if got != Down {
		t.Errorf("NextDirection in the top right corner = %v, want DOWN", got)
	}
}

func TestDefaultStrategyHeadsForFood(t *testing.T) {
	board := CreateBoard(10)
	state := stateWithBody(board, Right, board.CellAt(Coord{Row: 8, Col: 3}), Coord{Row: 3, Col: 3})

	if got := (&DefaultStrategy{}).NextDirection(state.Snapshot()); got != Down {
		t.Errorf("NextDirection = %v, want DOWN", got)
	}
}

func TestDefaultStrategyAvoidsItsBody(t *testing.T) {
	board := CreateBoard(10)
	// the food sits above the head, past a body segment
	state := stateWithBody(board, Left, board.CellAt(Coord{Row: 1, Col: 4}),
		Coord{Row: 3, Col: 4}, Coord{Row: 3, Col: 5}, Coord{Row: 4, Col: 5}, Coord{Row: 4, Col: 4})

	got := (&DefaultStrategy{}).NextDirection(state.Snapshot())
	next := CoordsInDirection(Coord{Row: 4, Col: 4}, got)
	if state.Occupied.Has(board.CellAt(next)) {
		t.Errorf("NextDirection %v runs into the body", got)
	}
}

func TestAutopilotEatsFood(t *testing.T) {
	gm := NewGameManager(
		WithStrategy(&DefaultStrategy{}),
		WithAutopilot(true),
		WithRandomSource(&sequenceSource{values: []int{55, 3, 71, 12, 90, 38}}),
	)

	best := 0
	for range 300 {
		gm.processGameTick()
		best = max(best, gm.state.Score)
		drainUpdates(gm)
	}

	if best < 3 {
		t.Errorf("autopilot reached a best score of %d, want at least 3", best)
	}
}

func TestAutopilotToggleNeedsStrategy(t *testing.T) {
	gm := NewGameManager()
	gm.processKey("a")
	if gm.Autopilot() {
		t.Error("autopilot turned on without a strategy")
	}

	gm = NewGameManager(WithStrategy(&DefaultStrategy{}))
	gm.processKey("a")
	if !gm.Autopilot() {
		t.Error("autopilot did not turn on")
	}
	gm.processKey("a")
	if gm.Autopilot() {
		t.Error("autopilot did not turn off")
	}
}

const followFoodScript = `
function nextDirection(state)
	if state.food == nil then
		return state.direction
	end
	if state.food.row > state.head.row then return "down" end
	if state.food.row < state.head.row then return "UP" end
	if state.food.col < state.head.col then return "LEFT" end
	return "RIGHT"
end
`

func TestLuaStrategy(t *testing.T) {
	strategy, err := NewLuaStrategy("follow", followFoodScript)
	if err != nil {
		t.Fatalf("NewLuaStrategy: %v", err)
	}
	defer strategy.Close()

	board := CreateBoard(10)
	state := stateWithBody(board, Right, board.CellAt(Coord{Row: 7, Col: 2}), Coord{Row: 2, Col: 2})
	if got := strategy.NextDirection(state.Snapshot()); got != Down {
		t.Errorf("NextDirection = %v, want DOWN", got)
	}

	state.FoodCell = 0
	if got := strategy.NextDirection(state.Snapshot()); got != Right {
		t.Errorf("NextDirection without food = %v, want RIGHT", got)
	}
}

func TestLuaStrategyFallsBackOnBadAnswers(t *testing.T) {
	board := CreateBoard(10)
	state := stateWithBody(board, Left, 50, Coord{Row: 2, Col: 2})

	for name, script := range map[string]string{
		"runtime error": `function nextDirection(state) error("boom") end`,
		"number":        `function nextDirection(state) return 4 end`,
		"unknown":       `function nextDirection(state) return "SIDEWAYS" end`,
	} {
		strategy, err := NewLuaStrategy(name, script)
		if err != nil {
			t.Fatalf("%s: NewLuaStrategy: %v", name, err)
		}
		if got := strategy.NextDirection(state.Snapshot()); got != Left {
			t.Errorf("%s: NextDirection = %v, want LEFT", name, got)
		}
		strategy.Close()
	}
}

const spinScript = `function nextDirection(state) while true do end end`

func TestLuaStrategyStopsLongCalls(t *testing.T) {
	strategy, err := NewLuaStrategy("spin", spinScript)
	if err != nil {
		t.Fatalf("NewLuaStrategy: %v", err)
	}
	defer strategy.Close()

	board := CreateBoard(10)
	state := stateWithBody(board, Up, 50, Coord{Row: 5, Col: 5})

	// the state is reused on every tick, so a second call must be cut off too
	for i := range 2 {
		got := make(chan Direction, 1)
		go func() { got <- strategy.NextDirection(state.Snapshot()) }()

		select {
		case d := <-got:
			if d != Up {
				t.Errorf("call %d: NextDirection = %v, want UP", i, d)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("call %d: NextDirection did not return", i)
		}
	}
}

func TestGameLoopStopsWithSpinningLuaAutopilot(t *testing.T) {
	strategy, err := NewLuaStrategy("spin", spinScript)
	if err != nil {
		t.Fatalf("NewLuaStrategy: %v", err)
	}

	gm := NewGameManager(
		WithStrategy(strategy),
		WithAutopilot(true),
		WithTickDuration(5*time.Millisecond),
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gm.StartGameLoop(ctx)
		close(done)
	}()

	select {
	case <-gm.UpdateChannel:
	case <-time.After(2 * time.Second):
		t.Fatal("no update from the game loop")
	}

	snapshotTaken := make(chan struct{})
	go func() {
		gm.Snapshot()
		close(snapshotTaken)
	}()
	select {
	case <-snapshotTaken:
	case <-time.After(2 * time.Second):
		t.Fatal("Snapshot blocked while the strategy was running")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("game loop did not stop after cancel")
	}
}

func TestLuaStrategyRejectsBadScripts(t *testing.T) {
	if _, err := NewLuaStrategy("syntax", "function ("); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := NewLuaStrategy("missing", "x = 1"); err == nil {
		t.Error("expected an error for a script without nextDirection")
	}
}

func TestLoadLuaStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "follow.lua")
	if err := os.WriteFile(path, []byte(followFoodScript), 0o644); err != nil {
		t.Fatal(err)
	}

	strategy, err := LoadLuaStrategy(path)
	if err != nil {
		t.Fatalf("LoadLuaStrategy: %v", err)
	}
	strategy.Close()

	if _, err := LoadLuaStrategy(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
