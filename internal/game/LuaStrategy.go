package game

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

const luaEntryPoint = "nextDirection"

// LuaStrategy asks a user script for the next direction. The script defines
//
//	function nextDirection(state) ... return "UP" end
//
// where state has size, score, direction, head {row, col}, food {row, col}
// (food is nil when there is none) and body, a list of {row, col} from head to tail.
// Errors, unknown answers and calls running past MaxStrategyCalculationTime
// keep the current direction.
type LuaStrategy struct {
	Name  string
	state *lua.LState
}

func NewLuaStrategy(name, source string) (*LuaStrategy, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(source); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy %s: %w", name, err)
	}

	if luaState.GetGlobal(luaEntryPoint).Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("lua strategy %s does not define %s(state)", name, luaEntryPoint)
	}

	return &LuaStrategy{Name: name, state: luaState}, nil
}

func LoadLuaStrategy(path string) (*LuaStrategy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read lua strategy: %w", err)
	}
	return NewLuaStrategy(path, string(source))
}

func (s *LuaStrategy) Close() error {
	s.state.Close()
	return nil
}

func (s *LuaStrategy) NextDirection(snapshot Snapshot) Direction {
	ctx, cancel := context.WithTimeout(context.Background(), MaxStrategyCalculationTime)
	defer cancel()
	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	err := s.state.CallByParam(lua.P{
		Fn:      s.state.GetGlobal(luaEntryPoint),
		NRet:    1,
		Protect: true,
	}, s.snapshotTable(snapshot))
	if err != nil {
		log.Warn("Lua strategy failed", "strategy", s.Name, "error", err)
		return snapshot.Direction
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	if ret.Type() != lua.LTString {
		log.Warn("Lua strategy returned a non string", "strategy", s.Name, "type", ret.Type().String())
		return snapshot.Direction
	}

	return parseDirectionName(lua.LVAsString(ret), snapshot.Direction)
}

func parseDirectionName(name string, fallback Direction) Direction {
	name = strings.ToUpper(strings.TrimSpace(name))
	for d, n := range directionNames {
		if d != NoDirection && n == name {
			return d
		}
	}
	return fallback
}

func (s *LuaStrategy) coordTable(c Coord) *lua.LTable {
	tbl := s.state.NewTable()
	s.state.SetField(tbl, "row", lua.LNumber(c.Row))
	s.state.SetField(tbl, "col", lua.LNumber(c.Col))
	return tbl
}

func (s *LuaStrategy) snapshotTable(snapshot Snapshot) *lua.LTable {
	tbl := s.state.NewTable()
	s.state.SetField(tbl, "size", lua.LNumber(snapshot.BoardSize))
	s.state.SetField(tbl, "score", lua.LNumber(snapshot.Score))
	s.state.SetField(tbl, "direction", lua.LString(snapshot.Direction.String()))
	s.state.SetField(tbl, "head", s.coordTable(snapshot.Head()))

	if snapshot.FoodCell > 0 {
		board := CreateBoard(snapshot.BoardSize)
		s.state.SetField(tbl, "food", s.coordTable(board.CoordOf(snapshot.FoodCell)))
	}

	body := s.state.NewTable()
	for _, c := range snapshot.Body {
		body.Append(s.coordTable(c))
	}
	s.state.SetField(tbl, "body", body)

	return tbl
}
