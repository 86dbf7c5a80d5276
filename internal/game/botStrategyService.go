package game

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

const luaEntryPoint = "nextDirection"

// LuaStrategy runs a user script to steer the snake. The script must define
//
//	function nextDirection(state) ... return {dx=1, dy=0} end
//
// state carries rows, cols, score, head, food, direction and snake (a list of
// {row, col} tables, head first). Calls into the interpreter are serialised,
// so Close may race with NextDirection; once closed the strategy keeps the
// current direction.
type LuaStrategy struct {
	StrategyName string

	mu       sync.Mutex
	luaState *lua.LState
	closed   bool
}

func NewLuaStrategy(name, definition string) (*LuaStrategy, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(definition); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy %s: %w", name, err)
	}
	if luaState.GetGlobal(luaEntryPoint).Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("lua strategy %s does not define %s", name, luaEntryPoint)
	}
	return &LuaStrategy{StrategyName: name, luaState: luaState}, nil
}

func LoadLuaStrategy(path string) (*LuaStrategy, error) {
	definition, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read lua strategy: %w", err)
	}
	return NewLuaStrategy(path, string(definition))
}

func (s *LuaStrategy) NextDirection(snapshot Snapshot) Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return snapshot.Direction
	}

	dir, err := s.callScript(snapshot)
	if err != nil {
		log.Debug("Lua strategy failed, keeping direction", "strategy", s.StrategyName, "error", err)
		return snapshot.Direction
	}
	return dir
}

func (s *LuaStrategy) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.luaState.Close()
}

func (s *LuaStrategy) callScript(snapshot Snapshot) (Direction, error) {
	L := s.luaState
	err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal(luaEntryPoint),
		NRet:    1,
		Protect: true,
	}, s.stateTable(snapshot))
	if err != nil {
		return Direction{}, fmt.Errorf("could not execute lua strategy: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		return Direction{}, errors.New("lua strategy must return a table")
	}

	result := Direction{
		Dx: int(lua.LVAsNumber(table.RawGetString("dx"))),
		Dy: int(lua.LVAsNumber(table.RawGetString("dy"))),
	}
	if !result.isUnit() {
		return Direction{}, fmt.Errorf("lua strategy returned non-unit direction %+v", result)
	}
	return result, nil
}

func (s *LuaStrategy) stateTable(snapshot Snapshot) *lua.LTable {
	L := s.luaState
	cellTable := func(c Cell) *lua.LTable {
		t := L.NewTable()
		t.RawSetString("row", lua.LNumber(c.Row))
		t.RawSetString("col", lua.LNumber(c.Col))
		return t
	}

	state := L.NewTable()
	state.RawSetString("rows", lua.LNumber(snapshot.Rows))
	state.RawSetString("cols", lua.LNumber(snapshot.Cols))
	state.RawSetString("score", lua.LNumber(snapshot.Score))

	direction := L.NewTable()
	direction.RawSetString("dx", lua.LNumber(snapshot.Direction.Dx))
	direction.RawSetString("dy", lua.LNumber(snapshot.Direction.Dy))
	state.RawSetString("direction", direction)

	snake := L.NewTable()
	for _, c := range snapshot.Snake {
		snake.Append(cellTable(c))
	}
	state.RawSetString("snake", snake)
	if len(snapshot.Snake) > 0 {
		state.RawSetString("head", cellTable(snapshot.Head()))
	}
	if snapshot.HasFood {
		state.RawSetString("food", cellTable(snapshot.Food))
	}
	return state
}
