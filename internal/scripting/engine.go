package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/gridcrawl/crawl/internal/rules"
)

// Engine wraps a single gopher-lua VM holding the tunable game rules.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// Sub-directories load in a fixed order so later scripts may override helpers
// defined by earlier ones.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"core", "rules", "interact"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// AbilityModifier calls ability_modifier(ability, score). Falls back to the
// built-in d20 table when the script does not define it or fails.
func (e *Engine) AbilityModifier(ability string, score int) int {
	fn := e.vm.GetGlobal("ability_modifier")
	if fn == lua.LNil {
		return rules.AbilityModifier(score)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(ability), lua.LNumber(score)); err != nil {
		e.log.Error("lua ability_modifier error", zap.Error(err))
		return rules.AbilityModifier(score)
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua ability_modifier returned non-number", zap.String("type", result.Type().String()))
		return rules.AbilityModifier(score)
	}
	return int(n)
}

// InteractContext is the data handed to on_interact.
type InteractContext struct {
	Actor      uint64
	Target     uint64
	ActorName  string
	TargetName string
	Uses       int
}

// InteractResult is returned by on_interact. A script may return a bare
// boolean or a table {ok = bool, message = string}.
type InteractResult struct {
	OK      bool
	Message string
}

// Interact calls on_interact(ctx). A missing hook succeeds; a failing hook
// is logged and treated as a refusal.
func (e *Engine) Interact(ctx InteractContext) InteractResult {
	fn := e.vm.GetGlobal("on_interact")
	if fn == lua.LNil {
		return InteractResult{OK: true}
	}

	t := e.vm.NewTable()
	t.RawSetString("actor", lua.LNumber(ctx.Actor))
	t.RawSetString("target", lua.LNumber(ctx.Target))
	t.RawSetString("actor_name", lua.LString(ctx.ActorName))
	t.RawSetString("target_name", lua.LString(ctx.TargetName))
	t.RawSetString("uses", lua.LNumber(ctx.Uses))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua on_interact error", zap.Error(err))
		return InteractResult{}
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	switch rv := result.(type) {
	case lua.LBool:
		return InteractResult{OK: bool(rv)}
	case *lua.LTable:
		return InteractResult{
			OK:      lua.LVAsBool(rv.RawGetString("ok")),
			Message: lStr(rv, "message"),
		}
	}
	return InteractResult{OK: lua.LVAsBool(result)}
}

// LevelUpHP calls level_up_hp(roll, con_mod). Returns roll+conMod (min 1)
// when the hook is absent.
func (e *Engine) LevelUpHP(roll, conMod int) int {
	if !e.Has("level_up_hp") {
		return max(1, roll+conMod)
	}
	return max(1, e.callIntFunc("level_up_hp", roll, conMod))
}

func lStr(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func (e *Engine) callIntFunc(name string, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
