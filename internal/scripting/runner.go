package scripting

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/darkthrone/darkthrone/internal/game/ruleset"
)

// Runner executes balance scripts. Each run gets a fresh sandboxed VM, so
// scripts cannot leak state into one another.
//
// Runner is safe for concurrent use.
type Runner struct {
	table     *ruleset.BonusTable
	logger    *zap.Logger
	instLimit int
}

// NewRunner creates a Runner whose scripts read bonuses from table.
//
// Precondition: table and logger must be non-nil; instLimit >= 0.
func NewRunner(table *ruleset.BonusTable, logger *zap.Logger, instLimit int) *Runner {
	if table == nil {
		panic("scripting.NewRunner: precondition violated: table must be non-nil")
	}
	if logger == nil {
		panic("scripting.NewRunner: precondition violated: logger must be non-nil")
	}
	return &Runner{table: table, logger: logger, instLimit: instLimit}
}

// RunString executes src and returns its first return value converted by ToGo.
//
// Postcondition: Returns nil and no error when the script returns nothing.
func (r *Runner) RunString(name, src string) (interface{}, error) {
	L, cancel := NewSandboxedState(r.instLimit)
	defer L.Close()
	defer cancel()
	r.RegisterModules(L)

	fn, err := L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	return r.call(L, name, fn)
}

// RunFile executes the Lua file at path; see RunString.
func (r *Runner) RunFile(path string) (interface{}, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading %q: %w", path, err)
	}
	return r.RunString(path, string(src))
}

func (r *Runner) call(L *lua.LState, name string, fn *lua.LFunction) (interface{}, error) {
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		r.logger.Warn("scripting: Lua runtime error",
			zap.String("script", name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("scripting: running %q: %w", name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	r.logger.Debug("scripting: script finished",
		zap.String("script", name),
		zap.String("result_type", ret.Type().String()),
	)
	out, err := ToGo(ret)
	if err != nil {
		return nil, fmt.Errorf("scripting: result of %q: %w", name, err)
	}
	return out, nil
}

// ErrCyclicTable is returned by ToGo for a table that contains itself.
var ErrCyclicTable = errors.New("scripting: table contains itself")

// ToGo converts a Lua value to plain Go values: numbers become float64,
// strings string, booleans bool, nil nil. Tables with only the keys 1..n
// become []interface{}; other tables become map[string]interface{} with
// non-string keys formatted with %v. Functions and userdata become nil.
//
// Postcondition: Returns an error wrapping ErrCyclicTable if a table is
// reachable from itself. A table shared by two siblings converts twice.
func ToGo(v lua.LValue) (interface{}, error) {
	return toGo(v, make(map[*lua.LTable]bool))
}

// toGo converts v; path holds the tables currently being converted.
func toGo(v lua.LValue, path map[*lua.LTable]bool) (interface{}, error) {
	switch lv := v.(type) {
	case lua.LNumber:
		return float64(lv), nil
	case lua.LString:
		return string(lv), nil
	case lua.LBool:
		return bool(lv), nil
	case *lua.LTable:
		if path[lv] {
			return nil, ErrCyclicTable
		}
		path[lv] = true
		defer delete(path, lv)
		return tableToGo(lv, path)
	default:
		return nil, nil
	}
}

func tableToGo(t *lua.LTable, path map[*lua.LTable]bool) (interface{}, error) {
	if n := t.MaxN(); n > 0 && countKeys(t) == n {
		arr := make([]interface{}, 0, n)
		for i := 1; i <= n; i++ {
			elem, err := toGo(t.RawGetInt(i), path)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr = append(arr, elem)
		}
		return arr, nil
	}

	m := make(map[string]interface{})
	var err error
	t.ForEach(func(k, val lua.LValue) {
		if err != nil {
			return
		}
		key, kerr := toGo(k, path)
		if kerr != nil {
			err = fmt.Errorf("key: %w", kerr)
			return
		}
		elem, verr := toGo(val, path)
		if verr != nil {
			err = fmt.Errorf("field %v: %w", key, verr)
			return
		}
		m[fmt.Sprintf("%v", key)] = elem
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func countKeys(t *lua.LTable) int {
	n := 0
	t.ForEach(func(lua.LValue, lua.LValue) { n++ })
	return n
}
