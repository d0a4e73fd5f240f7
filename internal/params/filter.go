package params

import (
	"context"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// filterTimeout bounds one predicate evaluation.
const filterTimeout = 1000 * time.Millisecond

// Filter is a sandboxed Lua predicate over a combination context. Only the
// base, string, table and math libraries are opened; there is no io or os
// access and evaluation is bounded by a deadline.
type Filter struct {
	code string
}

// NewFilter wraps Lua code as a predicate. The code may be a bare expression
// (`spp > 1`) or a chunk with an explicit return. Empty code yields a nil
// filter, which keeps every combination.
func NewFilter(code string) *Filter {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	return &Filter{code: code}
}

// Keep evaluates the predicate with the combination context installed as
// globals. Non-boolean results drop the combination.
func (f *Filter) Keep(ctx map[string]any) (bool, error) {
	if f == nil {
		return true, nil
	}

	L := newSandboxState()
	defer L.Close()

	tctx, cancel := context.WithTimeout(context.Background(), filterTimeout)
	defer cancel()
	L.SetContext(tctx)

	for k, v := range ctx {
		L.SetGlobal(k, toLValue(L, v))
	}

	// Expression form first, then a plain chunk, like the Lua REPL.
	fn, err := L.LoadString("return (" + f.code + ")")
	if err != nil {
		fn, err = L.LoadString(f.code)
	}
	if err != nil {
		return false, fmt.Errorf("filter: %v", err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return false, fmt.Errorf("filter: %v", err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	keep, _ := fromLValue(ret).(bool)
	return keep, nil
}

func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     256,
		RegistryMaxSize:  4096,
		RegistryGrowStep: 0,
	})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib("base", lua.OpenBase)
	openLib("string", lua.OpenString)
	openLib("table", lua.OpenTable)
	openLib("math", lua.OpenMath)
	return L
}

// toLValue converts a Go value to a Lua value.
func toLValue(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(x)
	case bool:
		if x {
			return lua.LTrue
		}
		return lua.LFalse
	case int:
		return lua.LNumber(float64(x))
	case int64:
		return lua.LNumber(float64(x))
	case float64:
		return lua.LNumber(x)
	case map[string]any:
		tbl := L.NewTable()
		for k, v2 := range x {
			tbl.RawSetString(k, toLValue(L, v2))
		}
		return tbl
	case []any:
		tbl := L.NewTable()
		for i, v2 := range x {
			tbl.RawSetInt(i+1, toLValue(L, v2))
		}
		return tbl
	default:
		return lua.LNil
	}
}

// fromLValue converts a Lua value back to a Go value.
func fromLValue(v lua.LValue) any {
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTBool:
		return lua.LVAsBool(v)
	case lua.LTNumber:
		return float64(v.(lua.LNumber))
	case lua.LTString:
		return v.String()
	default:
		return nil
	}
}
