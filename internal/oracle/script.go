package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/society/internal/sim/dice"
)

// Script is an offline Oracle whose answers are authored by a sandboxed Lua
// script. The script must define a global function generate(request) that
// returns either a string or a table; tables are encoded as JSON.
//
// The request table has fields system, schema (name or nil), prompt (the last
// message) and messages (an array of {role, content}). The oracle.roll(lo, hi)
// helper draws from the configured dice source.
//
// Calls are serialised; a single Lua state is not safe for concurrent use.
type Script struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// LoadScript reads the Lua file at path and returns a Script running it.
//
// Precondition: path names a readable Lua file; src must be non-nil.
// Postcondition: Returns a non-nil Script or an error.
func LoadScript(path string, limit int, src dice.Source) (*Script, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading oracle script %q: %w", path, err)
	}
	return NewScript(string(code), limit, src)
}

// NewScript compiles and runs code, which must define generate.
//
// Precondition: limit >= 0; 0 uses DefaultInstructionLimit. src must be non-nil.
// Postcondition: Returns a non-nil Script or an error.
func NewScript(code string, limit int, src dice.Source) (*Script, error) {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	L := newSandboxedState()
	registerHelpers(L, src)

	ctx, cancel := newCountingContext(context.Background(), limit)
	defer cancel()
	L.SetContext(ctx)
	if err := L.DoString(code); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading oracle script: %w", err)
	}
	L.RemoveContext()

	if fn, ok := L.GetGlobal("generate").(*lua.LFunction); !ok || fn == nil {
		L.Close()
		return nil, fmt.Errorf("oracle script does not define generate(request)")
	}
	return &Script{L: L, limit: limit}, nil
}

// Close releases the Lua state.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.L.Close()
	return nil
}

// Generate runs generate(request) under a fresh instruction budget derived
// from ctx.
//
// Postcondition: Returns the script's answer, or an error on a Lua runtime
// error, an exhausted budget or an unsupported return type.
func (s *Script) Generate(ctx context.Context, req Request) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	callCtx, cancel := newCountingContext(ctx, s.limit)
	defer cancel()
	s.L.SetContext(callCtx)
	defer s.L.RemoveContext()

	if err := s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal("generate"),
		NRet:    1,
		Protect: true,
	}, requestTable(s.L, req)); err != nil {
		return Response{}, fmt.Errorf("oracle script: %w", err)
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)

	switch v := ret.(type) {
	case lua.LString:
		return NewResponse(req, string(v)), nil
	case *lua.LTable:
		b, err := json.Marshal(fromLua(v))
		if err != nil {
			return Response{}, fmt.Errorf("oracle script: encoding result: %w", err)
		}
		return NewResponse(req, string(b)), nil
	default:
		return Response{}, fmt.Errorf("oracle script: generate returned %s, want string or table", ret.Type())
	}
}

func registerHelpers(L *lua.LState, src dice.Source) {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		lo := L.CheckInt(1)
		hi := L.CheckInt(2)
		if hi < lo {
			L.ArgError(2, "hi must be >= lo")
			return 0
		}
		L.Push(lua.LNumber(dice.Between(src, lo, hi)))
		return 1
	}))
	L.SetGlobal("oracle", mod)
}

func requestTable(L *lua.LState, req Request) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "system", lua.LString(req.System))
	if req.Schema != nil {
		L.SetField(t, "schema", lua.LString(req.Schema.Name))
	}
	msgs := L.NewTable()
	for _, m := range req.Messages {
		entry := L.NewTable()
		L.SetField(entry, "role", lua.LString(m.Role))
		L.SetField(entry, "content", lua.LString(m.Content))
		msgs.Append(entry)
	}
	L.SetField(t, "messages", msgs)
	if n := len(req.Messages); n > 0 {
		L.SetField(t, "prompt", lua.LString(req.Messages[n-1].Content))
	}
	return t
}

// fromLua converts a Lua value to its JSON-compatible Go equivalent. Tables
// with a non-empty array part become slices; all others become maps.
func fromLua(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if n := v.MaxN(); n > 0 {
			out := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				out = append(out, fromLua(v.RawGetInt(i)))
			}
			return out
		}
		out := map[string]any{}
		v.ForEach(func(k, val lua.LValue) {
			out[k.String()] = fromLua(val)
		})
		return out
	default:
		return nil
	}
}
