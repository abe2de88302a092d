// Package host runs sketches: Lua scripts defining setup() and draw()
// that paint onto a canvas once per frame.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// state wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe. A state is owned by the
// producer goroutine of one run and never shared.
type state struct {
	L      *lua.LState
	rng    *rand.Rand
	logger *log.Logger
	closed bool
}

// newState creates a Lua state with only the safe standard libraries.
func newState(logger *log.Logger, seed int64) *state {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})
	s := &state{
		L:      L,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
	openSafeLibraries(L)
	s.installSandbox()
	return s
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package, channel, coroutine
}

// installSandbox removes loaders and routes print and random numbers
// through the host.
func (s *state) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.L.SetGlobal("print", s.L.NewFunction(s.luaPrint))
	s.L.SetGlobal("randint", s.L.NewFunction(s.luaRandint))

	if math, ok := s.L.GetGlobal("math").(*lua.LTable); ok {
		math.RawSetString("random", s.L.NewFunction(s.luaRandom))
		math.RawSetString("randomseed", s.L.NewFunction(s.luaRandomseed))
	}
}

// luaPrint logs its arguments instead of writing to stdout, which
// belongs to the frame display.
func (s *state) luaPrint(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	s.logger.Info("print", "msg", strings.Join(parts, "\t"))
	return 0
}

// luaRandint returns an integer in [a, b], both ends included.
func (s *state) luaRandint(L *lua.LState) int {
	a := L.CheckInt(1)
	b := L.CheckInt(2)
	if b < a {
		L.RaiseError("randint: empty range [%d, %d]", a, b)
		return 0
	}
	L.Push(lua.LNumber(a + s.rng.Intn(b-a+1)))
	return 1
}

// luaRandom follows the Lua 5.1 math.random contract.
func (s *state) luaRandom(L *lua.LState) int {
	switch L.GetTop() {
	case 0:
		L.Push(lua.LNumber(s.rng.Float64()))
	case 1:
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "interval is empty")
		}
		L.Push(lua.LNumber(1 + s.rng.Intn(n)))
	default:
		lo, hi := L.CheckInt(1), L.CheckInt(2)
		if hi < lo {
			L.ArgError(2, "interval is empty")
		}
		L.Push(lua.LNumber(lo + s.rng.Intn(hi-lo+1)))
	}
	return 1
}

func (s *state) luaRandomseed(L *lua.LState) int {
	s.rng.Seed(int64(L.CheckNumber(1)))
	return 0
}

// load compiles and runs the sketch's top-level chunk.
func (s *state) load(source, name string, timeout time.Duration) error {
	if s.closed {
		return ErrStateClosed
	}
	fn, err := s.L.Load(strings.NewReader(source), name)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	return s.call(fn, timeout)
}

// Compile checks that source is valid Lua without running it.
func Compile(name, source string) error {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return fmt.Errorf("host: compile %s: %w", name, err)
	}
	if _, err := lua.Compile(chunk, name); err != nil {
		return fmt.Errorf("host: compile %s: %w", name, err)
	}
	return nil
}

// function returns a global Lua function, or nil when the global is not a function.
func (s *state) function(name string) *lua.LFunction {
	fn, _ := s.L.GetGlobal(name).(*lua.LFunction)
	return fn
}

// call invokes fn with a time budget and panic recovery.
func (s *state) call(fn lua.LValue, timeout time.Duration, args ...lua.LValue) (err error) {
	if s.closed {
		return ErrStateClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %v", ErrFrameTimeout, timeout)
	}
	return err
}

// Close releases the Lua state.
func (s *state) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
