package speech

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Dictionary wraps a Lua state holding a user script with a global
// rewrite(text) function.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all
// access so Rewrite may be called from any goroutine.
type Dictionary struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// NewDictionary creates a dictionary with an empty Lua state. Without a
// loaded script, Rewrite is the identity function.
func NewDictionary() *Dictionary {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Base, table, string, and math cover everything a rewrite script
	// legitimately needs. io, os, and debug stay closed.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	return &Dictionary{L: L}
}

// LoadFile loads a dictionary script from disk. The script must define
// a global function rewrite(text) returning a string.
func (d *Dictionary) LoadFile(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDictionaryClosed
	}
	if err := d.L.DoFile(path); err != nil {
		return fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return d.checkRewriteLocked()
}

// LoadString loads a dictionary script from source text.
func (d *Dictionary) LoadString(source string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDictionaryClosed
	}
	if err := d.L.DoString(source); err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	return d.checkRewriteLocked()
}

func (d *Dictionary) checkRewriteLocked() error {
	if _, ok := d.L.GetGlobal("rewrite").(*lua.LFunction); !ok {
		return ErrNoRewriteFunction
	}
	return nil
}

// Rewrite transforms text through the loaded script. A dictionary with
// no script, a script error, or a non-string return all fall back to
// the input unchanged: a broken dictionary must never silence the
// screen reader.
func (d *Dictionary) Rewrite(text string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return text
	}
	fn, ok := d.L.GetGlobal("rewrite").(*lua.LFunction)
	if !ok {
		return text
	}

	err := d.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(text))
	if err != nil {
		return text
	}

	ret := d.L.Get(-1)
	d.L.Pop(1)

	if s, ok := ret.(lua.LString); ok {
		return string(s)
	}
	return text
}

// Close releases the Lua state. Safe to call more than once.
func (d *Dictionary) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.L.Close()
}
