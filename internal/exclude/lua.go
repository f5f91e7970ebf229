package exclude

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/spellstorm/internal/engine/document"
)

// ErrDetectorClosed is returned when a closed script detector is used.
var ErrDetectorClosed = errors.New("script detector is closed")

// detectFn is the global function a detector script must define.
const detectFn = "detect"

// ScriptDetector runs a host-supplied Lua script to identify excluded
// regions. The script must define a global function
//
//	function detect(text)
//	    return { {0, 5}, {12, 20} }
//	end
//
// returning a table of {start, stop} byte offsets (0-based, half-open).
//
// gopher-lua's LState is not goroutine-safe; all calls are serialized
// through an internal mutex. A script error or malformed return
// excludes the entire text, matching how the tokenizer treats a
// panicking detector.
type ScriptDetector struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
}

// NewScriptDetector compiles the script and verifies it defines the
// detect function.
func NewScriptDetector(script string) (*ScriptDetector, error) {
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("script detector: %w", err)
	}
	if L.GetGlobal(detectFn).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("script detector: script does not define %q", detectFn)
	}
	return &ScriptDetector{state: L}, nil
}

// Close releases the Lua state.
func (d *ScriptDetector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.state.Close()
}

// Detect implements tokenize.RegionDetector. Use the method value
// (detector.Detect) wherever a detector is expected.
func (d *ScriptDetector) Detect(text string) []document.Range {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return []document.Range{{Start: 0, End: len(text)}}
	}

	ranges, err := d.call(text)
	if err != nil {
		return []document.Range{{Start: 0, End: len(text)}}
	}
	return ranges
}

// call invokes the script's detect function and decodes its result.
// Caller holds d.mu.
func (d *ScriptDetector) call(text string) ([]document.Range, error) {
	L := d.state
	L.Push(L.GetGlobal(detectFn))
	L.Push(lua.LString(text))
	if err := L.PCall(1, 1, nil); err != nil {
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		if ret == lua.LNil {
			return nil, nil
		}
		return nil, fmt.Errorf("detect must return a table, got %s", ret.Type())
	}

	var out []document.Range
	var convErr error
	tbl.ForEach(func(_, v lua.LValue) {
		if convErr != nil {
			return
		}
		pair, ok := v.(*lua.LTable)
		if !ok {
			convErr = fmt.Errorf("range entries must be tables, got %s", v.Type())
			return
		}
		start, ok1 := toInt(pair.RawGetInt(1))
		stop, ok2 := toInt(pair.RawGetInt(2))
		if !ok1 || !ok2 || start > stop {
			convErr = fmt.Errorf("malformed range entry")
			return
		}
		out = append(out, document.NewRange(start, stop))
	})
	if convErr != nil {
		return nil, convErr
	}
	return out, nil
}

func toInt(v lua.LValue) (int, bool) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, false
	}
	return int(n), true
}
