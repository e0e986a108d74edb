package loaders

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalTimeout is the default limit for a single script evaluation.
const EvalTimeout = 5 * time.Second

// errHalted is returned by builtins once their evaluation has been abandoned
var errHalted = errors.New("evaluation halted")

type evalResult struct {
	result *ScriptResult
	errors []EvalError
	err    error
}

// evaluation tracks one in-flight script run so that an abandoned run can
// be halted instead of spinning in the background.
type evaluation struct {
	done   chan evalResult
	halted atomic.Bool

	mu  sync.Mutex
	env *zygo.Zlisp // set while the sandbox is live
}

func newEvaluation() *evaluation {
	return &evaluation{done: make(chan evalResult, 1)}
}

// attach records the live sandbox. It reports false if the run was halted
// before the sandbox existed.
func (ev *evaluation) attach(env *zygo.Zlisp) bool {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	if ev.halted.Load() {
		return false
	}
	ev.env = env
	return true
}

// detach forgets the sandbox. It reports false if halt already took it,
// in which case halt is responsible for stopping it.
func (ev *evaluation) detach() bool {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	owned := ev.env != nil
	ev.env = nil
	return owned
}

// halt marks the run abandoned and stops its sandbox. Builtins check the
// flag, so scripts that loop over scene calls stop at their next call.
func (ev *evaluation) halt() {
	ev.halted.Store(true)

	ev.mu.Lock()
	env := ev.env
	ev.env = nil
	ev.mu.Unlock()

	if env != nil {
		env.Stop()
	}
}

// await blocks until the run reports back or timeout elapses, halting it on
// timeout. isCurrent reports whether this run is still the newest one.
func (ev *evaluation) await(timeout time.Duration, isCurrent func() bool) (*ScriptResult, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ev.done:
		if !isCurrent() {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.result, res.errors, res.err

	case <-timer.C:
		ev.halt()
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
