package wasmhost

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/experimental"
)

// trapFrame is one function-call frame captured as it unwinds through a
// trap: the WASM function index wazero assigned it. Offset is not captured
// by Abort and is always 0.
type trapFrame struct {
	FuncIndex uint32
	Offset    uint64
}

// frameRecorder implements experimental.FunctionListenerFactory. Attached to
// a run's context before CompileModule, it listens to every function call
// and records one trapFrame per Abort callback: wazero calls Abort on a
// function's listener as the panic from a trap unwinds through it, so the
// recorded slice is exactly the trap's call stack, innermost frame first.
type frameRecorder struct {
	mu     sync.Mutex
	frames []trapFrame
}

func (r *frameRecorder) reset() {
	r.mu.Lock()
	r.frames = r.frames[:0]
	r.mu.Unlock()
}

func (r *frameRecorder) take() []trapFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]trapFrame, len(r.frames))
	copy(out, r.frames)
	return out
}

// NewFunctionListener implements experimental.FunctionListenerFactory.
func (r *frameRecorder) NewFunctionListener(def api.FunctionDefinition) experimental.FunctionListener {
	return &frameListener{recorder: r, index: def.Index()}
}

type frameListener struct {
	recorder *frameRecorder
	index    uint32
}

func (l *frameListener) Before(ctx context.Context, mod api.Module, def api.FunctionDefinition, params []uint64, si experimental.StackIterator) {
}

func (l *frameListener) After(ctx context.Context, mod api.Module, def api.FunctionDefinition, results []uint64) {
}

// Abort records this frame's function index when the call unwinds through a
// trap, mirroring wasm_trap_trace's innermost-first frame order.
func (l *frameListener) Abort(ctx context.Context, mod api.Module, def api.FunctionDefinition, err error) {
	l.recorder.mu.Lock()
	l.recorder.frames = append(l.recorder.frames, trapFrame{FuncIndex: l.index})
	l.recorder.mu.Unlock()
}
