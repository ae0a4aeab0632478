package loader

import (
	"context"
	"sync"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"
)

// Result is the outcome of an asynchronous load: Model on success, Err on failure.
type Result struct {
	Model model.Model
	Err   error
}

// Future is the single result of a LoadAsync call. It resolves exactly once and may be
// polled from the render loop without blocking.
type Future struct {
	path   string
	done   chan struct{}
	once   sync.Once
	result Result
}

func newFuture(path string) *Future {
	return &Future{path: path, done: make(chan struct{})}
}

// resolvedFuture returns a Future that already holds r.
func resolvedFuture(path string, r Result) *Future {
	f := newFuture(path)
	f.resolve(r)
	return f
}

func (f *Future) resolve(r Result) {
	f.once.Do(func() {
		f.result = r
		close(f.done)
	})
}

// Path returns the file the future is loading.
func (f *Future) Path() string {
	return f.path
}

// Poll reports the result if the load has finished.
//
// Returns:
//   - Result: the load result (zero until ready)
//   - bool: true once the load has finished
func (f *Future) Poll() (Result, bool) {
	select {
	case <-f.done:
		return f.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the load finishes or ctx is done. A cancelled wait returns ctx.Err()
// as the result error; the load itself keeps running.
//
// Parameters:
//   - ctx: bounds the wait
//
// Returns:
//   - Result: the load result
func (f *Future) Wait(ctx context.Context) Result {
	select {
	case <-f.done:
		return f.result
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	}
}
