// Package workqueue implements the fixed-size worker pool spec.md §4.B
// and §5 describe: N goroutines consuming independent tasks from a
// shared FIFO, with deterministic result ordering via a write-once
// output slot per task and a blocking Drain that returns once every
// submitted task has completed.
//
// This is the "shared FIFO" design spec.md §4.B allows (the alternative,
// per-worker work-stealing deques, is not used here — a buffered Go
// channel plus goroutines is the idiomatic Go shape for this and is the
// pattern the example corpus uses for task/result fan-out, e.g.
// standardbeagle-lci's indexing pipeline processor).
package workqueue

import (
	"sync"

	"go.jsonkit.dev/jsonkit/pool"
)

// queueDepthPerWorker bounds the shared FIFO's buffer; once full, Submit
// falls through to running the task inline (spec.md's "submission never
// blocks indefinitely" contract).
const queueDepthPerWorker = 16

// task is the pooled unit of work spec.md §4.A's task pool sizes at 64 B
// cells: Submit wraps every closure in one of these instead of letting
// the channel carry (and the GC later collect) a fresh func value per
// call.
type task struct {
	fn func()
}

// Reset satisfies pool.Resetter; dropping fn lets the GC collect
// whatever it closed over as soon as the task cell is pooled, rather
// than keeping it alive until the cell is reused.
func (t *task) Reset() {
	t.fn = nil
}

// taskPool is shared across every Pool in the process, same as
// schema.nodePool: sync.Pool is already safe for concurrent use, so one
// pool serves any number of worker pools.
var taskPool = sync.OnceValue(func() *pool.Pool[*task] {
	return pool.New(func() *task { return &task{} })
})

// Pool is a fixed-size pool of worker goroutines.
type Pool struct {
	tasks     chan *task
	wg        sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a Pool with n worker goroutines. n is clamped to at least 1.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}

	p := &Pool{
		tasks: make(chan *task, n*queueDepthPerWorker),
		done:  make(chan struct{}),
	}

	for range n {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for {
		select {
		case t, ok := <-p.tasks:
			if !ok {
				return
			}

			fn := t.fn
			taskPool().Put(t)

			fn()
			p.wg.Done()
		case <-p.done:
			return
		}
	}
}

// Submit enqueues fn for execution by a worker. If the shared FIFO is
// full, fn runs synchronously on the calling goroutine instead of
// blocking — spec.md §4.B requires submission to never block
// indefinitely, and this is the documented in-line fallback path.
func (p *Pool) Submit(fn func()) {
	p.wg.Add(1)

	t := taskPool().Get()
	t.fn = fn

	select {
	case p.tasks <- t:
	default:
		taskPool().Put(t)

		defer p.wg.Done()
		fn()
	}
}

// Drain blocks until every task submitted so far has completed.
// Execution order across workers is unspecified; callers that need
// ordered results index their own output slots (see RunBatch).
func (p *Pool) Drain() {
	p.wg.Wait()
}

// Shutdown signals workers to exit once their current task (if any)
// completes. Call Drain before Shutdown for a clean teardown; Shutdown
// is idempotent.
func (p *Pool) Shutdown() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

// RunBatch runs fn over items using pool, with one task per item. The
// result slice is indexed identically to items: this is the write-once
// output slot spec.md's WorkItem describes, giving batch results
// deterministic ordering regardless of execution order across workers.
func RunBatch[I, O any](pool *Pool, items []I, fn func(I) O) []O {
	out := make([]O, len(items))

	for i, item := range items {
		idx, it := i, item

		pool.Submit(func() {
			out[idx] = fn(it)
		})
	}

	pool.Drain()

	return out
}

// OptimalWorkers implements spec.md §6's optimal_workers(cores) formula:
// an explicit positive request wins (capped at 128); otherwise the
// worker count scales down from the core count.
func OptimalWorkers(cores, requested int) int {
	if requested > 0 {
		if requested > 128 {
			return 128
		}

		return requested
	}

	if cores < 1 {
		cores = 1
	}

	switch {
	case cores <= 2:
		return cores
	case cores <= 4:
		return cores - 1
	case cores <= 8:
		return cores * 3 / 4
	default:
		return cores/2 + 4
	}
}

// MinBatchSizeForParallel is the batch-size threshold spec.md §5 names
// (MIN_BATCH_SIZE_FOR_PARALLEL) below which workers are not worth the
// dispatch overhead.
const MinBatchSizeForParallel = 100
