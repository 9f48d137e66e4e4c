package workqueue_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jsonkit.dev/jsonkit/workqueue"
)

func TestRunBatchPreservesOrder(t *testing.T) {
	pool := workqueue.New(4)
	defer pool.Shutdown()

	items := make([]int, 500)
	for i := range items {
		items[i] = i
	}

	out := workqueue.RunBatch(pool, items, func(i int) int { return i * 2 })

	for i, v := range out {
		assert.Equal(t, i*2, v)
	}
}

func TestSubmitNeverBlocksWhenQueueFull(t *testing.T) {
	pool := workqueue.New(1)
	defer pool.Shutdown()

	var count atomic.Int64

	for range 1000 {
		pool.Submit(func() { count.Add(1) })
	}

	pool.Drain()
	assert.Equal(t, int64(1000), count.Load())
}

func TestSubmitReusesTaskCellsWithoutCrossTalk(t *testing.T) {
	// Runs well past queueDepthPerWorker*workers so every task cell the
	// internal pool hands out gets reused multiple times; a stale fn left
	// over from a prior Get/Put cycle would show up as a wrong or
	// repeated value here.
	pool := workqueue.New(2)
	defer pool.Shutdown()

	const n = 5000

	out := make([]int, n)

	for i := range n {
		pool.Submit(func() { out[i] = i * i })
	}

	pool.Drain()

	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestOptimalWorkers(t *testing.T) {
	assert.Equal(t, 5, workqueue.OptimalWorkers(16, 5))
	assert.Equal(t, 128, workqueue.OptimalWorkers(16, 5000))
	assert.Equal(t, 2, workqueue.OptimalWorkers(2, 0))
	assert.Equal(t, 3, workqueue.OptimalWorkers(4, 0))
	assert.Equal(t, 6, workqueue.OptimalWorkers(8, 0))
	assert.Equal(t, 12, workqueue.OptimalWorkers(16, 0))
}
