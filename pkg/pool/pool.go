// Package pool implements a bounded worker thread pool: a fixed number
// of goroutines, each pinned to its own OS thread, pulling tasks off a
// mutex-guarded FIFO queue gated by a counting semaphore.
package pool

import (
	"context"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

// ThreadInfo is passed to every task, identifying which worker ran it.
type ThreadInfo struct {
	Index int
}

// Pool is a fixed-size set of worker threads draining a FIFO task queue.
// Tasks already queued at Close time are guaranteed to run to completion
// before Close returns.
type Pool struct {
	sem *semaphore.Weighted

	mu    sync.Mutex
	queue []func(ThreadInfo)

	workers []*worker
	wg      sync.WaitGroup

	tidsMu sync.Mutex
	tids   []int
}

// New constructs a pool of size worker threads. size must be positive.
func New(size int) (*Pool, error) {
	if size <= 0 {
		return nil, drrerr.New(drrerr.InvalidParameter, "pool: size must be positive")
	}
	p := &Pool{sem: semaphore.NewWeighted(math.MaxInt64)}
	// Drain the semaphore so workers start blocked on an empty queue;
	// each Submit releases exactly one permit per task pushed.
	_ = p.sem.Acquire(context.Background(), math.MaxInt64)

	p.workers = make([]*worker, size)
	p.tids = make([]int, size)
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		w := &worker{index: i, pool: p}
		p.workers[i] = w
		go w.run()
	}
	return p, nil
}

// Submit wraps fn in a task and pushes it to the queue, returning a
// Future that resolves to fn's result once a worker runs it.
func Submit[T any](p *Pool, fn func(ThreadInfo) T) *Future[T] {
	f := newFuture[T]()
	p.push(func(info ThreadInfo) {
		f.resolve(fn(info))
	})
	return f
}

// SubmitBulk pushes every fn in fns atomically with respect to the
// semaphore count: all tasks are enqueued before any permit is
// released, so the batch is never interleaved with a concurrent
// Submit's single release.
func SubmitBulk[T any](p *Pool, fns []func(ThreadInfo) T) []*Future[T] {
	futures := make([]*Future[T], len(fns))
	p.mu.Lock()
	for i, fn := range fns {
		fn := fn
		f := newFuture[T]()
		futures[i] = f
		p.queue = append(p.queue, func(info ThreadInfo) {
			f.resolve(fn(info))
		})
	}
	p.mu.Unlock()
	p.sem.Release(int64(len(fns)))
	return futures
}

func (p *Pool) push(task func(ThreadInfo)) {
	p.mu.Lock()
	p.queue = append(p.queue, task)
	p.mu.Unlock()
	p.sem.Release(1)
}

// pop blocks on the counting semaphore, then pops one task under the
// queue lock. A nil task signals the worker to stop.
func (p *Pool) pop() func(ThreadInfo) {
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return nil
	}
	task := p.queue[0]
	p.queue = p.queue[1:]
	return task
}

func (p *Pool) registerThread(index, tid int) {
	p.tidsMu.Lock()
	p.tids[index] = tid
	p.tidsMu.Unlock()
}

// threadIDs returns a snapshot of every worker's OS thread id, in
// worker-index order.
func (p *Pool) threadIDs() []int {
	p.tidsMu.Lock()
	defer p.tidsMu.Unlock()
	out := make([]int, len(p.tids))
	copy(out, p.tids)
	return out
}

// Close signals every worker to stop, releases the semaphore enough
// times for each to unblock and observe the drained queue, then joins
// all workers. Tasks already queued complete before Close returns.
func (p *Pool) Close() {
	p.sem.Release(int64(len(p.workers)))
	p.wg.Wait()
}

type worker struct {
	index int
	pool  *Pool
}

func (w *worker) run() {
	defer w.pool.wg.Done()
	runtime.LockOSThread()
	w.pool.registerThread(w.index, currentThreadID())
	for {
		task := w.pool.pop()
		if task == nil {
			// A release with an empty queue only happens at Close: every
			// task permit is released strictly after its item is queued,
			// so a permit that finds nothing to pop is the stop signal.
			return
		}
		task(ThreadInfo{Index: w.index})
	}
}
