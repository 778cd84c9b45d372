// Package workerpool bounds concurrent fan-out work. The asset sweep
// uses it to cap parallel existence checks against the storage backend,
// which may be a remote object store with per-connection cost.
//
//	pool := workerpool.New(4)
//	defer pool.Shutdown()
//	_ = pool.SubmitWait(func() { checkFile(name) })
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when the task buffer is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit and SubmitWait after Shutdown.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
}

// New starts a pool with size workers; size below 1 is treated as 1.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		// Buffer twice the worker count to absorb bursts.
		tasks:   make(chan func(), size*2),
		closeCh: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues task without blocking. ErrPoolFull means the buffer
// is at capacity and the caller should back off or drop the task.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until a buffer slot frees up or the pool closes.
// Callers iterating a large listing use this so no item is dropped.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops intake, drains in-flight tasks, and releases the
// workers. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

// safeRun keeps a panicking task from taking the worker down with it.
func safeRun(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
