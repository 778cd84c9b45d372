package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/pkg/workerpool"
)

func TestPool_RunsEverySubmittedTask(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 200
	var ran atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		require.NoError(t, pool.SubmitWait(func() {
			defer wg.Done()
			ran.Add(1)
		}))
	}
	wg.Wait()

	assert.EqualValues(t, n, ran.Load())
}

func TestPool_SubmitBackpressure(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, pool.SubmitWait(func() {
		close(started)
		<-blocker
	}))
	<-started

	// The buffer holds 2× the worker count; fill it.
	require.NoError(t, pool.Submit(func() {}))
	require.NoError(t, pool.Submit(func() {}))

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolFull)

	close(blocker)
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
}

func TestPool_SurvivesPanickingTask(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, pool.SubmitWait(func() {
		defer wg.Done()
		panic("boom")
	}))
	wg.Wait()

	done := make(chan struct{})
	require.NoError(t, pool.SubmitWait(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task after panic never ran")
	}
}

func TestPool_ShutdownDrainsInFlightWork(t *testing.T) {
	pool := workerpool.New(8)

	var ran atomic.Int64
	for i := 0; i < 40; i++ {
		require.NoError(t, pool.SubmitWait(func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		}))
	}

	pool.Shutdown()
	assert.EqualValues(t, 40, ran.Load())
}
