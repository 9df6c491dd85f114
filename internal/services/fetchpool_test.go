package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPoolRunsTaskAndWaits(t *testing.T) {
	pool := NewFetchPool(2)
	defer pool.Stop()

	var ran atomic.Bool
	err := pool.Run(context.Background(), func() {
		ran.Store(true)
	})
	require.NoError(t, err)
	assert.True(t, ran.Load())
}

func TestFetchPoolBoundsConcurrency(t *testing.T) {
	const workers = 3
	pool := NewFetchPool(workers)
	defer pool.Stop()

	var active, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Run(context.Background(), func() {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				active.Add(-1)
			})
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, peak.Load(), int32(workers))
	assert.Greater(t, peak.Load(), int32(0))
}

func TestFetchPoolRunHonoursContextWhileQueued(t *testing.T) {
	pool := NewFetchPool(1)
	defer pool.Stop()

	block := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = pool.Run(context.Background(), func() {
			close(started)
			<-block
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	var ran atomic.Bool
	err := pool.Run(ctx, func() { ran.Store(true) })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ran.Load())
	close(block)
}

func TestFetchPoolStopDrains(t *testing.T) {
	pool := NewFetchPool(2)
	var done atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Run(context.Background(), func() {
				done.Add(1)
			})
		}()
	}
	wg.Wait()
	pool.Stop()
	assert.Equal(t, int32(5), done.Load())
}
