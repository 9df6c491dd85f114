package services

import (
	"context"
	"sync"
)

// FetchPool caps the number of in-flight upstream lookups so a slow or hanging
// data source cannot tie up every request goroutine at once.
type FetchPool struct {
	tasks    chan poolTask
	wg       sync.WaitGroup
	stopOnce sync.Once
}

type poolTask struct {
	fn   func()
	done chan struct{}
}

func NewFetchPool(workers int) *FetchPool {
	if workers < 1 {
		workers = 1
	}
	p := &FetchPool{tasks: make(chan poolTask)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *FetchPool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		t.fn()
		close(t.done)
	}
}

// Run hands fn to a worker and blocks until it has finished. If ctx ends
// before a worker picks the task up, Run returns the context error and fn is
// never executed.
func (p *FetchPool) Run(ctx context.Context, fn func()) error {
	t := poolTask{fn: fn, done: make(chan struct{})}
	select {
	case p.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	}
	<-t.done
	return nil
}

// Stop waits for the workers to drain and exit.
func (p *FetchPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
