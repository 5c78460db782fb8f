// Package worker bounds how many CPU-heavy jobs (bcrypt) run at once.
package worker

import "sync"

// Task represents a unit of work executed by the pool.
type Task func()

// Pool defines a fixed-size worker pool. Submit blocks until a worker accepts the task
// and reports false, without running it, once the pool is stopped.
type Pool interface {
	Submit(Task) bool
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
	once sync.Once

	// mu 保護 stopped，Stop 持寫鎖關閉 jobs
	mu      sync.RWMutex
	stopped bool
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		if job != nil {
			job()
		}
	}
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	p.jobs <- t
	return true
}

// Stop waits for running tasks. Calling it twice is a no-op.
func (p *pool) Stop() {
	p.once.Do(func() {
		p.mu.Lock()
		p.stopped = true
		close(p.jobs)
		p.mu.Unlock()
		p.wg.Wait()
	})
}

// Run executes fn on p and waits for it to finish.
// A nil or stopped pool runs fn inline, so requests draining during shutdown still complete.
func Run(p Pool, fn func()) {
	if p == nil {
		fn()
		return
	}
	done := make(chan struct{})
	if !p.Submit(func() {
		defer close(done)
		fn()
	}) {
		fn()
		return
	}
	<-done
}
