// Package worker runs blocking image jobs off the request loop.
//
// A Pool caps how many jobs run at once. Do hands one job to the pool and
// waits for its result. Jobs are never interrupted once started: if the
// caller's context ends first, Do returns early and the job's result is
// dropped when it finishes.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/sync/semaphore"
)

// FaultError reports that a job could not run to a normal return. It wraps a
// recovered panic so one bad job does not take the process down.
type FaultError struct {
	Job   string
	Value any
	Stack []byte
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("task execution failed (%s): %v", e.Job, e.Value)
}

// Pool bounds the number of concurrently running jobs.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool that runs at most size jobs at once. A size below 1
// uses runtime.NumCPU().
func NewPool(size int) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
}

// Size returns the maximum number of concurrent jobs.
func (p *Pool) Size() int { return p.size }

type result[T any] struct {
	value T
	err   error
}

// Do runs fn on its own goroutine once the pool has a free slot and waits for
// it to finish. job names the work in fault messages.
//
// A panic inside fn is returned as a *FaultError. If ctx is done before fn
// starts or finishes, Do returns ctx.Err(); a job that already started keeps
// running and holds its slot until it returns.
func Do[T any](ctx context.Context, p *Pool, job string, fn func() (T, error)) (T, error) {
	var zero T

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		defer p.sem.Release(1)
		defer func() {
			if v := recover(); v != nil {
				done <- result[T]{err: &FaultError{Job: job, Value: v, Stack: debug.Stack()}}
			}
		}()

		value, err := fn()
		done <- result[T]{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
