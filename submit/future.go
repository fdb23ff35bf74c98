package submit

import (
	"context"
	"errors"
	"sync"
)

// ErrNoFuture is the rejection used when a Submitter returns a nil Future.
var ErrNoFuture = errors.New("submit: submitter returned no future")

// Result is what a transport reports for a submission.
type Result struct {
	Success bool
}

// Future is the pending outcome of a submission. It settles exactly once,
// either resolved with a Result or rejected with an error.
type Future struct {
	once sync.Once
	done chan struct{}
	res  Result
	err  error
}

// NewFuture returns an unsettled Future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a Future already settled with r.
func Resolved(r Result) *Future {
	f := NewFuture()
	f.Resolve(r)
	return f
}

// Rejected returns a Future already settled with err.
func Rejected(err error) *Future {
	f := NewFuture()
	f.Reject(err)
	return f
}

// Resolve settles f with r. It reports false if f was already settled.
func (f *Future) Resolve(r Result) bool {
	return f.settle(r, nil)
}

// Reject settles f with err. It reports false if f was already settled.
func (f *Future) Reject(err error) bool {
	if err == nil {
		err = errors.New("submit: rejected")
	}
	return f.settle(Result{}, err)
}

func (f *Future) settle(r Result, err error) bool {
	settled := false
	f.once.Do(func() {
		f.res, f.err = r, err
		settled = true
		close(f.done)
	})
	return settled
}

// Done is closed once f settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until f settles or ctx is done.
func (f *Future) Await(ctx context.Context) (Result, error) {
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
