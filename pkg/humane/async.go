package humane

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a pending computation.
type Result[T any] struct {
	Value T
	Err   error
}

// AttachAfter waits for pending to resolve and delivers the same result on
// the returned channel, annotating a failure first. The capture site is the
// caller of AttachAfter. A pending channel that closes without a value
// delivers a zero Result.
func AttachAfter[T any](pending <-chan Result[T], failureMode string, suggestions ...string) <-chan Result[T] {
	loc := callerLocation(1)
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		res := <-pending
		if res.Err != nil {
			res.Err = AttachAt(res.Err, loc, failureMode, suggestions...)
		}
		out <- res
	}()
	return out
}

// Call runs fn and annotates the error it returns, if any.
func Call[T any](fn func() (T, error), failureMode string, suggestions ...string) (T, error) {
	loc := callerLocation(1)
	v, err := fn()
	if err != nil {
		err = AttachAt(err, loc, failureMode, suggestions...)
	}
	return v, err
}

// Group runs tasks concurrently like errgroup.Group and annotates the error
// of a failing task before Wait returns it.
type Group struct {
	g *errgroup.Group
}

// WithContext returns a Group and a context that is canceled when a task
// fails or Wait returns.
func WithContext(ctx context.Context) (*Group, context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	return &Group{g: g}, ctx
}

// Go starts fn in a new goroutine. A non-nil error from fn is annotated with
// failureMode and suggestions.
func (g *Group) Go(fn func() error, failureMode string, suggestions ...string) {
	if g.g == nil {
		g.g = new(errgroup.Group)
	}
	loc := callerLocation(1)
	g.g.Go(func() error {
		if err := fn(); err != nil {
			return AttachAt(err, loc, failureMode, suggestions...)
		}
		return nil
	})
}

// SetLimit limits the number of tasks running at once.
func (g *Group) SetLimit(n int) {
	if g.g == nil {
		g.g = new(errgroup.Group)
	}
	g.g.SetLimit(n)
}

// Wait blocks until every task has returned and reports the first failure.
func (g *Group) Wait() error {
	if g.g == nil {
		return nil
	}
	return g.g.Wait()
}
