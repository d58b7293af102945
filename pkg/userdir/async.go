// pkg/userdir/async.go

package userdir

import (
	"context"

	cerr "github.com/cockroachdb/errors"
)

// Async runs op on its own goroutine and delivers exactly one Outcome on the
// returned channel, which is then closed. Calls are independent: nothing
// de-duplicates, orders, or cancels overlapping ones.
func Async(ctx context.Context, op func(context.Context) Outcome) <-chan Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Failure(cerr.AssertionFailedf("panic: %v", r))
			}
		}()
		ch <- op(ctx)
	}()
	return ch
}

// RunAsync is Async for a Request against r.
func RunAsync(ctx context.Context, r Runner, req Request) <-chan Outcome {
	return Async(ctx, func(ctx context.Context) Outcome {
		return r.Run(ctx, req)
	})
}
