package testutil

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrRejected lets concurrent test bodies report an expected refusal (for
// example a rate-limit rejection) separately from unexpected errors.
var ErrRejected = errors.New("rejected")

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes int32
	Rejected  int32
	Errors    int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Rejected + r.Errors
}

// RunConcurrent executes fn in parallel goroutines released at the same
// moment and collects the outcomes.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, rejected, errs atomic.Int32
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrRejected):
				rejected.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Rejected:  rejected.Load(),
		Errors:    errs.Load(),
	}
}
