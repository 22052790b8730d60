package advanced

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Options tunes how the per-point passes are scheduled. The zero value runs
// everything on the calling goroutine. Output never depends on Workers.
type Options struct {
	// Number of goroutines to split the points across. Values below 2 mean
	// sequential.
	Workers int
}

// A panic caught on a worker goroutine, carried back to the caller so it can
// be raised again where the public API can recover it.
type workerPanic struct {
	value interface{}
}

func (p workerPanic) Error() string {
	return "panic in worker"
}

// Run the closure returned by newWorker for every index in [0, n). Each worker
// goroutine gets its own closure, so closures may keep scratch buffers.
func forEachPoint(n int, workers int, newWorker func() func(i int)) {
	if workers < 2 || n < 2 {
		work := newWorker()
		for i := 0; i < n; i++ {
			work(i)
		}
		return
	}

	workers = min(workers, n)
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = workerPanic{r}
				}
			}()
			work := newWorker()
			for i := start; i < end; i++ {
				work(i)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var p workerPanic
		if errors.As(err, &p) {
			panic(p.value)
		}
		panic(err)
	}
}
