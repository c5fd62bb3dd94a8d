package renderer

import (
	"runtime"
	"sync"
)

// parallelFor partitions the half-open range [0, n) into numWorkers
// contiguous, disjoint chunks and runs fn over each index concurrently,
// the worker-pool shape spec.md §5 allows for parallelizing a PT stage:
// each worker owns a disjoint range of path indices and nothing else is
// shared but the (thread-safe) accumulator fn writes into.
func parallelFor(n, numWorkers int, fn func(index int)) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
