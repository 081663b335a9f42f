// Package parallel splits index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// For calls fn over disjoint chunks covering [0, n) and waits for all of
// them. Ranges of at most minChunk items run on the calling goroutine.
func For(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if minChunk < 1 {
		minChunk = 1
	}
	workers := min(runtime.GOMAXPROCS(0), n/minChunk)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
