package util

import "sync"

// ParallelBands splits [0,total) into contiguous bands across at most
// workers goroutines, calls fn on each band and waits for all of them.
// workers below one runs everything on the calling goroutine.
func ParallelBands(total, workers int, fn func(start, end int)) {
	if total <= 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}
	if workers == 1 {
		fn(0, total)
		return
	}
	per := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * per
		end := start + per
		if end > total {
			end = total
		}
		if start >= total {
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
