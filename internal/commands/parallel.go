package commands

import (
	"context"
	"runtime"
	"sync"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
)

type job struct {
	index int
	path  string
}

type jobResult[T any] struct {
	index int
	value T
	err   error
}

// forEachFile runs fn over files on a pool of workers (runtime.NumCPU when
// workers <= 0). Results come back in the order of files. The error of the
// earliest failing file is returned; later files are still processed.
func forEachFile[T any](ctx context.Context, files []string, workers int, fn func(path string) (T, error)) ([]T, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(files), 1))
	logger.Debug("processing files", logger.F("files", len(files)), logger.F("workers", workers))

	jobs := make(chan job, len(files))
	results := make(chan jobResult[T], len(files))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- jobResult[T]{index: j.index, err: err}
					continue
				}
				v, err := fn(j.path)
				results <- jobResult[T]{index: j.index, value: v, err: err}
			}
		}()
	}

	for i, f := range files {
		jobs <- job{index: i, path: f}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]T, len(files))
	firstErr, errIndex := error(nil), len(files)
	for r := range results {
		if r.err != nil {
			if r.index < errIndex {
				firstErr, errIndex = r.err, r.index
			}
			continue
		}
		out[r.index] = r.value
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
