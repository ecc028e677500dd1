package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"lexfeatures/internal/manifest"
)

// Processor handles one volume start to finish.
type Processor func(ctx context.Context, entry manifest.Entry) error

// VolumeError ties a failure to the volume that produced it.
type VolumeError struct {
	ID  string
	Err error
}

func (e *VolumeError) Error() string {
	return fmt.Sprintf("volume %s: %v", e.ID, e.Err)
}

func (e *VolumeError) Unwrap() error { return e.Err }

// ProcessVolumes fans entries out over a bounded pool of workers. Volumes
// share no mutable state, so each is handled independently; every failure is
// collected and none is retried. Entries not yet started when ctx is done are
// reported with the context error.
func ProcessVolumes(ctx context.Context, entries []manifest.Entry, workers int, fn Processor) []*VolumeError {
	if len(entries) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	jobs := make(chan manifest.Entry)
	errs := make(chan *VolumeError, len(entries))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				if err := ctx.Err(); err != nil {
					errs <- &VolumeError{ID: entry.ID, Err: err}
					continue
				}
				if err := fn(ctx, entry); err != nil {
					errs <- &VolumeError{ID: entry.ID, Err: err}
				}
			}
		}()
	}

	for _, entry := range entries {
		jobs <- entry
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]*VolumeError, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}
