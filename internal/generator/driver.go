package generator

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// RunOptions configures one call to Run.
type RunOptions struct {
	StartFrom   expe.Step
	MissingOnly bool
	OnlyLLMs    []string
	// SaveEvery, when > 0, checkpoints the whole Expe to SavePath every N
	// completed QAs (save_every).
	SaveEvery int
	SavePath  string
	// AllowOverwrite is forwarded to expe.Save for checkpoint writes.
	AllowOverwrite bool
	// ShowProgress renders a progress bar to stdout as QAs complete.
	ShowProgress bool
}

// Run fans a StageGenerator out across every QA in e concurrently — one
// goroutine per QA, fanning results back in over a WaitGroup.
//
// A QA whose ProcessOne call panics or returns an error is treated as an
// unhandled failure: the whole Expe is snapshotted
// under a "Stopped_at_<i>_of_<N>_" failure-tagged name and that QA's
// processing stops, but every other QA's goroutine continues undisturbed.
func Run(ctx context.Context, e *expe.Expe, gen StageGenerator, opts RunOptions) error {
	n := e.Len()
	if n == 0 {
		return nil
	}

	var saveMu sync.Mutex
	var wg sync.WaitGroup
	var completed atomic.Int32

	reporter := newProgressReporter(n, opts.ShowProgress)
	defer reporter.finish()

	for i := range e.QAs {
		wg.Add(1)
		i, qa := i, &e.QAs[i]
		num := i + 1

		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[generator] panic processing QA %d/%d %q: %v", num, n, qa.Question.Text, r)
					snapshotOnFailure(&saveMu, e, opts, num, n)
				}
			}()

			if err := gen.ProcessOne(ctx, qa, opts.StartFrom, opts.MissingOnly, opts.OnlyLLMs); err != nil {
				log.Printf("[generator] unhandled error processing QA %d/%d %q: %v", num, n, qa.Question.Text, err)
				snapshotOnFailure(&saveMu, e, opts, num, n)
				return
			}

			reporter.increment(qa.Question.Text)

			c := completed.Add(1)
			if opts.SaveEvery > 0 && opts.SavePath != "" && int(c)%opts.SaveEvery == 0 {
				saveMu.Lock()
				if _, err := expe.Save(e, opts.SavePath, opts.AllowOverwrite); err != nil {
					log.Printf("[generator] checkpoint save failed: %v", err)
				}
				saveMu.Unlock()
				reportResources()
			}
		}()
	}

	wg.Wait()
	return nil
}

func snapshotOnFailure(mu *sync.Mutex, e *expe.Expe, opts RunOptions, i, n int) {
	if opts.SavePath == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	dir := filepath.Dir(opts.SavePath)
	base := filepath.Base(opts.SavePath)
	name := filepath.Join(dir, expe.FailureSnapshotName(base, i, n))
	if _, err := expe.Save(e, name, true); err != nil {
		log.Printf("[generator] failure snapshot save failed: %v", err)
	}
}
