package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/orbitlab/internal/logging"
)

// Ensemble runs independent configurations concurrently, at most
// Workers at a time.
type Ensemble struct {
	log     logging.Logger
	Workers int
}

func NewEnsemble(log logging.Logger, workers int) *Ensemble {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Ensemble{log: log, Workers: workers}
}

// Run returns results in the order of cfgs. The first error wins; the
// remaining runs still complete.
func (e *Ensemble) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))
	sem := make(chan struct{}, e.Workers)

	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx], errs[idx] = New(e.log).Run(ctx, cfgs[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
