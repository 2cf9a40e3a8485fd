package evolver

import (
	"context"
	"sync"

	"ariadne/concurrency"
	"ariadne/enclosure"
	"ariadne/function"
	"ariadne/numeric"
)

// OrbitMany runs Orbit independently over each of seeds using a fixed
// worker pool, following spec.md 5's optional thread-pool model: each
// enclosure's evolution is entirely serialised within itself, no
// ordering is assumed across enclosures, and the combined result is
// the union of the per-enclosure reach/intermediate/final
// contributions. Enclosures are immutable, so handing one to a worker
// goroutine never risks a data race.
func (ev *VectorFieldEvolver) OrbitMany(ctx context.Context, f *function.Function, seeds []*enclosure.Enclosure, t float64, numWorkers int) (*Orbit, error) {
	cfg := ev.Config
	results := make([]*Orbit, len(seeds))
	errs := make([]error, len(seeds))

	pool := concurrency.NewPool(numWorkers, len(seeds)+1)
	var wg sync.WaitGroup
	wg.Add(len(seeds))
	for i, seed := range seeds {
		i, seed := i, seed
		pool.Enqueue(func() {
			defer wg.Done()
			o, err := ev.Orbit(ctx, f, seed, numeric.FromFloat64(t, cfg.Prec))
			results[i] = o
			errs[i] = err
		})
	}
	wg.Wait()
	pool.Shutdown()

	merged := &Orbit{}
	for i, o := range results {
		if errs[i] != nil {
			return merged, errs[i]
		}
		if o == nil {
			continue
		}
		merged.Reach = append(merged.Reach, o.Reach...)
		merged.Intermediate = append(merged.Intermediate, o.Intermediate...)
		merged.Final = append(merged.Final, o.Final...)
	}
	return merged, nil
}
