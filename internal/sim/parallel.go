package sim

import (
	"context"
	"sync"

	"github.com/san-kum/machinesim/internal/factory"
)

// Ensemble records several machines at once. Each run builds its own
// machine and world from the registry, which is only read. Engine steps
// are serialised inside the physics package, so runs overlap everywhere
// but in the solver.
type Ensemble struct {
	registry *factory.Registry
	metrics  func() []Metric
}

// NewEnsemble takes a constructor for metrics since metrics carry state
// and cannot be shared between runs. It may be nil.
func NewEnsemble(registry *factory.Registry, metrics func() []Metric) *Ensemble {
	return &Ensemble{registry: registry, metrics: metrics}
}

// Run records every machine in numbers. Traces come back in the same
// order. The first error is returned after all runs finish.
func (e *Ensemble) Run(ctx context.Context, numbers []int, cfg Config) ([]*Trace, error) {
	traces := make([]*Trace, len(numbers))
	errs := make([]error, len(numbers))

	var wg sync.WaitGroup
	for i, n := range numbers {
		wg.Add(1)
		go func(idx, number int) {
			defer wg.Done()

			rec := NewRecorder()
			if e.metrics != nil {
				for _, m := range e.metrics() {
					rec.AddMetric(m)
				}
			}
			traces[idx], errs[idx] = rec.Record(ctx, e.registry.Create(number), cfg)
		}(i, n)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return traces, err
		}
	}

	return traces, nil
}
