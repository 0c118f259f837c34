// Package scan runs independent tunneling solves in parallel: multiple
// vacuum pairs, potential parameters or solver settings, each an isolated
// scenario with no shared mutable state.
package scan

import (
	"context"
	"sync"

	"github.com/san-kum/bounce"
	"github.com/san-kum/bounce/config"
	"github.com/san-kum/bounce/field"
)

// Scenario is one independent solve.
type Scenario struct {
	Name     string
	Pot      field.Potential
	FalseVac field.Point
	TrueVac  field.Point
	// Cfg may be nil for defaults. Scenarios must not share mutable
	// potential state.
	Cfg *config.Config
}

// Outcome pairs a scenario with its result.
type Outcome struct {
	Name   string
	Result *bounce.Result
	Err    error
}

// Run solves every scenario concurrently and returns outcomes in input
// order.
func Run(ctx context.Context, scenarios []Scenario) []Outcome {
	outcomes := make([]Outcome, len(scenarios))

	var wg sync.WaitGroup
	for i := range scenarios {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sc := scenarios[idx]
			res, err := bounce.Solve(ctx, sc.Pot, sc.FalseVac, sc.TrueVac, sc.Cfg)
			outcomes[idx] = Outcome{Name: sc.Name, Result: res, Err: err}
		}(i)
	}
	wg.Wait()

	return outcomes
}
