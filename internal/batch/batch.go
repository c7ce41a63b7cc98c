// Package batch runs many airfoil cases through a generator with bounded
// parallelism.
package batch

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/naca456/internal/engine"
	"github.com/samcharles93/naca456/internal/logger"
	"github.com/samcharles93/naca456/internal/namelist"
)

// Generator is satisfied by *engine.Engine.
type Generator interface {
	Generate(ctx context.Context, p namelist.Params) (*engine.Result, error)
}

// Outcome is the result of one case. Exactly one of Result and Err is set.
type Outcome struct {
	Index   int
	Params  namelist.Params
	Result  *engine.Result
	Err     error
	Elapsed time.Duration
}

// Run generates every case, at most jobs at a time (jobs <= 0 means one per
// CPU). A failing case does not stop the others. Outcomes follow the input
// order.
func Run(ctx context.Context, gen Generator, cases []namelist.Params, jobs int) []Outcome {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	log := logger.Component(logger.FromContext(ctx), "batch")
	outcomes := make([]Outcome, len(cases))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, p := range cases {
		outcomes[i] = Outcome{Index: i, Params: p}
		g.Go(func() error {
			out := &outcomes[i]
			if err := ctx.Err(); err != nil {
				out.Err = err
				return nil
			}
			start := time.Now()
			out.Result, out.Err = gen.Generate(ctx, p)
			out.Elapsed = time.Since(start)
			if out.Err != nil {
				log.Warn("case failed", "case", i+1, "err", out.Err)
			} else {
				log.Debug("case done", "case", i+1, "name", out.Result.Name, "elapsed", out.Elapsed)
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// Summary counts successful and failed outcomes.
func Summary(outcomes []Outcome) (ok, failed int) {
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}
