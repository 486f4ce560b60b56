package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/iwvelando/labor-supply/internal/config"
	"github.com/iwvelando/labor-supply/pkg/model"
	"github.com/iwvelando/labor-supply/pkg/optimization"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Failure records an individual excluded from the aggregate.
type Failure struct {
	Index int
	Wage  float64
	Err   error
}

// Sample is a simulated population. Individuals is index-aligned with Wages;
// entries listed in Failures carry only their wage.
type Sample struct {
	Wages           []float64
	Individuals     []optimization.Individual
	Failures        []Failure
	TotalTaxRevenue float64

	population config.PopulationConfig
}

// Summary condenses the sample into aggregate figures over the solved individuals.
func (s *Sample) Summary() optimization.PopulationSummary {
	failed := make(map[int]bool, len(s.Failures))
	for _, f := range s.Failures {
		failed[f.Index] = true
	}

	solved := len(s.Individuals) - len(failed)
	wages := make([]float64, 0, solved)
	labor := make([]float64, 0, solved)
	taxes := make([]float64, 0, solved)
	for i, ind := range s.Individuals {
		if failed[i] {
			continue
		}
		wages = append(wages, ind.Wage)
		labor = append(labor, ind.Result.Labor)
		taxes = append(taxes, ind.Tax)
	}

	summary := optimization.PopulationSummary{
		Size:            len(s.Wages),
		Solved:          solved,
		Failed:          len(failed),
		WageLow:         s.population.WageLow,
		WageHigh:        s.population.WageHigh,
		Seed:            s.population.Seed,
		TotalTaxRevenue: s.TotalTaxRevenue,
	}
	if solved > 0 {
		summary.MeanWage = stat.Mean(wages, nil)
		summary.MeanLabor = stat.Mean(labor, nil)
		summary.MeanTax = stat.Mean(taxes, nil)
	}
	return summary
}

// NewSource returns the generator used for a seeded wage draw.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// DrawWages draws size wages uniformly from [low, high] using src.
func DrawWages(src rand.Source, size int, low, high float64) []float64 {
	dist := distuv.Uniform{Min: low, Max: high, Src: src}
	wages := make([]float64, size)
	for i := range wages {
		wages[i] = dist.Rand()
	}
	return wages
}

// SimulatePopulation draws the population's wages from src, solves every
// individual, and sums their tax payments in draw order. A nil src is
// replaced by a generator seeded from pop.Seed.
//
// Individuals are solved concurrently, but the sum is always accumulated in
// draw order, so the result does not depend on pop.Workers.
func (s *Solver) SimulatePopulation(ctx context.Context, base *model.UtilityModel, pop config.PopulationConfig, src rand.Source) (*Sample, error) {
	if base == nil {
		return nil, fmt.Errorf("utility model cannot be nil")
	}
	if err := pop.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewSource(pop.Seed)
	}

	start := time.Now()
	skip := pop.SkipFailures()
	wages := DrawWages(src, pop.Size, pop.WageLow, pop.WageHigh)
	individuals := make([]optimization.Individual, len(wages))
	errs := make([]error, len(wages))

	workers := pop.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, wage := range wages {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ind, err := s.solveAt(base, wage)
			if err != nil {
				if skip && !errors.Is(err, model.ErrInvalidParameter) {
					errs[i] = err
					individuals[i] = optimization.Individual{Wage: wage}
					return nil
				}
				return fmt.Errorf("individual %d: %w", i, err)
			}
			individuals[i] = ind
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sample := &Sample{
		Wages:       wages,
		Individuals: individuals,
		population:  pop,
	}
	for i := range wages {
		if errs[i] != nil {
			sample.Failures = append(sample.Failures, Failure{Index: i, Wage: wages[i], Err: errs[i]})
			s.logger.Warn("excluding individual from tax revenue",
				zap.String("op", "optimizer.SimulatePopulation"),
				zap.Int("index", i),
				zap.Float64("wage", wages[i]),
				zap.Error(errs[i]),
			)
			continue
		}
		sample.TotalTaxRevenue += individuals[i].Tax
	}

	s.logger.Info("simulated population",
		zap.String("op", "optimizer.SimulatePopulation"),
		zap.Int("size", pop.Size),
		zap.Int("failed", len(sample.Failures)),
		zap.Int("workers", workers),
		zap.Float64("totalTaxRevenue", sample.TotalTaxRevenue),
		zap.Duration("duration", time.Since(start)),
	)
	return sample, nil
}

// SimulateTaxRevenue returns the total tax revenue of size individuals whose
// wages are drawn uniformly from [low, high] with a generator seeded from
// seed. Any failing individual aborts the aggregation.
func (s *Solver) SimulateTaxRevenue(ctx context.Context, base *model.UtilityModel, size int, low, high float64, seed uint64) (float64, error) {
	pop := config.PopulationConfig{
		Size:     size,
		WageLow:  low,
		WageHigh: high,
		Seed:     seed,
	}
	sample, err := s.SimulatePopulation(ctx, base, pop, NewSource(seed))
	if err != nil {
		return 0, err
	}
	return sample.TotalTaxRevenue, nil
}
