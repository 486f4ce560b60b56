// Package optimizer solves the consumer's labor supply problem for one
// individual and aggregates tax revenue over a simulated population.
package optimizer

import (
	"fmt"

	"github.com/iwvelando/labor-supply/internal/config"
	"github.com/iwvelando/labor-supply/pkg/minimize"
	"github.com/iwvelando/labor-supply/pkg/model"
	"github.com/iwvelando/labor-supply/pkg/optimization"
	"go.uber.org/zap"
)

// Solver maximizes utility over a bounded labor supply interval.
type Solver struct {
	logger   *zap.Logger
	lower    float64
	upper    float64
	settings minimize.Settings
}

// NewSolver constructs a Solver for the provided optimizer configuration.
func NewSolver(logger *zap.Logger, conf config.OptimizerConfig) (*Solver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &Solver{
		logger:   logger,
		lower:    conf.LowerBound(),
		upper:    conf.UpperBound(),
		settings: conf.Settings(),
	}, nil
}

// SolveIndividual returns the utility-maximizing labor supply together with
// the consumption and utility it implies.
func (s *Solver) SolveIndividual(m *model.UtilityModel) (optimization.Result, error) {
	result, err := s.solve(m)
	if err != nil {
		return optimization.Result{}, err
	}

	params := m.Parameters()
	s.logger.Debug("solved individual problem",
		zap.String("op", "optimizer.SolveIndividual"),
		zap.Float64("wage", params.Wage),
		zap.Float64("labor", result.Labor),
		zap.Float64("consumption", result.Consumption),
		zap.Float64("utility", result.Utility),
		zap.Int("evaluations", result.Evaluations),
	)
	return result, nil
}

func (s *Solver) solve(m *model.UtilityModel) (optimization.Result, error) {
	if m == nil {
		return optimization.Result{}, fmt.Errorf("utility model cannot be nil")
	}

	// Minimizing negative utility. The budget constraint has a kink at
	// kappa/w, so only function values are used.
	objective := func(labor float64) (float64, error) {
		u, err := m.Utility(m.AfterTaxConsumption(labor), labor)
		if err != nil {
			return 0, err
		}
		return -u, nil
	}

	res, err := minimize.Bounded(objective, s.lower, s.upper, s.settings)
	if err != nil {
		return optimization.Result{}, fmt.Errorf("labor supply at wage %g: %w", m.Parameters().Wage, err)
	}

	labor := res.X
	consumption := m.AfterTaxConsumption(labor)
	utility, err := m.Utility(consumption, labor)
	if err != nil {
		return optimization.Result{}, fmt.Errorf("labor supply at wage %g: %w", m.Parameters().Wage, err)
	}

	return optimization.Result{
		Labor:       labor,
		Consumption: consumption,
		Utility:     utility,
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		Converged:   res.Converged,
	}, nil
}

// solveAt solves the problem of an individual who differs from base only in
// the wage, and records the tax paid at the optimum.
func (s *Solver) solveAt(base *model.UtilityModel, wage float64) (optimization.Individual, error) {
	m, err := base.WithWage(wage)
	if err != nil {
		return optimization.Individual{}, err
	}
	result, err := s.solve(m)
	if err != nil {
		return optimization.Individual{}, err
	}
	return optimization.Individual{
		Wage:   wage,
		Result: result,
		Tax:    m.TaxPayment(result.Labor),
	}, nil
}
