// Package scenario defines the outcome of a configured scenario and includes
// functions for computing the outcomes of every active scenario.
package scenario

import (
	"context"
	"fmt"

	"github.com/iwvelando/labor-supply/internal/config"
	"github.com/iwvelando/labor-supply/internal/optimizer"
	"github.com/iwvelando/labor-supply/pkg/model"
	"github.com/iwvelando/labor-supply/pkg/optimization"
	"go.uber.org/zap"
)

// Outcome holds all results computed for a specific scenario.
type Outcome struct {
	Name       string                          `json:"name" yaml:"name"`
	Parameters model.Parameters                `json:"parameters" yaml:"parameters"`
	Result     optimization.Result             `json:"result" yaml:"result"`
	Tax        float64                         `json:"tax" yaml:"tax"`
	Population *optimization.PopulationSummary `json:"population,omitempty" yaml:"population,omitempty"`
	Profile    []optimization.ProfilePoint     `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// Run processes the Outcomes for all active Scenarios.
func Run(ctx context.Context, logger *zap.Logger, conf config.Configuration) ([]Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	solver, err := optimizer.NewSolver(logger, conf.Optimizer)
	if err != nil {
		return nil, err
	}

	for _, sc := range conf.Scenarios {
		if !sc.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", sc.Name),
				zap.String("op", "scenario.Run"),
			)
		}
	}

	var outcomes []Outcome
	for _, sc := range conf.ActiveScenarios() {
		outcome, err := RunScenario(ctx, solver, conf, sc)
		if err != nil {
			return outcomes, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// RunScenario computes the outcome of sc, whose overrides apply to the common
// parameters of conf. The population simulation and wage profile run only
// when enabled in conf.
func RunScenario(ctx context.Context, solver *optimizer.Solver, conf config.Configuration, sc config.Scenario) (Outcome, error) {
	name := sc.Name
	if name == "" {
		name = config.BaselineScenario
	}

	m, err := model.New(conf.ScenarioParameters(sc))
	if err != nil {
		return Outcome{}, err
	}

	outcome, err := solveModel(solver, name, m)
	if err != nil {
		return Outcome{}, err
	}

	if conf.Population.Enabled {
		sample, err := solver.SimulatePopulation(ctx, m, conf.Population, nil)
		if err != nil {
			return Outcome{}, err
		}
		summary := sample.Summary()
		outcome.Population = &summary
	}

	if conf.Profile.Enabled {
		profile, err := solver.WageProfile(m, conf.Profile)
		if err != nil {
			return Outcome{}, err
		}
		outcome.Profile = profile
	}

	return outcome, nil
}

// Solve computes the individual optimum for params without running the
// population simulation or the wage profile.
func Solve(solver *optimizer.Solver, name string, params model.Parameters) (Outcome, error) {
	m, err := model.New(params)
	if err != nil {
		return Outcome{}, err
	}
	return solveModel(solver, name, m)
}

func solveModel(solver *optimizer.Solver, name string, m *model.UtilityModel) (Outcome, error) {
	result, err := solver.SolveIndividual(m)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Name:       name,
		Parameters: m.Parameters(),
		Result:     result,
		Tax:        m.TaxPayment(result.Labor),
	}, nil
}
