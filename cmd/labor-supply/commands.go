package main

import (
	"fmt"

	"github.com/iwvelando/labor-supply/internal/config"
	"github.com/iwvelando/labor-supply/internal/optimizer"
	"github.com/iwvelando/labor-supply/internal/scenario"
	"github.com/iwvelando/labor-supply/pkg/constants"
	"github.com/iwvelando/labor-supply/pkg/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// parameterFlags binds one flag per consumer parameter. Only flags set on the
// command line override the configured scenario.
type parameterFlags struct {
	cashOnHand       float64
	laborDisutility  float64
	elasticity       float64
	baseTaxRate      float64
	topTaxRate       float64
	topBracketCutoff float64
	wage             float64
}

func (p *parameterFlags) register(flags *pflag.FlagSet) {
	flags.Float64Var(&p.cashOnHand, "cash-on-hand", 0, "non-labor income m")
	flags.Float64Var(&p.laborDisutility, "labor-disutility", 0, "labor disutility weight v")
	flags.Float64Var(&p.elasticity, "elasticity", 0, "Frisch elasticity of labor supply eps")
	flags.Float64Var(&p.baseTaxRate, "base-tax-rate", 0, "tax rate tau0 on all labor income")
	flags.Float64Var(&p.topTaxRate, "top-tax-rate", 0, "additional tax rate tau1 above the cutoff")
	flags.Float64Var(&p.topBracketCutoff, "top-bracket-cutoff", 0, "income cutoff kappa of the top bracket")
	flags.Float64Var(&p.wage, "wage", 0, "hourly wage w")
}

func (p *parameterFlags) overrides(flags *pflag.FlagSet) config.ParameterOverrides {
	var o config.ParameterOverrides
	set := func(name string, value float64) *float64 {
		if !flags.Changed(name) {
			return nil
		}
		return &value
	}
	o.CashOnHand = set("cash-on-hand", p.cashOnHand)
	o.LaborDisutility = set("labor-disutility", p.laborDisutility)
	o.Elasticity = set("elasticity", p.elasticity)
	o.BaseTaxRate = set("base-tax-rate", p.baseTaxRate)
	o.TopTaxRate = set("top-tax-rate", p.topTaxRate)
	o.TopBracketCutoff = set("top-bracket-cutoff", p.topBracketCutoff)
	o.Wage = set("wage", p.wage)
	return o
}

// resolveScenario returns a copy of the configuration whose common parameters
// are those of the named scenario with command line overrides applied.
func (a *app) resolveScenario(cmd *cobra.Command, name string, params *parameterFlags) (config.Configuration, string, error) {
	conf := *a.conf
	resolved, err := conf.ResolveParameters(name)
	if err != nil {
		return conf, "", err
	}
	conf.Common.Parameters = params.overrides(cmd.Flags()).Apply(resolved)
	conf.Scenarios = nil
	if name == "" {
		name = config.BaselineScenario
	}
	return conf, name, nil
}

func (a *app) newSolver(conf config.Configuration) (*optimizer.Solver, error) {
	return optimizer.NewSolver(a.logger, conf.Optimizer)
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		scenarioName string
		params       parameterFlags
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the individual labor supply problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, name, err := a.resolveScenario(cmd, scenarioName, &params)
			if err != nil {
				return err
			}
			solver, err := a.newSolver(conf)
			if err != nil {
				return err
			}
			outcome, err := scenario.Solve(solver, name, conf.Common.Parameters)
			if err != nil {
				a.logger.Error("failed to solve labor supply problem",
					zap.String("op", "main.solve"),
					zap.Error(err),
				)
				return err
			}
			return output.Write(a.out, a.outputFormat, []scenario.Outcome{outcome})
		},
	}
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "scenario to solve (default: the common parameters)")
	params.register(cmd.Flags())
	return cmd
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		scenarioName  string
		params        parameterFlags
		size          int
		low, high     float64
		seed          uint64
		workers       int
		failurePolicy string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate the tax revenue raised from a population with uniform wages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, name, err := a.resolveScenario(cmd, scenarioName, &params)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("size") {
				conf.Population.Size = size
			}
			if flags.Changed("low") {
				conf.Population.WageLow = low
			}
			if flags.Changed("high") {
				conf.Population.WageHigh = high
			}
			if flags.Changed("seed") {
				conf.Population.Seed = seed
			}
			if flags.Changed("workers") {
				conf.Population.Workers = workers
			}
			if flags.Changed("failure-policy") {
				conf.Population.FailurePolicy = failurePolicy
			}
			conf.Population.Enabled = true
			conf.Profile.Enabled = false

			return a.runOne(cmd, conf, name, "main.simulate")
		},
	}
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "scenario whose parameters are used (default: the common parameters)")
	params.register(cmd.Flags())
	cmd.Flags().IntVar(&size, "size", constants.DefaultPopulationSize, "number of individuals")
	cmd.Flags().Float64Var(&low, "low", constants.DefaultWageLow, "lowest wage drawn")
	cmd.Flags().Float64Var(&high, "high", constants.DefaultWageHigh, "highest wage drawn")
	cmd.Flags().Uint64Var(&seed, "seed", constants.DefaultSeed, "random seed for the wage draws")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel solvers (0: one per CPU)")
	cmd.Flags().StringVar(&failurePolicy, "failure-policy", constants.FailurePolicyAbort, "on an unsolvable individual: abort or skip")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	var (
		scenarioName string
		params       parameterFlags
		low, high    float64
		points       int
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Tabulate optimal labor supply over a grid of wages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, name, err := a.resolveScenario(cmd, scenarioName, &params)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("low") {
				conf.Profile.WageLow = low
			}
			if flags.Changed("high") {
				conf.Profile.WageHigh = high
			}
			if flags.Changed("points") {
				conf.Profile.Points = points
			}
			conf.Profile.Enabled = true
			conf.Population.Enabled = false

			outcome, err := a.scenarioOutcome(cmd, conf, name, "main.profile")
			if err != nil {
				return err
			}

			switch a.outputFormat {
			case constants.OutputFormatPretty:
				return output.ProfileFormat(a.out, outcome.Profile)
			case constants.OutputFormatCSV:
				return output.ProfileCsvFormat(a.out, outcome.Profile)
			default:
				return output.Write(a.out, a.outputFormat, []scenario.Outcome{outcome})
			}
		},
	}
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "scenario whose parameters are used (default: the common parameters)")
	params.register(cmd.Flags())
	cmd.Flags().Float64Var(&low, "low", constants.DefaultWageLow, "lowest wage in the grid")
	cmd.Flags().Float64Var(&high, "high", constants.DefaultWageHigh, "highest wage in the grid")
	cmd.Flags().IntVar(&points, "points", constants.DefaultProfilePoints, "number of grid points")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every active scenario in the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.conf.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			outcomes, err := scenario.Run(cmd.Context(), a.logger, *a.conf)
			if err != nil {
				a.logger.Error("failed to run scenarios",
					zap.String("op", "main.run"),
					zap.Error(err),
				)
				return err
			}
			return output.Write(a.out, a.outputFormat, outcomes)
		},
	}
}

func (a *app) runOne(cmd *cobra.Command, conf config.Configuration, name, op string) error {
	outcome, err := a.scenarioOutcome(cmd, conf, name, op)
	if err != nil {
		return err
	}
	return output.Write(a.out, a.outputFormat, []scenario.Outcome{outcome})
}

func (a *app) scenarioOutcome(cmd *cobra.Command, conf config.Configuration, name, op string) (scenario.Outcome, error) {
	if err := conf.Validate(); err != nil {
		return scenario.Outcome{}, fmt.Errorf("invalid configuration: %w", err)
	}
	solver, err := a.newSolver(conf)
	if err != nil {
		return scenario.Outcome{}, err
	}
	outcome, err := scenario.RunScenario(cmd.Context(), solver, conf, config.Scenario{Name: name, Active: true})
	if err != nil {
		a.logger.Error("failed to compute scenario",
			zap.String("op", op),
			zap.String("scenario", name),
			zap.Error(err),
		)
		return scenario.Outcome{}, err
	}
	return outcome, nil
}
