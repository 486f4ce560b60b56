// Package config defines the data structures related to configuration and
// includes functions for loading and resolving it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/labor-supply/pkg/constants"
	"github.com/iwvelando/labor-supply/pkg/model"
	"github.com/iwvelando/labor-supply/pkg/validation"
	"github.com/spf13/viper"
)

// BaselineScenario is the name of the implicit scenario used when a
// configuration declares none.
const BaselineScenario = "baseline"

// Configuration holds all configuration for labor-supply.
type Configuration struct {
	Common     Common           `yaml:"common" mapstructure:"common"`
	Scenarios  []Scenario       `yaml:"scenarios,omitempty" mapstructure:"scenarios"`
	Optimizer  OptimizerConfig  `yaml:"optimizer" mapstructure:"optimizer"`
	Population PopulationConfig `yaml:"population" mapstructure:"population"`
	Profile    ProfileConfig    `yaml:"profile" mapstructure:"profile"`
	Logging    LoggingConfig    `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig     `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, yaml
}

// Common holds the parameters shared between all scenarios.
type Common struct {
	Parameters model.Parameters `yaml:"parameters" mapstructure:"parameters"`
}

// Scenario is a named variation of the common parameters.
type Scenario struct {
	Name      string             `yaml:"name" mapstructure:"name"`
	Active    bool               `yaml:"active" mapstructure:"active"`
	Overrides ParameterOverrides `yaml:"overrides,omitempty" mapstructure:"overrides"`
}

// ParameterOverrides replaces any subset of the common parameters.
type ParameterOverrides struct {
	CashOnHand       *float64 `yaml:"cashOnHand,omitempty" mapstructure:"cashOnHand"`
	LaborDisutility  *float64 `yaml:"laborDisutility,omitempty" mapstructure:"laborDisutility"`
	Elasticity       *float64 `yaml:"elasticity,omitempty" mapstructure:"elasticity"`
	BaseTaxRate      *float64 `yaml:"baseTaxRate,omitempty" mapstructure:"baseTaxRate"`
	TopTaxRate       *float64 `yaml:"topTaxRate,omitempty" mapstructure:"topTaxRate"`
	TopBracketCutoff *float64 `yaml:"topBracketCutoff,omitempty" mapstructure:"topBracketCutoff"`
	Wage             *float64 `yaml:"wage,omitempty" mapstructure:"wage"`
}

// Apply returns base with every set override substituted.
func (o ParameterOverrides) Apply(base model.Parameters) model.Parameters {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.CashOnHand, o.CashOnHand)
	set(&base.LaborDisutility, o.LaborDisutility)
	set(&base.Elasticity, o.Elasticity)
	set(&base.BaseTaxRate, o.BaseTaxRate)
	set(&base.TopTaxRate, o.TopTaxRate)
	set(&base.TopBracketCutoff, o.TopBracketCutoff)
	set(&base.Wage, o.Wage)
	return base
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

// Default returns the configuration used when no file is given.
func Default() (*Configuration, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	params := model.DefaultParameters()
	v.SetDefault("common.parameters.cashOnHand", params.CashOnHand)
	v.SetDefault("common.parameters.laborDisutility", params.LaborDisutility)
	v.SetDefault("common.parameters.elasticity", params.Elasticity)
	v.SetDefault("common.parameters.baseTaxRate", params.BaseTaxRate)
	v.SetDefault("common.parameters.topTaxRate", params.TopTaxRate)
	v.SetDefault("common.parameters.topBracketCutoff", params.TopBracketCutoff)
	v.SetDefault("common.parameters.wage", params.Wage)

	v.SetDefault("optimizer.lower", constants.DefaultLaborLower)
	v.SetDefault("optimizer.upper", constants.DefaultLaborUpper)
	v.SetDefault("optimizer.tolerance", constants.DefaultXTolerance)
	v.SetDefault("optimizer.maxEvaluations", constants.DefaultMaxEvaluations)

	v.SetDefault("population.enabled", false)
	v.SetDefault("population.size", constants.DefaultPopulationSize)
	v.SetDefault("population.wageLow", constants.DefaultWageLow)
	v.SetDefault("population.wageHigh", constants.DefaultWageHigh)
	v.SetDefault("population.seed", constants.DefaultSeed)
	v.SetDefault("population.workers", 0)
	v.SetDefault("population.failurePolicy", constants.FailurePolicyAbort)

	v.SetDefault("profile.enabled", false)
	v.SetDefault("profile.wageLow", constants.DefaultWageLow)
	v.SetDefault("profile.wageHigh", constants.DefaultWageHigh)
	v.SetDefault("profile.points", constants.DefaultProfilePoints)

	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.Optimizer.Normalize()
	configuration.Population.Normalize()
	configuration.Profile.Normalize()
	return &configuration, nil
}

// ActiveScenarios returns the scenarios to run. A configuration without any
// scenarios runs the common parameters as the baseline scenario.
func (c *Configuration) ActiveScenarios() []Scenario {
	if len(c.Scenarios) == 0 {
		return []Scenario{{Name: BaselineScenario, Active: true}}
	}
	active := make([]Scenario, 0, len(c.Scenarios))
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ScenarioParameters returns the effective parameters of sc: the common parameters
// with its overrides applied.
func (c *Configuration) ScenarioParameters(sc Scenario) model.Parameters {
	return sc.Overrides.Apply(c.Common.Parameters)
}

// ResolveParameters returns the effective parameters of the named scenario.
// When several scenarios share the name, the first active one wins, then the
// first declared. An empty name, or the baseline name when no scenario is
// called that, yields the common parameters.
func (c *Configuration) ResolveParameters(name string) (model.Parameters, error) {
	match := -1
	for i, scenario := range c.Scenarios {
		if scenario.Name != name {
			continue
		}
		if scenario.Active {
			match = i
			break
		}
		if match < 0 {
			match = i
		}
	}
	if match >= 0 {
		return c.ScenarioParameters(c.Scenarios[match]), nil
	}
	if name == "" || name == BaselineScenario {
		return c.Common.Parameters, nil
	}
	return model.Parameters{}, fmt.Errorf("scenario %q not found", name)
}

// Validate checks every section and the parameters of every active scenario.
func (c *Configuration) Validate() error {
	if err := c.Optimizer.Validate(); err != nil {
		return err
	}
	if err := c.Population.Validate(); err != nil {
		return err
	}
	if err := c.Profile.Validate(); err != nil {
		return err
	}
	for _, scenario := range c.ActiveScenarios() {
		if err := c.ScenarioParameters(scenario).Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var scenarios []validation.ScenarioConfig
	for _, scenario := range c.Scenarios {
		scenarios = append(scenarios, validation.ScenarioConfig{
			Name:       scenario.Name,
			Active:     scenario.Active,
			Parameters: c.ScenarioParameters(scenario),
		})
	}

	validator := validation.ConfigValidator{
		Common:     c.Common.Parameters,
		Scenarios:  scenarios,
		LaborUpper: c.Optimizer.UpperBound(),
	}
	return validator.ValidateAll()
}
