package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/labor-supply/pkg/constants"
	"github.com/iwvelando/labor-supply/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
common:
  parameters:
    cashOnHand: 1
    laborDisutility: 10
    elasticity: 0.3
    baseTaxRate: 0.4
    topTaxRate: 0.1
    topBracketCutoff: 0.4
    wage: 1
scenarios:
  - name: baseline eps
    active: true
  - name: low elasticity
    active: true
    overrides:
      elasticity: 0.1
  - name: flat tax
    active: false
    overrides:
      topTaxRate: 0
      baseTaxRate: 0.45
population:
  enabled: true
  size: 250
  wageLow: 0.75
  wageHigh: 1.25
  seed: 42
  failurePolicy: Skip
logging:
  level: debug
  format: console
output:
  format: csv
`

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config file",
			configPath: filepath.Join("..", "..", constants.ExampleConfigFile),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0600))

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultParameters(), conf.Common.Parameters)
	require.Len(t, conf.Scenarios, 3)
	assert.Equal(t, "low elasticity", conf.Scenarios[1].Name)
	require.NotNil(t, conf.Scenarios[1].Overrides.Elasticity)
	assert.Equal(t, 0.1, *conf.Scenarios[1].Overrides.Elasticity)
	assert.Nil(t, conf.Scenarios[1].Overrides.Wage)

	assert.True(t, conf.Population.Enabled)
	assert.Equal(t, 250, conf.Population.Size)
	assert.Equal(t, 0.75, conf.Population.WageLow)
	assert.Equal(t, 1.25, conf.Population.WageHigh)
	assert.Equal(t, uint64(42), conf.Population.Seed)
	assert.Equal(t, constants.FailurePolicySkip, conf.Population.FailurePolicy)
	assert.True(t, conf.Population.SkipFailures())

	assert.Equal(t, "debug", conf.Logging.Level)
	assert.Equal(t, "console", conf.Logging.Format)
	assert.Equal(t, "csv", conf.Output.Format)

	require.NoError(t, conf.Validate())
}

func TestLoadConfigurationAppliesDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("common:\n  parameters:\n    wage: 1.2\n"))
	require.NoError(t, err)

	expected := model.DefaultParameters()
	expected.Wage = 1.2
	assert.Equal(t, expected, conf.Common.Parameters)

	assert.Equal(t, 0.0, conf.Optimizer.LowerBound())
	assert.Equal(t, 1.0, conf.Optimizer.UpperBound())
	assert.Equal(t, constants.DefaultXTolerance, conf.Optimizer.Tolerance)
	assert.Equal(t, constants.DefaultMaxEvaluations, conf.Optimizer.MaxEvaluations)

	assert.False(t, conf.Population.Enabled)
	assert.Equal(t, constants.DefaultPopulationSize, conf.Population.Size)
	assert.Equal(t, uint64(constants.DefaultSeed), conf.Population.Seed)
	assert.Equal(t, constants.FailurePolicyAbort, conf.Population.FailurePolicy)

	assert.Equal(t, constants.DefaultProfilePoints, conf.Profile.Points)
}

func TestDefaultConfiguration(t *testing.T) {
	conf, err := Default()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultParameters(), conf.Common.Parameters)
	assert.Equal(t, DefaultPopulation().Size, conf.Population.Size)
	require.NoError(t, conf.Validate())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LABOR_SUPPLY_POPULATION_SEED", "9")
	t.Setenv("LABOR_SUPPLY_COMMON_PARAMETERS_ELASTICITY", "0.5")

	conf, err := LoadConfigurationFromReader(strings.NewReader(scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, uint64(9), conf.Population.Seed)
	assert.Equal(t, 0.5, conf.Common.Parameters.Elasticity)
}

func TestLoadConfigurationInvalidYAML(t *testing.T) {
	_, err := LoadConfigurationFromReader(strings.NewReader("common: [unclosed"))
	assert.Error(t, err)
}

func TestActiveScenarios(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(scenarioYAML))
	require.NoError(t, err)

	active := conf.ActiveScenarios()
	require.Len(t, active, 2)
	assert.Equal(t, "baseline eps", active[0].Name)
	assert.Equal(t, "low elasticity", active[1].Name)

	empty := &Configuration{Common: Common{Parameters: model.DefaultParameters()}}
	implicit := empty.ActiveScenarios()
	require.Len(t, implicit, 1)
	assert.Equal(t, BaselineScenario, implicit[0].Name)
}

func TestResolveParameters(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(scenarioYAML))
	require.NoError(t, err)

	params, err := conf.ResolveParameters("flat tax")
	require.NoError(t, err)
	assert.Equal(t, 0.0, params.TopTaxRate)
	assert.Equal(t, 0.45, params.BaseTaxRate)
	assert.Equal(t, 0.4, params.TopBracketCutoff)

	baseline, err := conf.ResolveParameters("")
	require.NoError(t, err)
	assert.Equal(t, conf.Common.Parameters, baseline)

	_, err = conf.ResolveParameters("missing")
	assert.Error(t, err)
}

func TestResolveParametersPrefersDeclaredScenarios(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(`
scenarios:
  - name: baseline
    active: true
    overrides:
      wage: 1.5
  - name: dup
    active: false
    overrides:
      wage: 0.6
  - name: dup
    active: true
    overrides:
      wage: 1.4
`))
	require.NoError(t, err)

	tests := []struct {
		name     string
		scenario string
		wage     float64
	}{
		{"Declared baseline overrides common", "baseline", 1.5},
		{"Active duplicate wins", "dup", 1.4},
		{"Empty name is common", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := conf.ResolveParameters(tt.scenario)
			require.NoError(t, err)
			assert.Equal(t, tt.wage, params.Wage)
		})
	}

	// Every entry resolves its own overrides, duplicates included.
	var wages []float64
	for _, sc := range conf.Scenarios {
		wages = append(wages, conf.ScenarioParameters(sc).Wage)
	}
	assert.Equal(t, []float64{1.5, 0.6, 1.4}, wages)
}

func TestParameterOverridesApply(t *testing.T) {
	wage := 1.4
	cutoff := 0.0
	overrides := ParameterOverrides{Wage: &wage, TopBracketCutoff: &cutoff}

	base := model.DefaultParameters()
	applied := overrides.Apply(base)

	assert.Equal(t, 1.4, applied.Wage)
	assert.Equal(t, 0.0, applied.TopBracketCutoff)
	assert.Equal(t, base.Elasticity, applied.Elasticity)
	assert.Equal(t, model.DefaultParameters(), base)
}

func TestValidateRejectsInvalidScenario(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(scenarioYAML))
	require.NoError(t, err)

	zero := 0.0
	conf.Scenarios[1].Overrides.Elasticity = &zero
	err = conf.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "low elasticity")
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(scenarioYAML))
	require.NoError(t, err)
	assert.Empty(t, conf.ValidateConfiguration())

	cutoff := 5.0
	conf.Scenarios[0].Overrides.TopBracketCutoff = &cutoff
	warnings := conf.ValidateConfiguration()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "never binds")
}
