// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/labor-supply/pkg/model"
)

// ValidateTaxSchedule returns warnings about a tax schedule that behaves
// differently from what its parameters suggest. laborUpper is the upper bound
// of the labor supply search.
func ValidateTaxSchedule(name string, params model.Parameters, laborUpper float64) []string {
	m, err := model.New(params)
	if err != nil {
		// Reported by ValidateParameters.
		return nil
	}

	var warnings []string
	kink, ok := m.KinkLabor()
	if !ok && params.TopBracketCutoff > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: top bracket cutoff %g has no effect with a zero top tax rate",
			name, params.TopBracketCutoff))
	}
	if ok && kink >= laborUpper {
		warnings = append(warnings, fmt.Sprintf("%s: top bracket never binds, it starts at labor %g but labor supply is at most %g",
			name, kink, laborUpper))
	}

	return warnings
}

// ValidateParameters returns a warning when the parameters would be rejected
// by the model.
func ValidateParameters(name string, params model.Parameters) []string {
	if err := params.Validate(); err != nil {
		return []string{fmt.Sprintf("%s: %v", name, err)}
	}
	return nil
}

// ConfigValidator performs comprehensive configuration validation
type ConfigValidator struct {
	Common     model.Parameters
	Scenarios  []ScenarioConfig
	LaborUpper float64
}

// ScenarioConfig is the resolved view of one scenario.
type ScenarioConfig struct {
	Name       string
	Active     bool
	Parameters model.Parameters
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	warnings = append(warnings, ValidateParameters("common parameters", cv.Common)...)
	warnings = append(warnings, ValidateTaxSchedule("common parameters", cv.Common, cv.LaborUpper)...)

	seen := make(map[string]bool)
	active := 0
	for _, scenario := range cv.Scenarios {
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is defined more than once, each active definition runs under the same name", scenario.Name))
		}
		seen[scenario.Name] = true

		if !scenario.Active {
			continue
		}
		active++
		label := fmt.Sprintf("Scenario '%s'", scenario.Name)
		warnings = append(warnings, ValidateParameters(label, scenario.Parameters)...)
		warnings = append(warnings, ValidateTaxSchedule(label, scenario.Parameters, cv.LaborUpper)...)
	}

	if len(cv.Scenarios) > 0 && active == 0 {
		warnings = append(warnings, "No active scenarios, nothing will be computed")
	}

	return warnings
}
