package config

import (
	"fmt"

	"github.com/iwvelando/labor-supply/pkg/constants"
	"github.com/iwvelando/labor-supply/pkg/minimize"
	"github.com/iwvelando/labor-supply/pkg/mathutil"
)

// OptimizerConfig defines the labor supply search interval and the minimizer budget.
type OptimizerConfig struct {
	Lower          *float64 `yaml:"lower,omitempty" mapstructure:"lower"`
	Upper          *float64 `yaml:"upper,omitempty" mapstructure:"upper"`
	Tolerance      float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxEvaluations int      `yaml:"maxEvaluations,omitempty" mapstructure:"maxEvaluations"`
}

// Normalize ensures defaults are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	if o.Lower == nil {
		lower := constants.DefaultLaborLower
		o.Lower = &lower
	}
	if o.Upper == nil {
		upper := constants.DefaultLaborUpper
		o.Upper = &upper
	}
	defaults := minimize.DefaultSettings()
	if o.Tolerance <= 0 {
		o.Tolerance = defaults.XTol
	}
	if o.MaxEvaluations <= 0 {
		o.MaxEvaluations = defaults.MaxEvaluations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	lower, upper := *o.Lower, *o.Upper
	if !mathutil.AllFinite(lower, upper) {
		return fmt.Errorf("optimizer bounds must be finite, got [%g, %g]", lower, upper)
	}
	// Labor enters as l^(1+1/eps), which is undefined for negative l.
	if lower < 0 {
		return fmt.Errorf("optimizer lower bound %g must not be negative", lower)
	}
	if lower >= upper {
		return fmt.Errorf("optimizer lower bound %g must be less than upper bound %g", lower, upper)
	}
	if !mathutil.IsFinite(o.Tolerance) {
		return fmt.Errorf("optimizer tolerance must be finite")
	}
	return nil
}

// LowerBound returns the configured lower bound or the default.
func (o OptimizerConfig) LowerBound() float64 {
	if o.Lower == nil {
		return constants.DefaultLaborLower
	}
	return *o.Lower
}

// UpperBound returns the configured upper bound or the default.
func (o OptimizerConfig) UpperBound() float64 {
	if o.Upper == nil {
		return constants.DefaultLaborUpper
	}
	return *o.Upper
}

// Settings converts the configuration into minimizer settings.
func (o OptimizerConfig) Settings() minimize.Settings {
	return minimize.Settings{XTol: o.Tolerance, MaxEvaluations: o.MaxEvaluations}
}
