package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/labor-supply/pkg/constants"
	"github.com/iwvelando/labor-supply/pkg/mathutil"
)

// PopulationConfig defines the Monte-Carlo tax revenue simulation.
type PopulationConfig struct {
	Enabled       bool    `yaml:"enabled" mapstructure:"enabled"`
	Size          int     `yaml:"size" mapstructure:"size"`
	WageLow       float64 `yaml:"wageLow" mapstructure:"wageLow"`
	WageHigh      float64 `yaml:"wageHigh" mapstructure:"wageHigh"`
	Seed          uint64  `yaml:"seed" mapstructure:"seed"`
	Workers       int     `yaml:"workers,omitempty" mapstructure:"workers"`
	FailurePolicy string  `yaml:"failurePolicy,omitempty" mapstructure:"failurePolicy"`
}

// DefaultPopulation returns the baseline simulation: 10000 wages drawn from
// U(0.5, 1.5) with seed 117.
func DefaultPopulation() PopulationConfig {
	return PopulationConfig{
		Size:          constants.DefaultPopulationSize,
		WageLow:       constants.DefaultWageLow,
		WageHigh:      constants.DefaultWageHigh,
		Seed:          constants.DefaultSeed,
		FailurePolicy: constants.FailurePolicyAbort,
	}
}

// Normalize canonicalizes the failure policy.
func (p *PopulationConfig) Normalize() {
	if p == nil {
		return
	}
	p.FailurePolicy = strings.ToLower(strings.TrimSpace(p.FailurePolicy))
	if p.FailurePolicy == "" {
		p.FailurePolicy = constants.FailurePolicyAbort
	}
}

// Validate returns an error when the population cannot be simulated.
func (p *PopulationConfig) Validate() error {
	if p == nil {
		return fmt.Errorf("population configuration cannot be nil")
	}

	p.Normalize()

	if p.Size <= 0 {
		return fmt.Errorf("population size must be positive, got %d", p.Size)
	}
	if !mathutil.AllFinite(p.WageLow, p.WageHigh) {
		return fmt.Errorf("population wage range must be finite, got [%g, %g]", p.WageLow, p.WageHigh)
	}
	if p.WageLow <= 0 {
		return fmt.Errorf("population wage low %g must be positive", p.WageLow)
	}
	if p.WageLow > p.WageHigh {
		return fmt.Errorf("population wage low %g must not exceed wage high %g", p.WageLow, p.WageHigh)
	}
	if p.Workers < 0 {
		return fmt.Errorf("population workers must not be negative, got %d", p.Workers)
	}
	switch p.FailurePolicy {
	case constants.FailurePolicyAbort, constants.FailurePolicySkip:
	default:
		return fmt.Errorf("population failure policy %q is not supported", p.FailurePolicy)
	}
	return nil
}

// SkipFailures reports whether failing individuals are excluded rather than fatal.
func (p PopulationConfig) SkipFailures() bool {
	return strings.EqualFold(strings.TrimSpace(p.FailurePolicy), constants.FailurePolicySkip)
}

// ProfileConfig defines the wage grid of a wage profile.
type ProfileConfig struct {
	Enabled  bool    `yaml:"enabled" mapstructure:"enabled"`
	WageLow  float64 `yaml:"wageLow" mapstructure:"wageLow"`
	WageHigh float64 `yaml:"wageHigh" mapstructure:"wageHigh"`
	Points   int     `yaml:"points" mapstructure:"points"`
}

// Normalize applies the default number of grid points.
func (p *ProfileConfig) Normalize() {
	if p == nil {
		return
	}
	if p.Points <= 0 {
		p.Points = constants.DefaultProfilePoints
	}
}

// Validate returns an error when the wage grid is unusable.
func (p *ProfileConfig) Validate() error {
	if p == nil {
		return fmt.Errorf("profile configuration cannot be nil")
	}
	p.Normalize()

	if !mathutil.AllFinite(p.WageLow, p.WageHigh) {
		return fmt.Errorf("profile wage range must be finite, got [%g, %g]", p.WageLow, p.WageHigh)
	}
	if p.WageLow <= 0 {
		return fmt.Errorf("profile wage low %g must be positive", p.WageLow)
	}
	if p.WageLow > p.WageHigh {
		return fmt.Errorf("profile wage low %g must not exceed wage high %g", p.WageLow, p.WageHigh)
	}
	if p.Points < 2 && p.WageLow != p.WageHigh {
		return fmt.Errorf("profile needs at least 2 points for a wage range, got %d", p.Points)
	}
	return nil
}
