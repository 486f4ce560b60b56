// Package model defines the consumer problem: parameters, log utility with an
// iso-elastic labor disutility, and the budget constraint under a two-bracket
// labor income tax.
package model

import (
	"math"

	"github.com/iwvelando/labor-supply/pkg/constants"
	"github.com/iwvelando/labor-supply/pkg/mathutil"
)

// Parameters holds the consumer and tax schedule parameters of one scenario.
type Parameters struct {
	CashOnHand       float64 `yaml:"cashOnHand" mapstructure:"cashOnHand"`
	LaborDisutility  float64 `yaml:"laborDisutility" mapstructure:"laborDisutility"`
	Elasticity       float64 `yaml:"elasticity" mapstructure:"elasticity"`
	BaseTaxRate      float64 `yaml:"baseTaxRate" mapstructure:"baseTaxRate"`
	TopTaxRate       float64 `yaml:"topTaxRate" mapstructure:"topTaxRate"`
	TopBracketCutoff float64 `yaml:"topBracketCutoff" mapstructure:"topBracketCutoff"`
	Wage             float64 `yaml:"wage" mapstructure:"wage"`
}

// DefaultParameters returns the baseline calibration.
func DefaultParameters() Parameters {
	return Parameters{
		CashOnHand:       constants.DefaultCashOnHand,
		LaborDisutility:  constants.DefaultLaborDisutility,
		Elasticity:       constants.DefaultElasticity,
		BaseTaxRate:      constants.DefaultBaseTaxRate,
		TopTaxRate:       constants.DefaultTopTaxRate,
		TopBracketCutoff: constants.DefaultTopBracketCutoff,
		Wage:             constants.DefaultWage,
	}
}

// Validate returns an InvalidParameterError for the first offending field.
func (p Parameters) Validate() error {
	checks := []struct {
		field string
		value float64
		ok    bool
		rule  string
	}{
		{"cashOnHand", p.CashOnHand, p.CashOnHand > 0, "must be positive"},
		{"laborDisutility", p.LaborDisutility, p.LaborDisutility > 0, "must be positive"},
		{"elasticity", p.Elasticity, p.Elasticity > 0, "must be positive"},
		{"baseTaxRate", p.BaseTaxRate, p.BaseTaxRate >= 0 && p.BaseTaxRate < 1, "must be in [0, 1)"},
		{"topTaxRate", p.TopTaxRate, p.TopTaxRate >= 0 && p.TopTaxRate < 1, "must be in [0, 1)"},
		{"topBracketCutoff", p.TopBracketCutoff, p.TopBracketCutoff >= 0, "must not be negative"},
		{"wage", p.Wage, p.Wage > 0, "must be positive"},
	}
	for _, c := range checks {
		if !mathutil.IsFinite(c.value) {
			return &InvalidParameterError{Field: c.field, Value: c.value, Reason: "must be finite"}
		}
		if !c.ok {
			return &InvalidParameterError{Field: c.field, Value: c.value, Reason: c.rule}
		}
	}
	return nil
}

// UtilityModel evaluates utility and the after-tax budget constraint for a
// fixed parameter set. It is immutable once constructed.
type UtilityModel struct {
	params Parameters
	// 1 + 1/eps, precomputed since every utility evaluation needs it.
	power float64
}

// New validates the parameters and returns a model over them.
func New(params Parameters) (*UtilityModel, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &UtilityModel{params: params, power: 1 + 1/params.Elasticity}, nil
}

// Parameters returns a copy of the model parameters.
func (m *UtilityModel) Parameters() Parameters {
	return m.params
}

// WithWage returns a model identical to m except for the wage rate.
func (m *UtilityModel) WithWage(wage float64) (*UtilityModel, error) {
	params := m.params
	params.Wage = wage
	return New(params)
}

// Utility returns ln(c) - v * l^(1+1/eps) / (1+1/eps).
func (m *UtilityModel) Utility(consumption, labor float64) (float64, error) {
	if !(consumption > 0) {
		return 0, &DomainError{Consumption: consumption, Labor: labor}
	}
	disutility := m.params.LaborDisutility * math.Pow(labor, m.power) / m.power
	return math.Log(consumption) - disutility, nil
}

// GrossIncome returns w * l.
func (m *UtilityModel) GrossIncome(labor float64) float64 {
	return m.params.Wage * labor
}

// Tax returns the tax due on a gross labor income: the base rate on all
// income plus the top rate on income above the cutoff.
func (m *UtilityModel) Tax(gross float64) float64 {
	return m.params.BaseTaxRate*gross + m.params.TopTaxRate*mathutil.PositivePart(gross-m.params.TopBracketCutoff)
}

// TaxPayment returns the tax due when supplying the given labor.
func (m *UtilityModel) TaxPayment(labor float64) float64 {
	return m.Tax(m.GrossIncome(labor))
}

// AfterTaxConsumption returns m + w*l - tax(w*l).
func (m *UtilityModel) AfterTaxConsumption(labor float64) float64 {
	gross := m.GrossIncome(labor)
	return m.params.CashOnHand + gross - m.Tax(gross)
}

// KinkLabor returns the labor supply kappa/w at which the top bracket starts
// to bind. The second return is false when there is no kink because the top
// rate is zero.
func (m *UtilityModel) KinkLabor() (float64, bool) {
	if m.params.TopTaxRate == 0 {
		return 0, false
	}
	return m.params.TopBracketCutoff / m.params.Wage, true
}
