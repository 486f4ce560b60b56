package optimizer

import (
	"testing"

	"github.com/iwvelando/labor-supply/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWageProfile(t *testing.T) {
	solver := newTestSolver(t)
	m := newTestModel(t, nil)

	points, err := solver.WageProfile(m, config.ProfileConfig{WageLow: 0.5, WageHigh: 1.5, Points: 11})
	require.NoError(t, err)
	require.Len(t, points, 11)

	assert.InDelta(t, 0.5, points[0].Wage, 1e-12)
	assert.InDelta(t, 1.5, points[10].Wage, 1e-12)
	for i, p := range points {
		assert.GreaterOrEqual(t, p.Labor, 0.0)
		assert.LessOrEqual(t, p.Labor, 1.0)
		assert.Greater(t, p.Consumption, 0.0)
		assert.GreaterOrEqual(t, p.Tax, 0.0)
		if i > 0 {
			assert.Greater(t, p.Wage, points[i-1].Wage)
			assert.GreaterOrEqual(t, p.Utility, points[i-1].Utility-1e-9)
		}
	}
}

func TestWageProfileSinglePoint(t *testing.T) {
	solver := newTestSolver(t)
	m := newTestModel(t, nil)

	points, err := solver.WageProfile(m, config.ProfileConfig{WageLow: 1, WageHigh: 1, Points: 1})
	require.NoError(t, err)
	require.Len(t, points, 1)

	direct, err := solver.SolveIndividual(m)
	require.NoError(t, err)
	assert.Equal(t, direct.Labor, points[0].Labor)
	assert.Equal(t, m.TaxPayment(direct.Labor), points[0].Tax)
}

func TestWageProfileInvalid(t *testing.T) {
	solver := newTestSolver(t)
	_, err := solver.WageProfile(newTestModel(t, nil), config.ProfileConfig{WageLow: 2, WageHigh: 1})
	assert.Error(t, err)

	_, err = solver.WageProfile(nil, config.ProfileConfig{WageLow: 0.5, WageHigh: 1.5})
	assert.Error(t, err)
}
