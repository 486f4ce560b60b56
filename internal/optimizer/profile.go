package optimizer

import (
	"fmt"

	"github.com/iwvelando/labor-supply/internal/config"
	"github.com/iwvelando/labor-supply/pkg/model"
	"github.com/iwvelando/labor-supply/pkg/optimization"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// WageProfile solves the problem of base at every point of an evenly spaced
// wage grid.
func (s *Solver) WageProfile(base *model.UtilityModel, profile config.ProfileConfig) ([]optimization.ProfilePoint, error) {
	if base == nil {
		return nil, fmt.Errorf("utility model cannot be nil")
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	var wages []float64
	if profile.Points < 2 {
		wages = []float64{profile.WageLow}
	} else {
		wages = floats.Span(make([]float64, profile.Points), profile.WageLow, profile.WageHigh)
	}

	points := make([]optimization.ProfilePoint, 0, len(wages))
	for _, wage := range wages {
		ind, err := s.solveAt(base, wage)
		if err != nil {
			return nil, err
		}
		points = append(points, optimization.ProfilePoint{
			Wage:        wage,
			Labor:       ind.Result.Labor,
			Consumption: ind.Result.Consumption,
			Utility:     ind.Result.Utility,
			Tax:         ind.Tax,
		})
	}

	s.logger.Debug("computed wage profile",
		zap.String("op", "optimizer.WageProfile"),
		zap.Int("points", len(points)),
	)
	return points, nil
}
