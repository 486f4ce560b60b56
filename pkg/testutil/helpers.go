// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/labor-supply/internal/scenario"
)

// FindOutcome finds a scenario outcome by name in the results slice.
// Returns a pointer to the outcome if found, nil otherwise.
func FindOutcome(results []scenario.Outcome, name string) *scenario.Outcome {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
