// Package optimization provides shared data structures for optimization results.
package optimization

// Result captures the utility-maximizing choice of a single consumer.
// Solvers return a search that runs out of evaluations as an error, so
// Converged is true on every returned Result.
type Result struct {
	Labor       float64 `json:"labor" yaml:"labor"`
	Consumption float64 `json:"consumption" yaml:"consumption"`
	Utility     float64 `json:"utility" yaml:"utility"`
	Iterations  int     `json:"iterations" yaml:"iterations"`
	Evaluations int     `json:"evaluations" yaml:"evaluations"`
	Converged   bool    `json:"converged" yaml:"converged"`
}

// Individual pairs a drawn wage with the optimal choice and tax paid at it.
type Individual struct {
	Wage   float64 `json:"wage" yaml:"wage"`
	Result Result  `json:"result" yaml:"result"`
	Tax    float64 `json:"tax" yaml:"tax"`
}

// PopulationSummary condenses a simulated population into aggregate figures.
type PopulationSummary struct {
	Size            int     `json:"size" yaml:"size"`
	Solved          int     `json:"solved" yaml:"solved"`
	Failed          int     `json:"failed" yaml:"failed"`
	WageLow         float64 `json:"wageLow" yaml:"wageLow"`
	WageHigh        float64 `json:"wageHigh" yaml:"wageHigh"`
	Seed            uint64  `json:"seed" yaml:"seed"`
	TotalTaxRevenue float64 `json:"totalTaxRevenue" yaml:"totalTaxRevenue"`
	MeanWage        float64 `json:"meanWage" yaml:"meanWage"`
	MeanLabor       float64 `json:"meanLabor" yaml:"meanLabor"`
	MeanTax         float64 `json:"meanTax" yaml:"meanTax"`
}

// ProfilePoint is one row of a wage profile: the optimal choice at a given wage.
type ProfilePoint struct {
	Wage        float64 `json:"wage" yaml:"wage"`
	Labor       float64 `json:"labor" yaml:"labor"`
	Consumption float64 `json:"consumption" yaml:"consumption"`
	Utility     float64 `json:"utility" yaml:"utility"`
	Tax         float64 `json:"tax" yaml:"tax"`
}
