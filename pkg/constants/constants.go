// Package constants provides shared constants for the labor-supply application.
package constants

// Baseline consumer parameters.
const (
	// DefaultCashOnHand is the baseline cash-on-hand m
	DefaultCashOnHand = 1.0

	// DefaultLaborDisutility is the baseline disutility weight of labor v
	DefaultLaborDisutility = 10.0

	// DefaultElasticity is the baseline Frisch elasticity of labor supply eps
	DefaultElasticity = 0.3

	// DefaultBaseTaxRate is the baseline standard labor income tax tau0
	DefaultBaseTaxRate = 0.4

	// DefaultTopTaxRate is the baseline top bracket labor income tax tau1
	DefaultTopTaxRate = 0.1

	// DefaultTopBracketCutoff is the baseline cut-off for the top bracket kappa
	DefaultTopBracketCutoff = 0.4

	// DefaultWage is the baseline wage rate w
	DefaultWage = 1.0
)

// Optimizer defaults
const (
	// DefaultLaborLower is the lower bound of the labor supply search interval
	DefaultLaborLower = 0.0

	// DefaultLaborUpper is the upper bound of the labor supply search interval
	DefaultLaborUpper = 1.0

	// DefaultXTolerance is the absolute tolerance on the minimizer argument
	DefaultXTolerance = 1e-5

	// DefaultMaxEvaluations is the objective evaluation budget of the minimizer
	DefaultMaxEvaluations = 500
)

// Population simulation defaults
const (
	// DefaultPopulationSize is the number of simulated individuals
	DefaultPopulationSize = 10000

	// DefaultWageLow is the lower end of the uniform wage distribution
	DefaultWageLow = 0.5

	// DefaultWageHigh is the upper end of the uniform wage distribution
	DefaultWageHigh = 1.5

	// DefaultSeed is the seed of the wage draw
	DefaultSeed = 117

	// FailurePolicyAbort stops the aggregation at the first failing individual
	FailurePolicyAbort = "abort"

	// FailurePolicySkip excludes failing individuals and counts them
	FailurePolicySkip = "skip"
)

// Wage profile defaults
const (
	// DefaultProfilePoints is the number of grid points in a wage profile
	DefaultProfilePoints = 11
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"

	// DisplayPrecision is the number of decimal places shown for model values
	DisplayPrecision = 4
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "LABOR_SUPPLY"
)
