package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/labor-supply/internal/scenario"
	"github.com/iwvelando/labor-supply/pkg/model"
	"github.com/iwvelando/labor-supply/pkg/optimization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleOutcomes() []scenario.Outcome {
	baseline := model.DefaultParameters()
	lowElasticity := baseline
	lowElasticity.Elasticity = 0.1

	return []scenario.Outcome{
		{
			Name:       "baseline",
			Parameters: baseline,
			Result: optimization.Result{
				Labor:       0.4,
				Consumption: 1.2,
				Utility:     0.1,
				Converged:   true,
			},
			Tax: 0.16,
			Population: &optimization.PopulationSummary{
				Size:            10000,
				Solved:          10000,
				WageLow:         0.5,
				WageHigh:        1.5,
				Seed:            117,
				TotalTaxRevenue: 1234.56789,
				MeanWage:        1,
				MeanLabor:       0.4,
				MeanTax:         0.1234,
			},
		},
		{
			Name:       "low elasticity",
			Parameters: lowElasticity,
			Result: optimization.Result{
				Labor:       0.5,
				Consumption: 1.3,
				Utility:     0.2,
				Converged:   true,
			},
			Tax: 0.2,
			Profile: []optimization.ProfilePoint{
				{Wage: 0.5, Labor: 0.3, Consumption: 1.1, Utility: 0.05, Tax: 0.06},
				{Wage: 1.5, Labor: 0.6, Consumption: 1.5, Utility: 0.3, Tax: 0.41},
			},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrettyFormat(&buf, sampleOutcomes()))
	output := buf.String()

	expected := []string{
		"--- Results for scenario baseline ---",
		"--- Results for scenario low elasticity ---",
		"Labor       | Consumption | Utility     | Tax",
		"0.4000      | 1.2000      | 0.1000      | 0.1600",
		"eps=0.3000",
		"eps=0.1000",
		"Population: 10,000 individuals, wages uniform on [0.5000, 1.5000], seed 117",
		"Total tax revenue: 1,234.5679",
		"Wage profile:",
		"1.5000      | 0.6000      | 1.5000      | 0.3000      | 0.4100",
	}
	for _, want := range expected {
		assert.Contains(t, output, want)
	}
	assert.NotContains(t, output, "Skipped")
}

func TestPrettyFormatSkippedIndividuals(t *testing.T) {
	results := sampleOutcomes()[:1]
	results[0].Population.Failed = 3
	results[0].Population.Solved = 9997

	var buf bytes.Buffer
	require.NoError(t, PrettyFormat(&buf, results))

	assert.Contains(t, buf.String(), "Skipped 3 individuals")
}

func TestPrettyFormatEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrettyFormat(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CsvFormat(&buf, sampleOutcomes()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.True(t, strings.HasPrefix(lines[0], `"scenario","wage","elasticity"`))
	assert.Contains(t, lines[0], `"tax revenue"`)

	assert.Equal(t,
		`"baseline","1.0000","0.3000","0.4000","0.1000","0.4000","0.4000","1.2000","0.1000","0.1600","10000","0","1234.5679"`,
		lines[1])
	assert.Equal(t,
		`"low elasticity","1.0000","0.1000","0.4000","0.1000","0.4000","0.5000","1.3000","0.2000","0.2000","","",""`,
		lines[2])
}

func TestCsvFormatQuotesNames(t *testing.T) {
	results := []scenario.Outcome{{Name: `the "high" case`}}

	var buf bytes.Buffer
	require.NoError(t, CsvFormat(&buf, results))

	assert.Contains(t, buf.String(), `"the ""high"" case"`)
}

func TestCsvStringMatchesCsvFormat(t *testing.T) {
	results := sampleOutcomes()

	var buf bytes.Buffer
	require.NoError(t, CsvFormat(&buf, results))

	s, err := CsvString(results)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), s)
}

func TestProfileFormats(t *testing.T) {
	points := sampleOutcomes()[1].Profile

	var pretty bytes.Buffer
	require.NoError(t, ProfileFormat(&pretty, points))
	assert.Contains(t, pretty.String(), "Wage        | Labor")
	assert.Contains(t, pretty.String(), "0.5000      | 0.3000")

	var csv bytes.Buffer
	require.NoError(t, ProfileCsvFormat(&csv, points))
	lines := strings.Split(strings.TrimSpace(csv.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"wage","labor","consumption","utility","tax"`, lines[0])
	assert.Equal(t, `"0.5000","0.3000","1.1000","0.0500","0.0600"`, lines[1])
}

func TestYamlFormat(t *testing.T) {
	results := sampleOutcomes()

	var buf bytes.Buffer
	require.NoError(t, YamlFormat(&buf, results))

	var decoded struct {
		Scenarios []scenario.Outcome `yaml:"scenarios"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Scenarios, 2)
	assert.Equal(t, "baseline", decoded.Scenarios[0].Name)
	assert.Equal(t, 0.3, decoded.Scenarios[0].Parameters.Elasticity)
	require.NotNil(t, decoded.Scenarios[0].Population)
	assert.Equal(t, uint64(117), decoded.Scenarios[0].Population.Seed)
	assert.Nil(t, decoded.Scenarios[1].Population)
	assert.Len(t, decoded.Scenarios[1].Profile, 2)

	assert.Contains(t, buf.String(), "topBracketCutoff: 0.4")
}

func TestWrite(t *testing.T) {
	for _, f := range []string{"pretty", "csv", "yaml"} {
		t.Run(f, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, f, sampleOutcomes()))
			assert.NotEmpty(t, buf.String())
		})
	}

	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "json", sampleOutcomes()))
}
