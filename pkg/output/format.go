// Package output provides utilities for formatting and displaying scenario outcomes.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/labor-supply/internal/scenario"
	"github.com/iwvelando/labor-supply/pkg/constants"
	"github.com/iwvelando/labor-supply/pkg/format"
	"github.com/iwvelando/labor-supply/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var csvHeader = []string{
	"scenario",
	"wage",
	"elasticity",
	"base tax rate",
	"top tax rate",
	"top bracket cutoff",
	"labor",
	"consumption",
	"utility",
	"tax",
	"population size",
	"population failed",
	"tax revenue",
}

// Write renders results in the named output format.
func Write(w io.Writer, outputFormat string, results []scenario.Outcome) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatYAML:
		return YamlFormat(w, results)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []scenario.Outcome) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		params := result.Parameters
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		_, _ = p.Fprintf(w, "Parameters: m=%s v=%s eps=%s tau0=%s tau1=%s kappa=%s w=%s\n",
			num(params.CashOnHand), num(params.LaborDisutility), num(params.Elasticity),
			num(params.BaseTaxRate), num(params.TopTaxRate), num(params.TopBracketCutoff), num(params.Wage))
		_, _ = fmt.Fprintf(w, "Labor       | Consumption | Utility     | Tax\n")
		_, _ = fmt.Fprintf(w, "___________ | ___________ | ___________ | ___________\n")
		_, _ = fmt.Fprintf(w, "%-11s | %-11s | %-11s | %s\n",
			num(result.Result.Labor), num(result.Result.Consumption), num(result.Result.Utility), num(result.Tax))

		if pop := result.Population; pop != nil {
			_, _ = p.Fprintf(w, "Population: %d individuals, wages uniform on [%s, %s], seed %d\n",
				pop.Size, num(pop.WageLow), num(pop.WageHigh), pop.Seed)
			_, _ = fmt.Fprintf(w, "  Total tax revenue: %s\n", format.Grouped(pop.TotalTaxRevenue, constants.DisplayPrecision))
			_, _ = fmt.Fprintf(w, "  Mean wage: %s, mean labor: %s, mean tax: %s\n",
				num(pop.MeanWage), num(pop.MeanLabor), num(pop.MeanTax))
			if pop.Failed > 0 {
				_, _ = p.Fprintf(w, "  Skipped %d individuals whose problem could not be solved\n", pop.Failed)
			}
		}

		if len(result.Profile) > 0 {
			_, _ = fmt.Fprintf(w, "Wage profile:\n")
			writeProfileTable(w, result.Profile)
		}

		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
	return nil
}

// ProfileFormat outputs a wage profile as a human-readable table.
func ProfileFormat(w io.Writer, points []optimization.ProfilePoint) error {
	writeProfileTable(w, points)
	return nil
}

func writeProfileTable(w io.Writer, points []optimization.ProfilePoint) {
	_, _ = fmt.Fprintf(w, "Wage        | Labor       | Consumption | Utility     | Tax\n")
	_, _ = fmt.Fprintf(w, "___________ | ___________ | ___________ | ___________ | ___________\n")
	for _, pt := range points {
		_, _ = fmt.Fprintf(w, "%-11s | %-11s | %-11s | %-11s | %s\n",
			num(pt.Wage), num(pt.Labor), num(pt.Consumption), num(pt.Utility), num(pt.Tax))
	}
}

// CsvFormat outputs one row per scenario in comma-separated value format.
func CsvFormat(w io.Writer, results []scenario.Outcome) error {
	if err := writeCsvRow(w, csvHeader); err != nil {
		return err
	}
	for _, result := range results {
		params := result.Parameters
		row := []string{
			result.Name,
			num(params.Wage),
			num(params.Elasticity),
			num(params.BaseTaxRate),
			num(params.TopTaxRate),
			num(params.TopBracketCutoff),
			num(result.Result.Labor),
			num(result.Result.Consumption),
			num(result.Result.Utility),
			num(result.Tax),
			"", "", "",
		}
		if pop := result.Population; pop != nil {
			row[10] = fmt.Sprintf("%d", pop.Size)
			row[11] = fmt.Sprintf("%d", pop.Failed)
			row[12] = num(pop.TotalTaxRevenue)
		}
		if err := writeCsvRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// CsvString returns the CSV representation of results as a string.
func CsvString(results []scenario.Outcome) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ProfileCsvFormat outputs a wage profile in comma-separated value format.
func ProfileCsvFormat(w io.Writer, points []optimization.ProfilePoint) error {
	if err := writeCsvRow(w, []string{"wage", "labor", "consumption", "utility", "tax"}); err != nil {
		return err
	}
	for _, pt := range points {
		row := []string{num(pt.Wage), num(pt.Labor), num(pt.Consumption), num(pt.Utility), num(pt.Tax)}
		if err := writeCsvRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// YamlFormat outputs results as a YAML document.
func YamlFormat(w io.Writer, results []scenario.Outcome) error {
	if results == nil {
		results = []scenario.Outcome{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := struct {
		Scenarios []scenario.Outcome `yaml:"scenarios"`
	}{Scenarios: results}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml output: %w", err)
	}
	return enc.Close()
}

func writeCsvRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}

func num(value float64) string {
	return format.Fixed(value, constants.DisplayPrecision)
}
