package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/cost"
	"github.com/fieldhouse-group/facility-cli/internal/report"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <sport>",
	Short: "Price a sport's default equipment list",
	Long:  "Builds an itemized equipment quote for one sport: bare equipment and flooring cost plus a flat installation allowance.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		unitFlags, _ := cmd.Flags().GetStringSlice("units")
		units, err := parseUnits(unitFlags)
		if err != nil {
			return err
		}

		tier, _ := cmd.Flags().GetString("tier")
		region, _ := cmd.Flags().GetFloat64("region")
		if region == 0 {
			region = cfg.Estimate.RegionMultiplier
		}

		calc := cost.NewCalculator(cat)
		quote, err := calc.BuildEquipmentQuote(args[0], units, catalog.Tier(tier), region)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
			if err := report.WriteQuoteXLSX(path, quote); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
			return nil
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(quote)
		}

		formatQuoteTable(os.Stdout, quote)
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringSlice("units", nil, "unit count overrides, e.g. --units baseball_tunnels=8")
	quoteCmd.Flags().String("tier", "mid", "pricing tier (low, mid, high)")
	quoteCmd.Flags().Float64("region", 0, "regional cost multiplier (default from config)")
	quoteCmd.Flags().Bool("json", false, "emit the full quote as JSON")
	quoteCmd.Flags().String("xlsx", "", "write the quote to an XLSX workbook instead of stdout")
	rootCmd.AddCommand(quoteCmd)
}

// parseUnits parses repeated key=count flags into a unit map.
func parseUnits(pairs []string) (map[string]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	units := make(map[string]int, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, eris.Errorf("invalid unit override %q, expected key=count", p)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return nil, eris.Errorf("invalid unit count in %q", p)
		}
		units[key] = n
	}
	return units, nil
}

// formatQuoteTable writes the itemized quote to w.
func formatQuoteTable(out io.Writer, q *cost.EquipmentQuote) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tITEM\tQTY\tUNIT\tUNIT COST\tTOTAL")
	_, _ = fmt.Fprintln(w, "--------\t----\t---\t----\t---------\t-----")

	for _, cat := range q.Categories {
		for _, li := range cat.Items {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				cat.Category,
				li.Name,
				li.Quantity,
				li.Unit,
				report.Currency(li.UnitCost),
				report.Currency(li.TotalCost),
			)
		}
	}

	_, _ = fmt.Fprintln(w, "\t\t\t\t\t")
	_, _ = fmt.Fprintf(w, "Equipment\t\t\t\t\t%s\n", report.Currency(q.Totals.Equipment))
	_, _ = fmt.Fprintf(w, "Flooring\t\t\t\t\t%s\n", report.Currency(q.Totals.Flooring))
	_, _ = fmt.Fprintf(w, "Installation\t\t\t\t\t%s\n", report.Currency(q.Totals.Installation))
	_, _ = fmt.Fprintf(w, "GRAND TOTAL\t\t\t\t\t%s\n", report.Currency(q.Totals.GrandTotal))
	_ = w.Flush()
}
