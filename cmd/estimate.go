package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fieldhouse-group/facility-cli/internal/cost"
	"github.com/fieldhouse-group/facility-cli/internal/estimate"
	"github.com/fieldhouse-group/facility-cli/internal/report"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Run facility cost and revenue estimates",
}

// -- estimate quick --

var estimateQuickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Coarse $/SF estimate from square footage alone",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sf, _ := cmd.Flags().GetInt("sf")
		tiPerSf, _ := cmd.Flags().GetFloat64("ti-per-sf")
		softPct, _ := cmd.Flags().GetFloat64("soft-pct")
		contPct, _ := cmd.Flags().GetFloat64("contingency-pct")
		fixtures, _ := cmd.Flags().GetFloat64("fixtures")
		region, _ := cmd.Flags().GetFloat64("region")
		if region == 0 {
			region = cfg.Estimate.RegionMultiplier
		}

		q, err := estimate.ComputeQuick(estimate.QuickInput{
			SquareFeet:        sf,
			TIPerSf:           tiPerSf,
			SoftCostPct:       softPct,
			ContingencyPct:    contPct,
			FixturesAllowance: fixtures,
			RegionMultiplier:  region,
		})
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(q)
		}

		fmt.Printf("Size tier:        %s\n", q.SizeTier)
		fmt.Printf("CapEx total:      %s\n", report.Currency(q.CapExTotal))
		fmt.Printf("Monthly revenue:  %s\n", report.Currency(q.KPIs.MonthlyRevenue))
		fmt.Printf("Monthly EBITDA:   %s\n", report.Currency(q.KPIs.MonthlyEBITDA))
		if q.KPIs.BreakEvenMonths != nil {
			fmt.Printf("Break-even:       %d months\n", *q.KPIs.BreakEvenMonths)
		} else {
			fmt.Printf("Break-even:       not reached\n")
		}
		fmt.Printf("Annual ROI:       %.1f%%\n", q.KPIs.ROIPct)
		return nil
	},
}

// -- estimate run --

var estimateRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Full estimate from an input file",
	Long:  "Reads a JSON estimate input (sports, sizing, acquisition economics, operating assumptions) and prints the full business-plan report.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("input")
		if path == "" {
			return eris.New("--input is required")
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return eris.Wrapf(err, "read %s", path)
		}
		var in estimate.Input
		if err := json.Unmarshal(raw, &in); err != nil {
			return eris.Wrapf(err, "parse %s", path)
		}
		if in.RegionMultiplier == 0 {
			in.RegionMultiplier = cfg.Estimate.RegionMultiplier
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		result, err := estimate.Run(cost.NewCalculator(cat), cat, in)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Print(report.Render(report.Plan{Input: in, Result: result}))
		return nil
	},
}

func init() {
	estimateQuickCmd.Flags().Int("sf", 0, "facility square footage")
	estimateQuickCmd.Flags().Float64("ti-per-sf", 55, "tenant improvement $/SF")
	estimateQuickCmd.Flags().Float64("soft-pct", 12, "soft cost percentage")
	estimateQuickCmd.Flags().Float64("contingency-pct", 10, "contingency percentage")
	estimateQuickCmd.Flags().Float64("fixtures", 75000, "fixtures allowance")
	estimateQuickCmd.Flags().Float64("region", 0, "regional cost multiplier (default from config)")
	estimateQuickCmd.Flags().Bool("json", false, "emit the estimate as JSON")

	estimateRunCmd.Flags().String("input", "", "path to estimate input JSON")
	estimateRunCmd.Flags().Bool("json", false, "emit the raw result as JSON instead of the report")

	estimateCmd.AddCommand(estimateQuickCmd)
	estimateCmd.AddCommand(estimateRunCmd)
	rootCmd.AddCommand(estimateCmd)
}
