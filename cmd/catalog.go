package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/report"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the cost catalog",
}

// -- catalog sports --

var catalogSportsCmd = &cobra.Command{
	Use:   "sports",
	Short: "List sport presets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		formatSportsList(os.Stdout, cat)
		return nil
	},
}

// -- catalog items --

var catalogItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List cost items",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		formatItemsList(os.Stdout, cat, category)
		return nil
	},
}

// -- catalog assumptions --

var catalogAssumptionsCmd = &cobra.Command{
	Use:   "assumptions",
	Short: "List assumption documentation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		for _, a := range cat.Assumptions {
			fmt.Printf("%s (%s)\n", a.Label, a.Key)
			fmt.Printf("  default: %g\n", a.Default)
			fmt.Printf("  formula: %s\n", a.Formula)
			if a.Pitfall != "" {
				fmt.Printf("  pitfall: %s\n", a.Pitfall)
			}
			fmt.Println()
		}
		return nil
	},
}

// -- catalog validate --

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file.yaml>",
	Short: "Validate a catalog override file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("OK: %d items, %d presets, %d assumptions\n",
			len(cat.Items), len(cat.Presets), len(cat.Assumptions))
		return nil
	},
}

func init() {
	catalogItemsCmd.Flags().String("category", "", "only show items in this category")

	catalogCmd.AddCommand(catalogSportsCmd)
	catalogCmd.AddCommand(catalogItemsCmd)
	catalogCmd.AddCommand(catalogAssumptionsCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

// formatSportsList writes a tabular list of sport presets to w.
func formatSportsList(out io.Writer, cat *catalog.Catalog) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SPORT\tLABEL\tFLOORING\tMIN HEIGHT\tREC SPACE")
	_, _ = fmt.Fprintln(w, "-----\t-----\t--------\t----------\t---------")

	for _, sport := range cat.Sports() {
		p := cat.Presets[sport]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d ft\t%s SF\n",
			sport,
			p.Label,
			p.FlooringType,
			p.MinClearHeightFt,
			report.Number(p.RecommendedSpaceSf()),
		)
	}
	_ = w.Flush()
}

// formatItemsList writes a tabular list of cost items to w, optionally
// filtered to one category.
func formatItemsList(out io.Writer, cat *catalog.Catalog, category string) {
	ids := make([]string, 0, len(cat.Items))
	for id, item := range cat.Items {
		if category != "" && item.Category != category {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tUNIT\tLOW\tMID\tHIGH\tINSTALL")
	_, _ = fmt.Fprintln(w, "--\t----\t--------\t----\t---\t---\t----\t-------")

	for _, id := range ids {
		item := cat.Items[id]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.0f%%\n",
			item.ID,
			item.Name,
			item.Category,
			item.Unit,
			report.Currency(item.Tiers.Low),
			report.Currency(item.Tiers.Mid),
			report.Currency(item.Tiers.High),
			item.InstallFactorPct,
		)
	}
	_ = w.Flush()
}
