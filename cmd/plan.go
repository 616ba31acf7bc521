package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldhouse-group/facility-cli/internal/cost"
	"github.com/fieldhouse-group/facility-cli/internal/estimate"
	"github.com/fieldhouse-group/facility-cli/internal/plan"
	"github.com/fieldhouse-group/facility-cli/internal/report"
	"github.com/fieldhouse-group/facility-cli/pkg/narrative"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage business-plan drafts",
	Long:  "Commands for creating, patching, and reporting on plan drafts. Drafts mirror the web planner's wizard steps.",
}

// -- plan new --

var planNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty draft",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		d := plan.NewDraft()
		if err := st.SaveDraft(ctx, d); err != nil {
			return err
		}

		fmt.Println(d.ID)
		return nil
	},
}

// -- plan step --

var planStepCmd = &cobra.Command{
	Use:   "step <draft-id> <step>",
	Short: "Apply a wizard-step patch to a draft",
	Long:  "Merges a partial input patch into the draft and advances its step marker. The patch is read from --input or stdin.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		raw, err := readPatch(cmd)
		if err != nil {
			return err
		}
		var p plan.Patch
		if err := json.Unmarshal(raw, &p); err != nil {
			return eris.Wrap(err, "parse patch")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		d, err := st.GetDraft(ctx, args[0])
		if err != nil {
			return err
		}
		if err := d.Apply(plan.Step(args[1]), p); err != nil {
			return err
		}
		return st.SaveDraft(ctx, d)
	},
}

func readPatch(cmd *cobra.Command) ([]byte, error) {
	if path, _ := cmd.Flags().GetString("input"); path != "" {
		raw, err := os.ReadFile(path)
		return raw, eris.Wrapf(err, "read %s", path)
	}
	raw, err := io.ReadAll(os.Stdin)
	return raw, eris.Wrap(err, "read stdin")
}

// -- plan show --

var planShowCmd = &cobra.Command{
	Use:   "show <draft-id>",
	Short: "Print a draft as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		d, err := st.GetDraft(ctx, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	},
}

// -- plan report --

var planReportCmd = &cobra.Command{
	Use:   "report <draft-id>",
	Short: "Render the business-plan report for a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		d, err := st.GetDraft(ctx, args[0])
		if err != nil {
			return err
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if d.Input.RegionMultiplier == 0 {
			d.Input.RegionMultiplier = cfg.Estimate.RegionMultiplier
		}

		result, err := estimate.Run(cost.NewCalculator(cat), cat, d.Input)
		if err != nil {
			return err
		}

		p := report.Plan{Input: d.Input, Result: result}
		if withSummary, _ := cmd.Flags().GetBool("summary"); withSummary {
			p.Summary = summarize(ctx, d.Input, result)
		}

		out := report.Render(p)
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return eris.Wrapf(err, "write %s", path)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

// summarize generates the narrative summary, falling back to the static text
// when the model call fails. The report is still useful without it.
func summarize(ctx context.Context, in estimate.Input, result *estimate.Result) string {
	facts := narrative.Facts{
		Sports:          in.Sports,
		SquareFeet:      in.SquareFeet,
		Mode:            string(in.CapEx.Mode),
		CapExTotal:      result.CapExTotal,
		MonthlyRevenue:  result.KPIs.MonthlyRevenue,
		MonthlyEBITDA:   result.KPIs.MonthlyEBITDA,
		BreakEvenMonths: result.KPIs.BreakEvenMonths,
		ROIPct:          result.KPIs.ROIPct,
	}

	summary, err := newGenerator().Summary(ctx, facts)
	if err != nil {
		zap.L().Warn("narrative generation failed, using static summary", zap.Error(err))
		summary, _ = narrative.Static{}.Summary(ctx, facts)
	}
	return summary
}

// -- plan prune --

var planPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete drafts older than the configured TTL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		olderThan, _ := cmd.Flags().GetDuration("older-than")
		if olderThan == 0 {
			olderThan = time.Duration(cfg.Estimate.DraftTTLHours) * time.Hour
		}

		n, err := st.DeleteStaleDrafts(ctx, olderThan)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d draft(s)\n", n)
		return nil
	},
}

func init() {
	planStepCmd.Flags().String("input", "", "path to patch JSON (default stdin)")

	planReportCmd.Flags().Bool("summary", false, "include a generated executive summary")
	planReportCmd.Flags().String("out", "", "write the report to a file instead of stdout")

	planPruneCmd.Flags().Duration("older-than", 0, "age threshold (default from config draft TTL)")

	planCmd.AddCommand(planNewCmd)
	planCmd.AddCommand(planStepCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planReportCmd)
	planCmd.AddCommand(planPruneCmd)
	rootCmd.AddCommand(planCmd)
}
