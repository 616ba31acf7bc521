package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fieldhouse-group/facility-cli/internal/lead"
	"github.com/fieldhouse-group/facility-cli/internal/report"
	"github.com/fieldhouse-group/facility-cli/internal/store"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect and manage captured leads",
	Long:  "Commands for listing leads, retrying failed sheet syncs, and moving leads in and out of XLSX workbooks.",
}

// -- leads list --

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured leads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		status, _ := cmd.Flags().GetString("status")
		email, _ := cmd.Flags().GetString("email")
		limit, _ := cmd.Flags().GetInt("limit")

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			SyncStatus: lead.SyncStatus(status),
			Email:      email,
			Limit:      limit,
		})
		if err != nil {
			return err
		}

		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "No leads found.")
			return nil
		}

		formatLeadsList(os.Stdout, leads)
		return nil
	},
}

// -- leads resync --

var leadsResyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Retry the sheet append for failed leads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		limit, _ := cmd.Flags().GetInt("limit")
		synced, err := newDispatcher(st).Resync(ctx, limit)
		if err != nil {
			return err
		}

		fmt.Printf("Resynced %d lead(s)\n", synced)
		return nil
	},
}

// -- leads export --

var leadsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write leads to an XLSX workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		status, _ := cmd.Flags().GetString("status")
		leads, err := st.ListLeads(ctx, store.LeadFilter{SyncStatus: lead.SyncStatus(status)})
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if err := report.WriteLeadsXLSX(out, leads); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Wrote %d lead(s) to %s\n", len(leads), out)
		return nil
	},
}

// -- leads import --

var leadsImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Bulk-load leads from an XLSX workbook",
	Long:  "Reads a workbook produced by leads export and upserts its rows. Requires the postgres store; the bulk path rides COPY.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		pg, ok := st.(*store.PostgresStore)
		if !ok {
			return eris.New("leads import requires the postgres store")
		}

		leads, err := report.ReadLeadsXLSX(args[0])
		if err != nil {
			return err
		}
		if len(leads) == 0 {
			fmt.Fprintln(os.Stderr, "No leads in workbook.")
			return nil
		}

		n, err := pg.ImportLeads(ctx, leads)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d lead(s)\n", n)
		return nil
	},
}

func init() {
	leadsListCmd.Flags().String("status", "", "filter by sync status (pending, synced, failed)")
	leadsListCmd.Flags().String("email", "", "filter by email")
	leadsListCmd.Flags().Int("limit", 50, "max number of leads to display")

	leadsResyncCmd.Flags().Int("limit", 100, "max number of failed leads to retry")

	leadsExportCmd.Flags().String("status", "", "only export leads with this sync status")
	leadsExportCmd.Flags().String("out", "leads.xlsx", "output workbook path")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsResyncCmd)
	leadsCmd.AddCommand(leadsExportCmd)
	leadsCmd.AddCommand(leadsImportCmd)
	rootCmd.AddCommand(leadsCmd)
}

// formatLeadsList writes a tabular list of leads to w.
func formatLeadsList(out io.Writer, leads []lead.Lead) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCITY\tSYNC\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t----\t----\t-------")

	for _, l := range leads {
		city := l.City
		if l.State != "" {
			city = city + ", " + l.State
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncateID(l.ID),
			l.Name,
			l.Email,
			city,
			l.SyncStatus,
			l.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
