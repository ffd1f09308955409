package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayameworks/cafesim/internal/config"
	"github.com/ayameworks/cafesim/internal/persistence"
	"github.com/ayameworks/cafesim/internal/report"
)

// NewReportCommand creates the `report` subcommand: print (and optionally
// export) the settled finance history.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the finance history of the saved game",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.LoadEnv()

			db, err := persistence.Open(env.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			records, err := db.DayRecords()
			if err != nil {
				return fmt.Errorf("load day records: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No settled days yet.")
				return nil
			}

			report.WriteSummary(os.Stdout, records)

			if xlsxPath != "" {
				if err := report.WriteXLSX(xlsxPath, records); err != nil {
					return fmt.Errorf("write xlsx: %w", err)
				}
				fmt.Printf("Exported %d day(s) to %s\n", len(records), xlsxPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also export the history to an xlsx file")
	return cmd
}
