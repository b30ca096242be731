package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eodhub/eoddata-go/accounting"
	"github.com/eodhub/eoddata-go/internal/config"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the call accounting summary",
	Long:  `Load the accounting data file and print per-key and per-operation call counts.`,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tracker := accounting.NewTracker(nil)
	if err := tracker.LoadFile(cfg.Accounting.DataFile); err != nil {
		return fmt.Errorf("failed to load accounting data: %w", err)
	}

	fmt.Println(tracker.Summary())
	return nil
}
