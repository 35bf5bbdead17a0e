package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/visits"
)

var recentVisits int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print visit ledger statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Ledger.Path == "" {
			return errors.New("no visit ledger configured (set ledger.path)")
		}

		ledger, err := visits.OpenLedger(cfg.Ledger.Path, cfg.Ledger.Salt)
		if err != nil {
			return err
		}
		defer ledger.Close()

		stats, err := ledger.Stats(cmd.Context(), recentVisits)
		if err != nil {
			return fmt.Errorf("loading stats: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	statsCmd.Flags().IntVar(&recentVisits, "recent", 10, "number of recent visits to include")
	rootCmd.AddCommand(statsCmd)
}
