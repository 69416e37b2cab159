package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/intel-engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "intel-engine",
	Short: "Sales intelligence processing engine",
	Long:  "Converts raw customer interaction records (meetings, emails, tickets, telemetry, CRM state) into structured sales-intelligence reports via Claude extraction and deterministic aggregation.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
