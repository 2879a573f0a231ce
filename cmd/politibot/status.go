package main

import (
	"fmt"

	"congress-trade-bot-go/internal/database"
	"congress-trade-bot-go/internal/models"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the most recent persisted signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(false)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.NewDatabase(cfg.Database.DSN)
			if err != nil {
				return err
			}

			var signals []models.SignalRecord
			if err := db.Order("created_at desc").Limit(n).Find(&signals).Error; err != nil {
				return fmt.Errorf("failed to load signals: %w", err)
			}
			if len(signals) == 0 {
				fmt.Println("No signals recorded yet. Run 'scan' or 'run' first.")
				return nil
			}

			fmt.Printf("Last %d signals:\n", len(signals))
			for _, s := range signals {
				fmt.Printf("%-6s %5.1f/100  %-10s  %s (%s)\n",
					s.Symbol, s.TotalScore, s.Recommendation, s.Politician,
					s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 10, "number of signals to show")
	return cmd
}
