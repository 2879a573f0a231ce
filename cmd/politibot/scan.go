package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var days, top int
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Score recent disclosures without trading",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(false)
			if err != nil {
				return err
			}
			defer log.Sync()

			b, err := buildBot(&cfg, log)
			if err != nil {
				return err
			}

			signals, err := b.RunOnce(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			if len(signals) == 0 {
				fmt.Println("No signals found.")
				return nil
			}

			fmt.Printf("Top signals (%d total, last %d days):\n\n", len(signals), days)
			for i, sig := range signals {
				if i >= top {
					break
				}
				fmt.Printf("%2d. %-6s score %5.1f/100  %-10s  %s\n",
					i+1, sig.Trade.Symbol, sig.TotalScore, sig.Recommendation, sig.Trade.Politician)
				fmt.Printf("    %s | $%d | filed %s (%d days after trade)\n",
					sig.Trade.TradeType, sig.Trade.AvgAmount(),
					sig.Trade.DisclosureDate.Format("2006-01-02"), sig.Trade.FilingDelayDays)
				for _, r := range sig.Reasons {
					if len(r) > 0 {
						fmt.Printf("      - %s\n", r)
					}
				}
				fmt.Printf("    urgency %s, size %s\n\n", sig.Urgency, sig.SuggestedSize)
			}
			fmt.Println("Note: the 45-day filing deadline means the market may already have moved.")
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "days of history to scan")
	cmd.Flags().IntVar(&top, "top", 15, "number of signals to show")
	return cmd
}
