package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var (
		live    bool
		arm     bool
		capital float64
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bot loop (paper by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(true)
			if err != nil {
				return err
			}
			defer log.Sync()

			if capital > 0 {
				cfg.Trading.InitialCapital = capital
			}

			if live {
				// Live trading needs both flags plus an interactive
				// confirmation; a lone --live is treated as a mistake.
				if !arm {
					return fmt.Errorf("live mode requires both --live and --arm")
				}
				if cfg.Alpaca.ApiKey == "" || cfg.Alpaca.SecretKey == "" {
					return fmt.Errorf("set ALPACA_API_KEY and ALPACA_SECRET_KEY for live mode")
				}
				fmt.Println("LIVE TRADING, real money at risk. Type CONFIRM to proceed:")
				reader := bufio.NewReader(os.Stdin)
				line, _ := reader.ReadString('\n')
				if strings.TrimSpace(line) != "CONFIRM" {
					fmt.Println("Aborted.")
					return nil
				}
				cfg.Trading.Live = true
			}

			b, err := buildBot(&cfg, log)
			if err != nil {
				return err
			}
			return b.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "trade with real money (requires --arm)")
	cmd.Flags().BoolVar(&arm, "arm", false, "second confirmation flag for live mode")
	cmd.Flags().Float64Var(&capital, "capital", 0, "override starting capital")
	return cmd
}
