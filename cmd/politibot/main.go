package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"congress-trade-bot-go/internal/config"
	"congress-trade-bot-go/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

func main() {
	// Brokerage credentials live in .env during development; a missing
	// file is fine in production where the environment is set directly.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		cancel()
	}()

	root := &cobra.Command{
		Use:   "politibot",
		Short: "Scores congressional stock disclosures and trades the top signals",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./configs", "config directory")
	root.AddCommand(scanCmd(), runCmd(), topCmd(), statusCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger shared by all commands.
func setup(withFileLog bool) (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("could not load config: %w", err)
	}

	logDir := ""
	if withFileLog {
		logDir = cfg.Bot.LogDir
	}
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format, logDir)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("could not initialize logger: %w", err)
	}
	return cfg, log, nil
}
