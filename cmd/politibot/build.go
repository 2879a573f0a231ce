package main

import (
	"fmt"

	"congress-trade-bot-go/internal/bot"
	"congress-trade-bot-go/internal/config"
	"congress-trade-bot-go/internal/congress"
	"congress-trade-bot-go/internal/database"
	"congress-trade-bot-go/internal/journal"
	"congress-trade-bot-go/internal/scoring"
	"congress-trade-bot-go/internal/trading"
	"go.uber.org/zap"
)

// buildBot wires the full bot from config: feed, scorers, trader,
// journal and database.
func buildBot(cfg *config.Config, log *zap.Logger) (*bot.Bot, error) {
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	ref := scoring.DefaultReferenceData()
	feed, err := congress.NewClient(&cfg.Congress, ref.CommitteeByPolitician(), log)
	if err != nil {
		return nil, err
	}

	jrnl, err := journal.New(cfg.Bot.LogDir)
	if err != nil {
		return nil, err
	}

	engine := scoring.NewEngine(log, ref, cfg.Bot.ClusterWindowDays)
	prices := trading.NewAlpacaPriceSource(cfg.Alpaca.ApiKey, cfg.Alpaca.SecretKey)

	var executor trading.OrderExecutor
	if cfg.Trading.Live {
		if cfg.Alpaca.ApiKey == "" || cfg.Alpaca.SecretKey == "" {
			return nil, fmt.Errorf("live mode requires ALPACA_API_KEY and ALPACA_SECRET_KEY")
		}
		executor = trading.NewAlpacaExecutor(cfg.Alpaca.ApiKey, cfg.Alpaca.SecretKey)
	} else {
		executor = &trading.PaperExecutor{Capital: cfg.Trading.InitialCapital}
	}
	trader := trading.NewTrader(log, &cfg.Trading, prices, executor)

	return bot.New(log, cfg, feed, engine, trader, prices, jrnl, db), nil
}
