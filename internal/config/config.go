package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Congress Congress `mapstructure:"congress"`
	Alpaca   Alpaca   `mapstructure:"alpaca"`
	Trading  Trading  `mapstructure:"trading"`
	Bot      Bot      `mapstructure:"bot"`
	Logger   Logger   `mapstructure:"logger"`
	Database Database `mapstructure:"database"`
}

// Congress holds the configuration for the disclosure feed client.
type Congress struct {
	HouseURL        string  `mapstructure:"house_url"`
	SenateURL       string  `mapstructure:"senate_url"`
	RateLimit       float64 `mapstructure:"rate_limit"`
	RateLimitBurst  int     `mapstructure:"rate_limit_burst"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds"`
	CacheTTLMinutes int     `mapstructure:"cache_ttl_minutes"`
}

// Alpaca holds the brokerage credentials. The keys are normally supplied
// via the ALPACA_API_KEY and ALPACA_SECRET_KEY environment variables.
type Alpaca struct {
	ApiKey    string `mapstructure:"apiKey"`
	SecretKey string `mapstructure:"secretKey"`
}

// Trading holds the risk rules for the position manager.
type Trading struct {
	InitialCapital  float64 `mapstructure:"initial_capital"`
	MaxPositions    int     `mapstructure:"max_positions"`
	RiskPerTradePct float64 `mapstructure:"risk_per_trade_pct"`
	StopLossPct     float64 `mapstructure:"stop_loss_pct"`
	TakeProfitPct   float64 `mapstructure:"take_profit_pct"`
	TrailingStopPct float64 `mapstructure:"trailing_stop_pct"`
	MaxPositionPct  float64 `mapstructure:"max_position_pct"`
	Live            bool    `mapstructure:"live"`
}

// Bot holds the orchestrator loop settings.
type Bot struct {
	CheckIntervalMinutes int    `mapstructure:"check_interval_minutes"`
	DaysLookback         int    `mapstructure:"days_lookback"`
	RecentDays           int    `mapstructure:"recent_days"`
	ClusterWindowDays    int    `mapstructure:"cluster_window_days"`
	HistoryCap           int    `mapstructure:"history_cap"`
	MaxSignalsPerRun     int    `mapstructure:"max_signals_per_run"`
	LogDir               string `mapstructure:"log_dir"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; the defaults below are the
// documented production values.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = viper.BindEnv("alpaca.apiKey", "ALPACA_API_KEY")
	_ = viper.BindEnv("alpaca.secretKey", "ALPACA_SECRET_KEY")

	viper.SetDefault("congress.house_url",
		"https://house-stock-watcher-data.s3-us-west-2.amazonaws.com/data/all_transactions.json")
	viper.SetDefault("congress.senate_url",
		"https://senate-stock-watcher-data.s3-us-west-2.amazonaws.com/aggregate/all_transactions.json")
	viper.SetDefault("congress.rate_limit", 5) // requests per second
	viper.SetDefault("congress.rate_limit_burst", 2)
	viper.SetDefault("congress.timeout_seconds", 30)
	viper.SetDefault("congress.cache_ttl_minutes", 60)

	viper.SetDefault("trading.initial_capital", 100_000)
	viper.SetDefault("trading.max_positions", 5)
	viper.SetDefault("trading.risk_per_trade_pct", 0.02)
	viper.SetDefault("trading.stop_loss_pct", 0.08)
	viper.SetDefault("trading.take_profit_pct", 0.20)
	viper.SetDefault("trading.trailing_stop_pct", 0.12)
	viper.SetDefault("trading.max_position_pct", 0.10)
	viper.SetDefault("trading.live", false)

	viper.SetDefault("bot.check_interval_minutes", 60)
	viper.SetDefault("bot.days_lookback", 30)
	viper.SetDefault("bot.recent_days", 2)
	viper.SetDefault("bot.cluster_window_days", 30)
	viper.SetDefault("bot.history_cap", 5000)
	viper.SetDefault("bot.max_signals_per_run", 3)
	viper.SetDefault("bot.log_dir", "logs")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")

	viper.SetDefault("database.dsn", "politibot.db")

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
