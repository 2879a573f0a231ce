package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"congress-trade-bot-go/internal/config"
	"congress-trade-bot-go/internal/disclosure"
	"congress-trade-bot-go/internal/journal"
	"congress-trade-bot-go/internal/models"
	"congress-trade-bot-go/internal/scoring"
	"congress-trade-bot-go/internal/trading"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Bot drives the fetch -> score -> execute -> monitor cycle. All state
// mutation happens on the scheduler goroutine; cycles never overlap
// because the cron job chain serializes them.
type Bot struct {
	logger  *zap.Logger
	cfg     *config.Config
	feed    disclosure.TradeFeed
	engine  *scoring.Engine
	trader  *trading.Trader
	prices  trading.PriceSource
	journal *journal.Journal
	db      *gorm.DB

	history []disclosure.Trade
	seen    map[string]struct{}
}

func New(
	logger *zap.Logger,
	cfg *config.Config,
	feed disclosure.TradeFeed,
	engine *scoring.Engine,
	trader *trading.Trader,
	prices trading.PriceSource,
	jrnl *journal.Journal,
	db *gorm.DB,
) *Bot {
	return &Bot{
		logger:  logger,
		cfg:     cfg,
		feed:    feed,
		engine:  engine,
		trader:  trader,
		prices:  prices,
		journal: jrnl,
		db:      db,
		seen:    make(map[string]struct{}),
	}
}

// Run starts the bot: connect, backfill, then scheduled cycles until the
// context is cancelled, at which point a final portfolio report is logged.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot",
		zap.String("mode", modeLabel(b.cfg.Trading.Live)),
		zap.Float64("capital", b.cfg.Trading.InitialCapital))

	if err := b.trader.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect trader: %w", err)
	}
	b.loadSeenTrades()

	// Initial backfill: score the whole lookback window once.
	history, err := b.feed.FetchAll(ctx, b.cfg.Bot.DaysLookback)
	if err != nil {
		// A dead feed at startup is not fatal; the scheduled cycles retry.
		b.logger.Error("Initial fetch failed, starting with empty history", zap.Error(err))
	}
	b.history = capTrades(history, b.cfg.Bot.HistoryCap)
	b.processBatch(ctx, b.newTrades(b.history), true)
	b.updateOpenPositions(ctx)

	scheduler := cron.New(cron.WithChain(
		cron.Recover(cronLogger{b.logger}),
		cron.SkipIfStillRunning(cronLogger{b.logger}),
	))
	spec := fmt.Sprintf("@every %dm", b.cfg.Bot.CheckIntervalMinutes)
	if _, err := scheduler.AddFunc(spec, func() { b.cycle(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule cycle: %w", err)
	}
	scheduler.Start()
	b.logger.Info("Scheduler started", zap.String("interval", spec))

	<-ctx.Done()
	b.logger.Info("Shutdown signal received, stopping bot...")
	<-scheduler.Stop().Done()
	b.finalReport()
	return nil
}

// RunOnce performs a single scan without executing anything. Used by the
// scan command.
func (b *Bot) RunOnce(ctx context.Context, daysBack int) ([]scoring.Signal, error) {
	history, err := b.feed.FetchAll(ctx, daysBack)
	if err != nil {
		return nil, err
	}
	b.history = capTrades(history, b.cfg.Bot.HistoryCap)
	return b.processBatch(ctx, b.history, false), nil
}

// cycle is one scheduled pass: fetch new disclosures, score, execute,
// then update the open positions. A failed cycle is logged and the next
// one runs on schedule.
func (b *Bot) cycle(ctx context.Context) {
	b.logger.Info("Checking for new disclosures...")

	recent, err := b.feed.FetchRecent(ctx, b.cfg.Bot.RecentDays)
	if err != nil {
		b.logger.Error("Fetch failed this cycle", zap.Error(err))
	} else {
		fresh := b.newTrades(recent)
		if len(fresh) > 0 {
			b.logger.Info("New disclosures found", zap.Int("count", len(fresh)))
			b.history = capTrades(append(b.history, fresh...), b.cfg.Bot.HistoryCap)
			b.processBatch(ctx, fresh, true)
		} else {
			b.logger.Info("No new disclosures.")
		}
	}

	b.updateOpenPositions(ctx)
}

// processBatch scores a batch against the accumulated history, persists
// the emitted signals, and optionally executes the top ones.
func (b *Bot) processBatch(ctx context.Context, batch []disclosure.Trade, execute bool) []scoring.Signal {
	if len(batch) == 0 {
		return nil
	}
	b.persistDisclosures(batch)

	signals := b.engine.Generate(batch, b.history)
	for i := range batch {
		b.seen[batch[i].ID] = struct{}{}
	}
	if len(signals) == 0 {
		return nil
	}

	for i := range signals {
		if i >= 10 {
			break
		}
		s := &signals[i]
		b.logger.Info("Signal",
			zap.String("recommendation", s.Recommendation),
			zap.String("symbol", s.Trade.Symbol),
			zap.Float64("score", s.TotalScore),
			zap.String("politician", s.Trade.Politician),
			zap.Strings("reasons", s.Reasons),
		)
	}

	b.persistSignals(signals)
	if path, err := b.journal.SaveSignals(signals, time.Now()); err != nil {
		b.logger.Error("Failed to save signal log", zap.Error(err))
	} else {
		b.logger.Info("Signals saved", zap.String("path", path))
	}

	if execute {
		executed := 0
		for i := range signals {
			if executed >= b.cfg.Bot.MaxSignalsPerRun {
				break
			}
			s := &signals[i]
			if s.Recommendation != scoring.StrongBuy && s.Recommendation != scoring.Buy {
				continue
			}
			pos := b.trader.ExecuteSignal(ctx, s)
			if pos == nil {
				continue
			}
			executed++
			b.persistExecution(s, pos)
			if err := b.journal.AppendExecution(s, pos); err != nil {
				b.logger.Error("Failed to append execution log", zap.Error(err))
			}
		}
	}
	return signals
}

// updateOpenPositions refreshes prices for the open positions, applies
// stops, and logs a portfolio summary. Symbols that fail to price are
// left untouched this tick.
func (b *Bot) updateOpenPositions(ctx context.Context) {
	symbols := b.trader.OpenSymbols()
	if len(symbols) == 0 {
		return
	}

	prices := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		price, err := b.prices.GetPrice(ctx, symbol)
		if err != nil {
			b.logger.Warn("Price fetch failed, leaving position unmodified",
				zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		prices[symbol] = price
	}

	closed := b.trader.UpdatePositions(prices)
	for _, pos := range closed {
		b.persistClose(pos)
	}

	summary := b.trader.PortfolioSummary(prices)
	b.logger.Info("Portfolio status",
		zap.Float64("total_equity", summary.TotalEquity),
		zap.Float64("open_pnl", summary.OpenPnL),
		zap.Float64("closed_pnl", summary.ClosedPnL),
		zap.Int("open_positions", summary.OpenPositions),
		zap.Float64("win_rate", summary.WinRate),
		zap.Int("total_trades", summary.TotalTrades),
	)
}

// finalReport logs the portfolio one last time before exit. In-flight
// price fetches get a short deadline rather than blocking shutdown.
func (b *Bot) finalReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prices := make(map[string]float64)
	for _, symbol := range b.trader.OpenSymbols() {
		if price, err := b.prices.GetPrice(ctx, symbol); err == nil {
			prices[symbol] = price
		}
	}
	summary := b.trader.PortfolioSummary(prices)
	b.logger.Info("Final report",
		zap.Float64("total_equity", summary.TotalEquity),
		zap.Float64("open_pnl", summary.OpenPnL),
		zap.Float64("closed_pnl", summary.ClosedPnL),
		zap.Float64("win_rate", summary.WinRate),
		zap.Int("total_trades", summary.TotalTrades),
	)
}

// newTrades filters a batch down to trades not processed before.
func (b *Bot) newTrades(batch []disclosure.Trade) []disclosure.Trade {
	fresh := batch[:0:0]
	for _, t := range batch {
		if _, ok := b.seen[t.ID]; !ok {
			fresh = append(fresh, t)
		}
	}
	return fresh
}

// loadSeenTrades marks every persisted disclosure as already processed,
// so a restart does not re-signal old filings.
func (b *Bot) loadSeenTrades() {
	var ids []string
	if err := b.db.Model(&models.DisclosedTrade{}).Pluck("trade_id", &ids).Error; err != nil {
		b.logger.Error("Failed to load seen trades", zap.Error(err))
		return
	}
	for _, id := range ids {
		b.seen[id] = struct{}{}
	}
	b.logger.Info("Loaded previously seen trades", zap.Int("count", len(ids)))
}

func (b *Bot) persistDisclosures(batch []disclosure.Trade) {
	records := make([]models.DisclosedTrade, 0, len(batch))
	for i := range batch {
		t := &batch[i]
		records = append(records, models.DisclosedTrade{
			TradeID:         t.ID,
			Politician:      t.Politician,
			Chamber:         string(t.Chamber),
			Party:           t.Party,
			State:           t.State,
			Symbol:          t.Symbol,
			AssetName:       t.AssetName,
			TradeType:       t.TradeType,
			AmountLow:       t.AmountLow,
			AmountHigh:      t.AmountHigh,
			TransactionDate: t.TransactionDate,
			DisclosureDate:  t.DisclosureDate,
			FilingDelayDays: t.FilingDelayDays,
			IsOption:        t.IsOption,
			Committee:       t.Committee,
		})
	}
	if err := b.db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(records, 200).Error; err != nil {
		b.logger.Error("Failed to persist disclosures", zap.Error(err))
	}
}

func (b *Bot) persistSignals(signals []scoring.Signal) {
	records := make([]models.SignalRecord, 0, len(signals))
	for i := range signals {
		s := &signals[i]
		records = append(records, models.SignalRecord{
			TradeID:         s.Trade.ID,
			Symbol:          s.Trade.Symbol,
			Politician:      s.Trade.Politician,
			TotalScore:      s.TotalScore,
			PoliticianScore: s.PoliticianScore,
			TradeScore:      s.TradeScore,
			ClusterScore:    s.ClusterScore,
			Recommendation:  s.Recommendation,
			Urgency:         s.Urgency,
			SuggestedSize:   s.SuggestedSize,
			Reasons:         strings.Join(s.Reasons, "\n"),
			TransactionDate: s.Trade.TransactionDate,
			DisclosureDate:  s.Trade.DisclosureDate,
		})
	}
	if err := b.db.CreateInBatches(records, 200).Error; err != nil {
		b.logger.Error("Failed to persist signals", zap.Error(err))
	}
}

func (b *Bot) persistExecution(s *scoring.Signal, pos *trading.Position) {
	record := models.ExecutionRecord{
		Symbol:         pos.Symbol,
		Politician:     pos.Politician,
		Score:          pos.Score,
		Recommendation: s.Recommendation,
		Shares:         pos.Shares,
		EntryPrice:     pos.EntryPrice,
		StopLoss:       pos.StopLoss,
		TakeProfit:     pos.TakeProfit,
		OrderID:        pos.OrderID,
		Mode:           pos.Mode,
	}
	if err := b.db.Create(&record).Error; err != nil {
		b.logger.Error("Failed to persist execution", zap.Error(err))
	}
}

func (b *Bot) persistClose(pos *trading.Position) {
	record := models.ClosedPosition{
		Symbol:     pos.Symbol,
		Shares:     pos.Shares,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  pos.ExitPrice,
		PnL:        pos.PnL,
		ExitReason: pos.ExitReason,
		Politician: pos.Politician,
		Score:      pos.Score,
		OpenedAt:   pos.OpenedAt,
		ClosedAt:   pos.ClosedAt,
	}
	if err := b.db.Create(&record).Error; err != nil {
		b.logger.Error("Failed to persist closed position", zap.Error(err))
	}
}

// capTrades keeps only the most recent n entries of an append-ordered
// history, bounding memory.
func capTrades(trades []disclosure.Trade, n int) []disclosure.Trade {
	if n <= 0 || len(trades) <= n {
		return trades
	}
	return trades[len(trades)-n:]
}

func modeLabel(live bool) string {
	if live {
		return "live"
	}
	return "paper"
}

// cronLogger adapts zap to the cron logging interface.
type cronLogger struct {
	l *zap.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Infow(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
