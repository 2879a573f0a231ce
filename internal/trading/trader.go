package trading

import (
	"context"
	"math"
	"time"

	"congress-trade-bot-go/internal/config"
	"congress-trade-bot-go/internal/scoring"
	"go.uber.org/zap"
)

// Exit reasons reported on position close.
const (
	ExitStopLoss   = "stop_loss"
	ExitTakeProfit = "take_profit"
)

// sizeMultipliers maps a signal's suggested size to a fraction of the
// per-trade risk budget. Unrecognized tags default to half size.
var sizeMultipliers = map[string]float64{
	scoring.SizeFull:    1.0,
	scoring.SizeHalf:    0.5,
	scoring.SizeQuarter: 0.25,
}

const defaultSizeMultiplier = 0.5

// Position is one open or closed holding. While open, the stop-loss
// only ever ratchets upward.
type Position struct {
	Symbol     string
	Shares     int
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
	Politician string
	Score      float64
	OrderID    string
	Mode       string
	OpenedAt   time.Time
	ClosedAt   time.Time
	ExitPrice  float64
	ExitReason string
	PnL        float64
	Open       bool
}

// PositionView is a read-only snapshot of one open position for reporting.
type PositionView struct {
	Shares     int
	Entry      float64
	Current    float64
	PnL        float64
	StopLoss   float64
	TakeProfit float64
	Score      float64
	Politician string
}

// Summary is a read-only portfolio snapshot.
type Summary struct {
	TotalEquity   float64
	Cash          float64
	OpenPositions int
	OpenPnL       float64
	ClosedPnL     float64
	WinRate       float64
	TotalTrades   int
	Positions     map[string]PositionView
}

// Trader converts top signals into sized orders and manages the open
// position set under fixed risk rules. All mutation happens on the
// single orchestrator goroutine between ticks; it is not safe for
// concurrent use.
type Trader struct {
	logger    *zap.Logger
	cfg       *config.Trading
	prices    PriceSource
	executor  OrderExecutor
	cash      float64
	positions map[string]*Position
	closed    []*Position
}

func NewTrader(logger *zap.Logger, cfg *config.Trading, prices PriceSource, executor OrderExecutor) *Trader {
	return &Trader{
		logger:    logger,
		cfg:       cfg,
		prices:    prices,
		executor:  executor,
		cash:      cfg.InitialCapital,
		positions: make(map[string]*Position),
	}
}

// Connect establishes the brokerage connection and adopts the account's
// cash balance as the trading capital.
func (t *Trader) Connect(ctx context.Context) error {
	cash, err := t.executor.Connect(ctx)
	if err != nil {
		return err
	}
	t.cash = cash
	t.logger.Info("Trader connected",
		zap.String("mode", t.executor.Mode()),
		zap.Float64("capital", t.cash))
	return nil
}

// ExecuteSignal converts one signal into a sized position. Precondition
// failures (position cap, duplicate symbol, missing price, zero-share
// sizing) are non-fatal rejections returning nil, never errors.
func (t *Trader) ExecuteSignal(ctx context.Context, sig *scoring.Signal) *Position {
	symbol := sig.Trade.Symbol

	if len(t.positions) >= t.cfg.MaxPositions {
		t.logger.Warn("Max positions reached, skipping signal",
			zap.Int("max_positions", t.cfg.MaxPositions), zap.String("symbol", symbol))
		return nil
	}
	if _, open := t.positions[symbol]; open {
		t.logger.Info("Already holding position, skipping signal", zap.String("symbol", symbol))
		return nil
	}

	price, err := t.prices.GetPrice(ctx, symbol)
	if err != nil {
		t.logger.Warn("No price available, skipping signal",
			zap.String("symbol", symbol), zap.Error(err))
		return nil
	}

	multiplier, ok := sizeMultipliers[sig.SuggestedSize]
	if !ok {
		multiplier = defaultSizeMultiplier
	}
	riskDollars := t.cash * t.cfg.RiskPerTradePct * multiplier
	stopLoss := roundTo(price*(1-t.cfg.StopLossPct), 4)
	takeProfit := roundTo(price*(1+t.cfg.TakeProfitPct), 4)

	shares := int(riskDollars / (price - stopLoss))
	if shares < 1 {
		shares = 1
	}
	// No single position may exceed the notional cap.
	maxShares := int(t.cash * t.cfg.MaxPositionPct / price)
	if shares > maxShares {
		shares = maxShares
	}
	if shares <= 0 || float64(shares)*price > t.cash {
		t.logger.Warn("Position sizing rejected signal",
			zap.String("symbol", symbol), zap.Int("shares", shares), zap.Float64("cash", t.cash))
		return nil
	}

	orderID, err := t.executor.SubmitBuy(ctx, symbol, shares)
	if err != nil {
		t.logger.Error("Order submission failed", zap.String("symbol", symbol), zap.Error(err))
		return nil
	}

	pos := &Position{
		Symbol:     symbol,
		Shares:     shares,
		EntryPrice: price,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		Politician: sig.Trade.Politician,
		Score:      sig.TotalScore,
		OrderID:    orderID,
		Mode:       t.executor.Mode(),
		OpenedAt:   time.Now().UTC(),
		Open:       true,
	}
	t.positions[symbol] = pos
	// Cash is deducted on entry in both paper and live mode, keeping the
	// equity curve consistent across modes.
	t.cash -= float64(shares) * price

	t.logger.Info("Executed buy signal",
		zap.String("mode", pos.Mode),
		zap.String("symbol", symbol),
		zap.Int("shares", shares),
		zap.Float64("entry", price),
		zap.Float64("stop_loss", stopLoss),
		zap.Float64("take_profit", takeProfit),
		zap.Float64("score", sig.TotalScore),
		zap.String("politician", pos.Politician),
	)
	return pos
}

// UpdatePositions runs one tick over the open positions: ratchet the
// trailing stop, then check exits. Positions with no supplied price are
// left unmodified this tick. Returns the positions closed this tick.
func (t *Trader) UpdatePositions(currentPrices map[string]float64) []*Position {
	var closed []*Position
	for symbol, pos := range t.positions {
		price, ok := currentPrices[symbol]
		if !ok {
			continue
		}

		// Trailing stop only moves up, never down.
		if candidate := roundTo(price*(1-t.cfg.TrailingStopPct), 4); candidate > pos.StopLoss {
			pos.StopLoss = candidate
		}

		var reason string
		switch {
		case price <= pos.StopLoss:
			reason = ExitStopLoss
		case price >= pos.TakeProfit:
			reason = ExitTakeProfit
		default:
			continue
		}

		pos.PnL = roundTo((price-pos.EntryPrice)*float64(pos.Shares), 2)
		pos.ExitPrice = price
		pos.ExitReason = reason
		pos.ClosedAt = time.Now().UTC()
		pos.Open = false
		t.cash += price * float64(pos.Shares)
		t.closed = append(t.closed, pos)
		delete(t.positions, symbol)
		closed = append(closed, pos)

		t.logger.Info("Closed position",
			zap.String("symbol", symbol),
			zap.String("reason", reason),
			zap.Float64("pnl", pos.PnL),
			zap.Float64("exit", price),
		)
	}
	return closed
}

// OpenSymbols returns the symbols of all open positions.
func (t *Trader) OpenSymbols() []string {
	symbols := make([]string, 0, len(t.positions))
	for s := range t.positions {
		symbols = append(symbols, s)
	}
	return symbols
}

// PortfolioSummary computes a read-only snapshot. Symbols missing from
// currentPrices fall back to their entry price.
func (t *Trader) PortfolioSummary(currentPrices map[string]float64) Summary {
	var openValue, openPnL float64
	positions := make(map[string]PositionView, len(t.positions))
	for symbol, pos := range t.positions {
		price, ok := currentPrices[symbol]
		if !ok {
			price = pos.EntryPrice
		}
		openValue += float64(pos.Shares) * price
		pnl := (price - pos.EntryPrice) * float64(pos.Shares)
		openPnL += pnl
		positions[symbol] = PositionView{
			Shares:     pos.Shares,
			Entry:      pos.EntryPrice,
			Current:    price,
			PnL:        roundTo(pnl, 2),
			StopLoss:   pos.StopLoss,
			TakeProfit: pos.TakeProfit,
			Score:      pos.Score,
			Politician: pos.Politician,
		}
	}

	var closedPnL float64
	wins := 0
	for _, pos := range t.closed {
		closedPnL += pos.PnL
		if pos.PnL > 0 {
			wins++
		}
	}
	denom := len(t.closed)
	if denom == 0 {
		denom = 1
	}

	return Summary{
		TotalEquity:   roundTo(t.cash+openValue, 2),
		Cash:          roundTo(t.cash, 2),
		OpenPositions: len(t.positions),
		OpenPnL:       roundTo(openPnL, 2),
		ClosedPnL:     roundTo(closedPnL, 2),
		WinRate:       float64(wins) / float64(denom),
		TotalTrades:   len(t.closed),
		Positions:     positions,
	}
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
