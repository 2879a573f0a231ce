package trading

import (
	"context"
	"errors"
	"testing"

	"congress-trade-bot-go/internal/config"
	"congress-trade-bot-go/internal/disclosure"
	"congress-trade-bot-go/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) GetPrice(ctx context.Context, symbol string) (float64, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(float64), args.Error(1)
}

func testTradingConfig() *config.Trading {
	return &config.Trading{
		InitialCapital:  100_000,
		MaxPositions:    5,
		RiskPerTradePct: 0.02,
		StopLossPct:     0.08,
		TakeProfitPct:   0.20,
		TrailingStopPct: 0.12,
		MaxPositionPct:  0.10,
	}
}

func testSignal(symbol, size string) *scoring.Signal {
	return &scoring.Signal{
		Trade:         disclosure.Trade{Symbol: symbol, Politician: "Jane Maxwell"},
		TotalScore:    85,
		SuggestedSize: size,
	}
}

func newTestTrader(cfg *config.Trading, prices PriceSource) *Trader {
	return NewTrader(zap.NewNop(), cfg, prices, &PaperExecutor{Capital: cfg.InitialCapital})
}

func TestTrader_ExecuteSignal_SizingAndCaps(t *testing.T) {
	prices := new(MockPriceSource)
	prices.On("GetPrice", mock.Anything, "LMT").Return(50.0, nil)

	trader := newTestTrader(testTradingConfig(), prices)

	pos := trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull))

	assert.NotNil(t, pos)
	// Risk budget 2000 over a 4-point stop distance sizes 500 shares,
	// but the 10% notional cap limits the position to 200.
	assert.Equal(t, 200, pos.Shares)
	assert.Equal(t, 50.0, pos.EntryPrice)
	assert.Equal(t, 46.0, pos.StopLoss)
	assert.Equal(t, 60.0, pos.TakeProfit)
	assert.Equal(t, "paper", pos.Mode)
	assert.True(t, pos.Open)
	assert.Equal(t, 90_000.0, trader.cash)
	assert.Equal(t, []string{"LMT"}, trader.OpenSymbols())
}

func TestTrader_ExecuteSignal_UnknownSizeDefaultsToHalf(t *testing.T) {
	prices := new(MockPriceSource)
	prices.On("GetPrice", mock.Anything, "LMT").Return(50.0, nil)

	cfg := testTradingConfig()
	cfg.MaxPositionPct = 1.0
	trader := newTestTrader(cfg, prices)

	pos := trader.ExecuteSignal(context.Background(), testSignal("LMT", "JUMBO"))

	assert.NotNil(t, pos)
	// Half of the 2000 risk budget over a 4-point stop distance.
	assert.Equal(t, 250, pos.Shares)
}

func TestTrader_ExecuteSignal_Rejections(t *testing.T) {
	t.Run("max positions reached", func(t *testing.T) {
		prices := new(MockPriceSource)
		prices.On("GetPrice", mock.Anything, mock.Anything).Return(50.0, nil)

		cfg := testTradingConfig()
		cfg.MaxPositions = 1
		trader := newTestTrader(cfg, prices)

		assert.NotNil(t, trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull)))
		assert.Nil(t, trader.ExecuteSignal(context.Background(), testSignal("RTX", scoring.SizeFull)))
	})

	t.Run("already holding symbol", func(t *testing.T) {
		prices := new(MockPriceSource)
		prices.On("GetPrice", mock.Anything, "LMT").Return(50.0, nil)

		trader := newTestTrader(testTradingConfig(), prices)

		assert.NotNil(t, trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull)))
		assert.Nil(t, trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull)))
	})

	t.Run("no price available", func(t *testing.T) {
		prices := new(MockPriceSource)
		prices.On("GetPrice", mock.Anything, "LMT").Return(0.0, errors.New("feed down"))

		trader := newTestTrader(testTradingConfig(), prices)

		assert.Nil(t, trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull)))
		assert.Equal(t, 100_000.0, trader.cash)
	})

	t.Run("notional cap sizes to zero shares", func(t *testing.T) {
		prices := new(MockPriceSource)
		prices.On("GetPrice", mock.Anything, "BRK").Return(500.0, nil)

		cfg := testTradingConfig()
		cfg.InitialCapital = 1_000
		trader := newTestTrader(cfg, prices)

		assert.Nil(t, trader.ExecuteSignal(context.Background(), testSignal("BRK", scoring.SizeFull)))
	})
}

func TestTrader_UpdatePositions_TrailingStopRatchet(t *testing.T) {
	prices := new(MockPriceSource)
	prices.On("GetPrice", mock.Anything, "LMT").Return(50.0, nil)

	trader := newTestTrader(testTradingConfig(), prices)
	pos := trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull))
	assert.NotNil(t, pos)

	// Price up: the stop ratchets to 12% below the new price.
	closed := trader.UpdatePositions(map[string]float64{"LMT": 55})
	assert.Empty(t, closed)
	assert.Equal(t, 48.4, pos.StopLoss)

	// Price dips: the stop never moves back down.
	closed = trader.UpdatePositions(map[string]float64{"LMT": 54})
	assert.Empty(t, closed)
	assert.Equal(t, 48.4, pos.StopLoss)

	// Price crosses the ratcheted stop: position closes at a loss.
	closed = trader.UpdatePositions(map[string]float64{"LMT": 48})
	assert.Len(t, closed, 1)
	assert.Equal(t, ExitStopLoss, closed[0].ExitReason)
	assert.Equal(t, -400.0, closed[0].PnL)
	assert.False(t, closed[0].Open)
	assert.Equal(t, 99_600.0, trader.cash)
	assert.Empty(t, trader.OpenSymbols())
}

func TestTrader_UpdatePositions_TakeProfit(t *testing.T) {
	prices := new(MockPriceSource)
	prices.On("GetPrice", mock.Anything, "LMT").Return(50.0, nil)

	trader := newTestTrader(testTradingConfig(), prices)
	assert.NotNil(t, trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull)))

	closed := trader.UpdatePositions(map[string]float64{"LMT": 60})

	assert.Len(t, closed, 1)
	assert.Equal(t, ExitTakeProfit, closed[0].ExitReason)
	assert.Equal(t, 2000.0, closed[0].PnL)
	assert.Equal(t, 102_000.0, trader.cash)
}

func TestTrader_UpdatePositions_MissingPriceSkipsTick(t *testing.T) {
	prices := new(MockPriceSource)
	prices.On("GetPrice", mock.Anything, "LMT").Return(50.0, nil)

	trader := newTestTrader(testTradingConfig(), prices)
	pos := trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull))
	assert.NotNil(t, pos)

	closed := trader.UpdatePositions(map[string]float64{})

	assert.Empty(t, closed)
	assert.Equal(t, 46.0, pos.StopLoss)
	assert.Equal(t, []string{"LMT"}, trader.OpenSymbols())
}

func TestTrader_PortfolioSummary(t *testing.T) {
	prices := new(MockPriceSource)
	prices.On("GetPrice", mock.Anything, "LMT").Return(50.0, nil)

	trader := newTestTrader(testTradingConfig(), prices)
	assert.NotNil(t, trader.ExecuteSignal(context.Background(), testSignal("LMT", scoring.SizeFull)))

	t.Run("with live prices", func(t *testing.T) {
		s := trader.PortfolioSummary(map[string]float64{"LMT": 55})
		assert.Equal(t, 1, s.OpenPositions)
		assert.Equal(t, 90_000.0, s.Cash)
		assert.Equal(t, 101_000.0, s.TotalEquity)
		assert.Equal(t, 1000.0, s.OpenPnL)
		assert.Equal(t, 0.0, s.WinRate)
		assert.Equal(t, 0, s.TotalTrades)
		assert.Equal(t, 55.0, s.Positions["LMT"].Current)
	})

	t.Run("missing price falls back to entry", func(t *testing.T) {
		s := trader.PortfolioSummary(nil)
		assert.Equal(t, 100_000.0, s.TotalEquity)
		assert.Equal(t, 0.0, s.OpenPnL)
	})

	t.Run("closed trades feed the win rate", func(t *testing.T) {
		closed := trader.UpdatePositions(map[string]float64{"LMT": 60})
		assert.Len(t, closed, 1)

		s := trader.PortfolioSummary(nil)
		assert.Equal(t, 1, s.TotalTrades)
		assert.Equal(t, 1.0, s.WinRate)
		assert.Equal(t, 2000.0, s.ClosedPnL)
		assert.Equal(t, 102_000.0, s.TotalEquity)
	})
}

func TestTrader_Connect_AdoptsExecutorCash(t *testing.T) {
	trader := NewTrader(zap.NewNop(), testTradingConfig(), new(MockPriceSource), &PaperExecutor{Capital: 25_000})

	err := trader.Connect(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 25_000.0, trader.cash)
}
