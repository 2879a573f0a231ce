package trading

import (
	"context"
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderExecutor places buy orders, either simulated or against a live
// brokerage account.
type OrderExecutor interface {
	// Connect establishes the account connection and returns the
	// starting cash balance.
	Connect(ctx context.Context) (float64, error)

	// SubmitBuy places a market buy and returns the broker order ID.
	SubmitBuy(ctx context.Context, symbol string, shares int) (string, error)

	// Mode returns "paper" or "live".
	Mode() string
}

// PaperExecutor simulates order execution against a fixed starting
// capital. Orders always fill at the caller-observed price.
type PaperExecutor struct {
	Capital float64
}

var _ OrderExecutor = (*PaperExecutor)(nil)

func (e *PaperExecutor) Connect(ctx context.Context) (float64, error) {
	return e.Capital, nil
}

func (e *PaperExecutor) SubmitBuy(ctx context.Context, symbol string, shares int) (string, error) {
	return "paper-" + uuid.NewString()[:8], nil
}

func (e *PaperExecutor) Mode() string { return "paper" }

// AlpacaExecutor places real market orders through the Alpaca trading API.
type AlpacaExecutor struct {
	client *alpaca.Client
}

var _ OrderExecutor = (*AlpacaExecutor)(nil)

func NewAlpacaExecutor(apiKey, secretKey string) *AlpacaExecutor {
	return &AlpacaExecutor{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: secretKey,
		}),
	}
}

func (e *AlpacaExecutor) Connect(ctx context.Context) (float64, error) {
	account, err := e.client.GetAccount()
	if err != nil {
		return 0, fmt.Errorf("failed to connect to brokerage: %w", err)
	}
	return account.Equity.InexactFloat64(), nil
}

func (e *AlpacaExecutor) SubmitBuy(ctx context.Context, symbol string, shares int) (string, error) {
	qty := decimal.NewFromInt(int64(shares))
	order, err := e.client.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      symbol,
		Qty:         &qty,
		Side:        alpaca.Buy,
		Type:        alpaca.Market,
		TimeInForce: alpaca.Day,
	})
	if err != nil {
		return "", fmt.Errorf("failed to place order for %s: %w", symbol, err)
	}
	return order.ID, nil
}

func (e *AlpacaExecutor) Mode() string { return "live" }
