package trading

import (
	"context"
	"errors"
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// ErrPriceUnavailable is returned when a symbol cannot be priced this
// tick. It is distinguishable from a zero or negative quote, which is
// treated as malformed data.
var ErrPriceUnavailable = errors.New("price unavailable")

// PriceSource supplies the most recent traded price per symbol.
type PriceSource interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// AlpacaPriceSource prices symbols from the Alpaca market data API. It
// serves both paper and live trading; paper mode simply trades simulated
// cash against real quotes.
type AlpacaPriceSource struct {
	client *marketdata.Client
}

var _ PriceSource = (*AlpacaPriceSource)(nil)

func NewAlpacaPriceSource(apiKey, secretKey string) *AlpacaPriceSource {
	return &AlpacaPriceSource{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: secretKey,
		}),
	}
}

func (s *AlpacaPriceSource) GetPrice(ctx context.Context, symbol string) (float64, error) {
	trade, err := s.client.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrPriceUnavailable, symbol, err)
	}
	if trade == nil || trade.Price <= 0 {
		return 0, fmt.Errorf("%w: %s: empty quote", ErrPriceUnavailable, symbol)
	}
	return trade.Price, nil
}
