package disclosure

import "context"

// TradeFeed supplies normalized, deduplicated trade records.
type TradeFeed interface {
	// FetchAll returns all trades with a transaction date within the last
	// daysBack days, deduplicated by trade ID.
	FetchAll(ctx context.Context, daysBack int) ([]Trade, error)

	// FetchRecent returns trades disclosed within the last days days.
	FetchRecent(ctx context.Context, days int) ([]Trade, error)
}
