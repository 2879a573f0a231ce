package congress

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"congress-trade-bot-go/internal/config"
	"congress-trade-bot-go/internal/disclosure"
	"github.com/dgraph-io/ristretto"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userAgent = "PolitiBot/1.0 (research tool)"

// Client fetches congressional trade disclosures from the House and
// Senate stock-watcher endpoints. It implements disclosure.TradeFeed.
type Client struct {
	client    *resty.Client
	houseURL  string
	senateURL string
	logger    *zap.Logger
	limiter   *rate.Limiter
	cache     *ristretto.Cache
	cacheTTL  time.Duration
	parser    *Parser
	now       func() time.Time
}

// ensure Client implements the feed interface
var _ disclosure.TradeFeed = (*Client)(nil)

// NewClient creates a new disclosure feed client. committees maps
// politician names to their known committee assignment.
func NewClient(cfg *config.Congress, committees map[string]string, logger *zap.Logger) (*Client, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 64,
		MaxCost:     8,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create feed cache: %w", err)
	}

	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &Client{
		client:    client,
		houseURL:  cfg.HouseURL,
		senateURL: cfg.SenateURL,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
		cache:     cache,
		cacheTTL:  time.Duration(cfg.CacheTTLMinutes) * time.Minute,
		parser:    NewParser(committees),
		now:       time.Now,
	}, nil
}

// FetchAll fetches trades from both chambers with a transaction date
// within the last daysBack days, deduplicated by trade ID.
func (c *Client) FetchAll(ctx context.Context, daysBack int) ([]disclosure.Trade, error) {
	cutoff := c.now().AddDate(0, 0, -daysBack)

	var trades []disclosure.Trade
	seen := make(map[string]struct{})
	fetched := false

	for _, src := range []struct {
		chamber disclosure.Chamber
		url     string
	}{
		{disclosure.ChamberHouse, c.houseURL},
		{disclosure.ChamberSenate, c.senateURL},
	} {
		raw, err := c.fetchChamber(ctx, string(src.chamber), src.url)
		if err != nil {
			// One chamber failing must not lose the other's data.
			c.logger.Error("Failed to fetch chamber disclosures",
				zap.String("chamber", string(src.chamber)), zap.Error(err))
			continue
		}
		fetched = true

		parsed := c.parser.Parse(raw, src.chamber, cutoff)
		for i := range parsed {
			if _, dup := seen[parsed[i].ID]; dup {
				continue
			}
			seen[parsed[i].ID] = struct{}{}
			trades = append(trades, parsed[i])
		}
		c.logger.Info("Fetched chamber disclosures",
			zap.String("chamber", string(src.chamber)),
			zap.Int("trades", len(parsed)))
	}

	if !fetched {
		return nil, fmt.Errorf("all disclosure sources failed")
	}
	return trades, nil
}

// FetchRecent returns trades disclosed within the last days days. The
// transaction lookback is padded by the statutory deadline so freshly
// disclosed but older transactions are still included.
func (c *Client) FetchRecent(ctx context.Context, days int) ([]disclosure.Trade, error) {
	all, err := c.FetchAll(ctx, days+disclosure.LateFilingDays+5)
	if err != nil {
		return nil, err
	}
	cutoff := c.now().AddDate(0, 0, -days)
	recent := all[:0:0]
	for _, t := range all {
		if !t.DisclosureDate.Before(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent, nil
}

// fetchChamber returns the raw transaction list for one chamber, served
// from the TTL cache when fresh.
func (c *Client) fetchChamber(ctx context.Context, chamber, url string) ([]rawTransaction, error) {
	if cached, ok := c.cache.Get(chamber); ok {
		c.logger.Debug("Serving disclosures from cache", zap.String("chamber", chamber))
		return cached.([]rawTransaction), nil
	}

	var raw []rawTransaction
	req := c.client.R().
		SetContext(ctx).
		SetResult(&raw).
		SetHeader("Accept", "application/json")

	if _, err := c.doRequest(ctx, http.MethodGet, url, req); err != nil {
		return nil, fmt.Errorf("failed to fetch %s disclosures: %w", chamber, err)
	}

	c.cache.SetWithTTL(chamber, raw, 1, c.cacheTTL)
	return raw, nil
}

// doRequest handles the actual request execution with rate limiting and
// retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil && resp.StatusCode() != 0 {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
