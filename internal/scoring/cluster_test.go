package scoring

import (
	"testing"
	"time"

	"congress-trade-bot-go/internal/disclosure"
	"github.com/stretchr/testify/assert"
)

func fixedDetector(windowDays int, now time.Time) *ClusterDetector {
	d := NewClusterDetector(windowDays)
	d.now = func() time.Time { return now }
	return d
}

func TestClusterDetector_TwoBuyersFormCluster(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	d := fixedDetector(30, now)

	history := []disclosure.Trade{
		purchase("Jane Maxwell", "LMT", 100_000, now.AddDate(0, 0, -3)),
		purchase("Perfect Pete", "LMT", 50_000, now.AddDate(0, 0, -10)),
		purchase("Jane Maxwell", "AAPL", 20_000, now.AddDate(0, 0, -1)),
	}

	clusters := d.Detect(history)

	assert.Len(t, clusters, 1)
	c, ok := clusters["LMT"]
	assert.True(t, ok)
	assert.Equal(t, 2, c.Count)
	assert.Equal(t, []string{"Jane Maxwell", "Perfect Pete"}, c.Politicians)
	assert.Equal(t, int64(150_000), c.TotalAmount)
	assert.Equal(t, 16.0, c.Score)
}

func TestClusterDetector_ScoreCapsAtTwenty(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	d := fixedDetector(30, now)

	history := []disclosure.Trade{
		purchase("Buyer One", "NVDA", 10_000, now.AddDate(0, 0, -1)),
		purchase("Buyer Two", "NVDA", 10_000, now.AddDate(0, 0, -2)),
		purchase("Buyer Three", "NVDA", 10_000, now.AddDate(0, 0, -3)),
	}

	clusters := d.Detect(history)
	assert.Equal(t, MaxClusterScore, clusters["NVDA"].Score)
}

func TestClusterDetector_SamePoliticianTwiceIsNoCluster(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	d := fixedDetector(30, now)

	history := []disclosure.Trade{
		purchase("Jane Maxwell", "LMT", 100_000, now.AddDate(0, 0, -3)),
		purchase("Jane Maxwell", "LMT", 100_000, now.AddDate(0, 0, -9)),
	}

	assert.Empty(t, d.Detect(history))
}

func TestClusterDetector_WindowAndSaleFiltering(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	d := fixedDetector(30, now)

	history := []disclosure.Trade{
		purchase("Jane Maxwell", "LMT", 100_000, now.AddDate(0, 0, -3)),
		// Outside the 30-day window.
		purchase("Perfect Pete", "LMT", 50_000, now.AddDate(0, 0, -31)),
		// Sales never count toward clustering.
		sale("Perfect Pete", "LMT", 50_000, now.AddDate(0, 0, -5)),
	}

	assert.Empty(t, d.Detect(history))
}

func TestClusterDetector_ScoreSymbolMiss(t *testing.T) {
	d := NewClusterDetector(30)

	pts, reasons := d.ScoreSymbol("TSLA", map[string]Cluster{})

	assert.Equal(t, 0.0, pts)
	assert.Nil(t, reasons)
}

func TestClusterDetector_ReasonNamesTruncated(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	d := fixedDetector(30, now)

	var history []disclosure.Trade
	for _, name := range []string{"A One", "B Two", "C Three", "D Four", "E Five", "F Six"} {
		history = append(history, purchase(name, "MSFT", 10_000, now.AddDate(0, 0, -2)))
	}

	clusters := d.Detect(history)
	pts, reasons := d.ScoreSymbol("MSFT", clusters)

	assert.Equal(t, MaxClusterScore, pts)
	assert.Contains(t, reasons[0], "6 politicians")
	assert.NotContains(t, reasons[1], "F Six")
}
