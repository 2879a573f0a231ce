package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"congress-trade-bot-go/internal/disclosure"
)

const (
	MaxClusterScore = 20.0

	// Points per distinct politician in a cluster, capped at MaxClusterScore.
	clusterPointsPerBuyer = 8.0

	// DefaultClusterWindowDays is the rolling window for correlated buying.
	DefaultClusterWindowDays = 30

	// At most this many names are listed in a cluster reason.
	clusterReasonNames = 5
)

// Cluster records correlated buying of one symbol by several distinct
// politicians within the rolling window.
type Cluster struct {
	Symbol      string
	Count       int
	Politicians []string
	TotalAmount int64
	Score       float64
}

// ClusterDetector finds symbols purchased by two or more distinct
// politicians within a rolling window anchored at the current time.
type ClusterDetector struct {
	windowDays int
	now        func() time.Time
}

func NewClusterDetector(windowDays int) *ClusterDetector {
	if windowDays <= 0 {
		windowDays = DefaultClusterWindowDays
	}
	return &ClusterDetector{windowDays: windowDays, now: time.Now}
}

// Detect scans the history and returns a map of symbol to cluster for
// every symbol bought by at least two distinct politicians in the window.
func (d *ClusterDetector) Detect(history []disclosure.Trade) map[string]Cluster {
	cutoff := d.now().AddDate(0, 0, -d.windowDays)

	bySymbol := make(map[string][]*disclosure.Trade)
	for i := range history {
		t := &history[i]
		if !t.IsPurchase() || t.TransactionDate.Before(cutoff) {
			continue
		}
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
	}

	clusters := make(map[string]Cluster)
	for symbol, trades := range bySymbol {
		buyers := make(map[string]struct{})
		var total int64
		for _, t := range trades {
			buyers[t.Politician] = struct{}{}
			total += t.AvgAmount()
		}
		if len(buyers) < 2 {
			continue
		}

		names := make([]string, 0, len(buyers))
		for name := range buyers {
			names = append(names, name)
		}
		sort.Strings(names)

		score := float64(len(buyers)) * clusterPointsPerBuyer
		if score > MaxClusterScore {
			score = MaxClusterScore
		}
		clusters[symbol] = Cluster{
			Symbol:      symbol,
			Count:       len(buyers),
			Politicians: names,
			TotalAmount: total,
			Score:       score,
		}
	}
	return clusters
}

// ScoreSymbol looks a symbol up in a precomputed cluster map. Symbols
// with no cluster score zero with no reasons.
func (d *ClusterDetector) ScoreSymbol(symbol string, clusters map[string]Cluster) (float64, []string) {
	c, ok := clusters[symbol]
	if !ok {
		return 0, nil
	}
	names := c.Politicians
	if len(names) > clusterReasonNames {
		names = names[:clusterReasonNames]
	}
	reasons := []string{
		fmt.Sprintf("cluster: %d politicians bought %s recently", c.Count, symbol),
		fmt.Sprintf("politicians: %s", strings.Join(names, ", ")),
		fmt.Sprintf("total invested: $%d", c.TotalAmount),
	}
	return c.Score, reasons
}
