package scoring

import (
	"fmt"
	"math"
	"sort"

	"congress-trade-bot-go/internal/disclosure"
	"go.uber.org/zap"
)

// MinSignalScore is the floor below which no signal is emitted.
const MinSignalScore = 40.0

// Recommendation tiers, assigned by total score.
const (
	StrongBuy = "STRONG BUY"
	Buy       = "BUY"
	Watch     = "WATCH"
)

// Urgency tags.
const (
	UrgencyImmediate = "IMMEDIATE"
	UrgencyToday     = "TODAY"
	UrgencyThisWeek  = "THIS_WEEK"
)

// Suggested position sizes.
const (
	SizeFull    = "FULL"
	SizeHalf    = "HALF"
	SizeQuarter = "QUARTER"
)

// Signal is a scored buy recommendation derived from one trade plus the
// trade history context at scoring time.
type Signal struct {
	Trade           disclosure.Trade
	TotalScore      float64
	PoliticianScore float64
	TradeScore      float64
	ClusterScore    float64
	Recommendation  string
	Urgency         string
	SuggestedSize   string
	Reasons         []string
}

// Engine combines the three scorers into a ranked, deduplicated,
// filtered signal list. It holds no mutable state across calls beyond
// the injected read-only reference tables.
type Engine struct {
	logger    *zap.Logger
	polScorer *PoliticianScorer
	trScorer  *TradeScorer
	clusters  *ClusterDetector
}

func NewEngine(logger *zap.Logger, ref ReferenceData, clusterWindowDays int) *Engine {
	return &Engine{
		logger:    logger,
		polScorer: NewPoliticianScorer(ref),
		trScorer:  NewTradeScorer(ref),
		clusters:  NewClusterDetector(clusterWindowDays),
	}
}

// Generate scores a batch of trades against the full history and returns
// the emitted signals sorted by total score, best first. Clusters are
// detected over the full history, not just the batch. Within one pass at
// most one signal is emitted per symbol and transaction date.
func (e *Engine) Generate(batch, history []disclosure.Trade) []Signal {
	clusters := e.clusters.Detect(history)

	var signals []Signal
	seen := make(map[string]struct{})

	for i := range batch {
		trade := batch[i]
		if !trade.IsPurchase() {
			continue
		}

		dedupKey := fmt.Sprintf("%s_%s", trade.Symbol, trade.TransactionDate.Format("2006-01-02"))
		if _, dup := seen[dedupKey]; dup {
			continue
		}
		seen[dedupKey] = struct{}{}

		polPts, polReasons := e.polScorer.Score(trade.Politician, history)
		tradePts, tradeReasons := e.trScorer.Score(&trade)
		clusterPts, clusterReasons := e.clusters.ScoreSymbol(trade.Symbol, clusters)

		// Each sub-score is capped independently; the sum cannot exceed 100.
		total := polPts + tradePts + clusterPts

		reasons := append(tradeReasons, clusterReasons...)
		if polPts > 0 {
			reasons = append(polReasons, reasons...)
		}

		if total < MinSignalScore {
			continue
		}

		rec, urgency, size := classify(total)
		signals = append(signals, Signal{
			Trade:           trade,
			TotalScore:      round1(total),
			PoliticianScore: round1(polPts),
			TradeScore:      round1(tradePts),
			ClusterScore:    round1(clusterPts),
			Recommendation:  rec,
			Urgency:         urgency,
			SuggestedSize:   size,
			Reasons:         reasons,
		})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].TotalScore > signals[j].TotalScore
	})

	e.logger.Info("Generated signals",
		zap.Int("signals", len(signals)),
		zap.Int("trades", len(batch)),
	)
	return signals
}

// classify assigns tier, urgency and size by total score, evaluated
// high to low. Scores below MinSignalScore never reach here.
func classify(total float64) (rec, urgency, size string) {
	switch {
	case total >= 80:
		return StrongBuy, UrgencyImmediate, SizeFull
	case total >= 65:
		return Buy, UrgencyToday, SizeHalf
	default:
		return Watch, UrgencyThisWeek, SizeQuarter
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
