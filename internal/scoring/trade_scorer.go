package scoring

import (
	"fmt"

	"congress-trade-bot-go/internal/disclosure"
)

// Trade scoring weights. Exactly one size tier applies per trade; the
// option, delay and committee bonuses stack on top, capped at MaxTradeScore.
const (
	MaxTradeScore = 40.0

	megaTradeAmount   = 1_000_000
	largeTradeAmount  = 250_000
	mediumTradeAmount = 50_000

	megaTradePoints   = 15.0
	largeTradePoints  = 10.0
	mediumTradePoints = 5.0
	smallTradePoints  = 2.0

	optionPoints           = 8.0
	suspiciouslyLatePoints = 7.0
	latePoints             = 4.0
	committeeMatchPoints   = 10.0
)

// TradeScorer scores a single trade's own attributes: size, instrument
// type, filing delay and committee overlap.
type TradeScorer struct {
	ref ReferenceData
}

func NewTradeScorer(ref ReferenceData) *TradeScorer {
	return &TradeScorer{ref: ref}
}

// Score returns a score in [0, MaxTradeScore] plus human-readable reasons.
// Sales score exactly zero; they are excluded from buy-signal scoring.
func (s *TradeScorer) Score(t *disclosure.Trade) (float64, []string) {
	if !t.IsPurchase() {
		return 0, []string{"sale excluded from buy-signal scoring"}
	}

	var pts float64
	var reasons []string

	avg := t.AvgAmount()
	switch {
	case avg >= megaTradeAmount:
		pts += megaTradePoints
		reasons = append(reasons, fmt.Sprintf("mega trade: $%d", avg))
	case avg >= largeTradeAmount:
		pts += largeTradePoints
		reasons = append(reasons, fmt.Sprintf("large trade: $%d", avg))
	case avg >= mediumTradeAmount:
		pts += mediumTradePoints
		reasons = append(reasons, fmt.Sprintf("medium trade: $%d", avg))
	default:
		pts += smallTradePoints
		reasons = append(reasons, fmt.Sprintf("small trade: $%d", avg))
	}

	if t.IsOption {
		pts += optionPoints
		reasons = append(reasons, "option bought, high conviction")
	}

	if t.IsSuspiciouslyLate() {
		pts += suspiciouslyLatePoints
		reasons = append(reasons, fmt.Sprintf("filed %d days late, well past deadline", t.FilingDelayDays))
	} else if t.IsLate() {
		pts += latePoints
		reasons = append(reasons, fmt.Sprintf("late filing: %d days", t.FilingDelayDays))
	}

	if t.Committee != "" && s.ref.CommitteeHolds(t.Committee, t.Symbol) {
		pts += committeeMatchPoints
		reasons = append(reasons, fmt.Sprintf("trade within own committee (%s)", t.Committee))
	}

	if pts > MaxTradeScore {
		pts = MaxTradeScore
	}
	return pts, reasons
}
