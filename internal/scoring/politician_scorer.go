package scoring

import (
	"fmt"

	"congress-trade-bot-go/internal/disclosure"
)

const (
	MaxPoliticianScore = 40.0

	// A curated profile contributes alpha * profileAlphaWeight points.
	profileAlphaWeight = 35.0

	// Flat bonus once a politician has filed late more than
	// chronicLateThreshold times across the supplied history.
	chronicLateThreshold = 5
	chronicLatePoints    = 5.0
)

// PoliticianScorer scores a trade's author on track record and filing
// behavior. Politicians absent from the profile table can still accrue
// the chronic-late bonus.
type PoliticianScorer struct {
	ref ReferenceData
}

func NewPoliticianScorer(ref ReferenceData) *PoliticianScorer {
	return &PoliticianScorer{ref: ref}
}

// Score returns a score in [0, MaxPoliticianScore] plus reasons.
func (s *PoliticianScorer) Score(politician string, history []disclosure.Trade) (float64, []string) {
	var pts float64
	var reasons []string

	if profile, ok := s.ref.ProfileFor(politician); ok {
		pts += profile.HistoricalAlpha * profileAlphaWeight
		reasons = append(reasons, fmt.Sprintf("known profile: alpha=%.0f%%", profile.HistoricalAlpha*100))
	}

	lateCount := 0
	for i := range history {
		if history[i].Politician == politician && history[i].IsLate() {
			lateCount++
		}
	}
	if lateCount > chronicLateThreshold {
		pts += chronicLatePoints
		reasons = append(reasons, fmt.Sprintf("chronic late filer: %d late filings", lateCount))
	}

	if pts > MaxPoliticianScore {
		pts = MaxPoliticianScore
	}
	return pts, reasons
}
