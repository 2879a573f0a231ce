package models

import (
	"time"

	"gorm.io/gorm"
)

// SignalRecord is one emitted signal, kept for status reporting.
type SignalRecord struct {
	gorm.Model
	TradeID         string `gorm:"index"`
	Symbol          string `gorm:"index"`
	Politician      string
	TotalScore      float64
	PoliticianScore float64
	TradeScore      float64
	ClusterScore    float64
	Recommendation  string
	Urgency         string
	SuggestedSize   string
	Reasons         string // newline-joined
	TransactionDate time.Time
	DisclosureDate  time.Time
}
