package models

import (
	"time"

	"gorm.io/gorm"
)

// DisclosedTrade persists one normalized congressional disclosure so a
// restarted bot does not re-signal trades it has already seen.
type DisclosedTrade struct {
	gorm.Model
	TradeID         string `gorm:"uniqueIndex"`
	Politician      string `gorm:"index"`
	Chamber         string
	Party           string
	State           string
	Symbol          string `gorm:"index"`
	AssetName       string
	TradeType       string
	AmountLow       int64
	AmountHigh      int64
	TransactionDate time.Time
	DisclosureDate  time.Time
	FilingDelayDays int
	IsOption        bool
	Committee       string
}
