package models

import (
	"time"

	"gorm.io/gorm"
)

// ClosedPosition records the final state of a position after its exit.
type ClosedPosition struct {
	gorm.Model
	Symbol     string `gorm:"index"`
	Shares     int
	EntryPrice float64
	ExitPrice  float64
	PnL        float64
	ExitReason string // "stop_loss" or "take_profit"
	Politician string
	Score      float64
	OpenedAt   time.Time
	ClosedAt   time.Time
}
