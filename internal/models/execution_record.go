package models

import "gorm.io/gorm"

// ExecutionRecord is one executed order, paper or live.
type ExecutionRecord struct {
	gorm.Model
	Symbol         string `gorm:"index"`
	Politician     string
	Score          float64
	Recommendation string
	Shares         int
	EntryPrice     float64
	StopLoss       float64
	TakeProfit     float64
	OrderID        string
	Mode           string // "paper" or "live"
}
