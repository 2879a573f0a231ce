package disclosure

import (
	"strings"
	"time"
)

// Statutory filing deadlines in days. Disclosures filed more than
// LateFilingDays after the transaction breach the STOCK Act deadline.
const (
	LateFilingDays             = 45
	SuspiciouslyLateFilingDays = 90
)

// Chamber identifies which chamber of Congress a trade was disclosed by.
type Chamber string

const (
	ChamberHouse  Chamber = "house"
	ChamberSenate Chamber = "senate"
)

// Trade is one disclosed securities transaction by a legislator.
// Trades are immutable once parsed; the ID is derived deterministically
// from the disclosure's identifying fields, so re-fetching the same
// filing yields the same ID.
type Trade struct {
	ID              string
	Politician      string
	Chamber         Chamber
	Party           string
	State           string
	Symbol          string
	AssetName       string
	TradeType       string
	AmountLow       int64
	AmountHigh      int64
	TransactionDate time.Time
	DisclosureDate  time.Time
	FilingDelayDays int
	IsOption        bool
	Committee       string
	Notes           string
}

// AvgAmount is the midpoint of the disclosed amount bracket, floored.
func (t *Trade) AvgAmount() int64 {
	return (t.AmountLow + t.AmountHigh) / 2
}

// IsPurchase reports whether the trade type indicates a buy. Sales and
// exchanges never produce buy signals.
func (t *Trade) IsPurchase() bool {
	return strings.Contains(strings.ToLower(t.TradeType), "purchase")
}

// IsLate reports whether the filing breached the 45-day deadline.
func (t *Trade) IsLate() bool {
	return t.FilingDelayDays > LateFilingDays
}

// IsSuspiciouslyLate reports whether the filing was more than 90 days
// behind the transaction.
func (t *Trade) IsSuspiciouslyLate() bool {
	return t.FilingDelayDays > SuspiciouslyLateFilingDays
}
