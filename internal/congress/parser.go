package congress

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"congress-trade-bot-go/internal/disclosure"
)

// rawTransaction is one item from either stock-watcher feed. The two
// feeds use slightly different field names; the parser tries both.
type rawTransaction struct {
	Ticker           string `json:"ticker"`
	AssetDescription string `json:"asset_description"`
	AssetType        string `json:"asset_type"`
	Type             string `json:"type"`
	TransactionType  string `json:"transaction_type"`
	TransactionDate  string `json:"transaction_date"`
	DisclosureDate   string `json:"disclosure_date"`
	FiledAtDate      string `json:"filed_at_date"`
	Amount           string `json:"amount"`
	AssetValueRange  string `json:"asset_value_range"`
	Representative   string `json:"representative"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Party            string `json:"party"`
	State            string `json:"state"`
	SenatorState     string `json:"senator_state"`
	Comment          string `json:"comment"`
}

// amountRange maps a disclosed bracket label to its dollar bounds.
type amountRange struct {
	label string
	low   int64
	high  int64
}

var amountRanges = []amountRange{
	{"$1,001 - $15,000", 1001, 15000},
	{"$15,001 - $50,000", 15001, 50000},
	{"$50,001 - $100,000", 50001, 100000},
	{"$100,001 - $250,000", 100001, 250000},
	{"$250,001 - $500,000", 250001, 500000},
	{"$500,001 - $1,000,000", 500001, 1000000},
	{"$1,000,001 - $5,000,000", 1000001, 5000000},
	{"$5,000,001 - $25,000,000", 5000001, 25000000},
	{"Over $25,000,000", 25000001, 50000000},
}

var dateFormats = []string{"2006-01-02", "01/02/2006", "02/01/2006", "2006/01/02"}

// Parser normalizes raw feed items into disclosure.Trade records.
type Parser struct {
	committees map[string]string
}

func NewParser(committees map[string]string) *Parser {
	return &Parser{committees: committees}
}

// Parse converts a raw batch into trades, dropping malformed items and
// trades transacted before the cutoff. One bad record never aborts a batch.
func (p *Parser) Parse(raw []rawTransaction, chamber disclosure.Chamber, cutoff time.Time) []disclosure.Trade {
	trades := make([]disclosure.Trade, 0, len(raw))
	for i := range raw {
		t, ok := p.parseItem(&raw[i], chamber)
		if !ok || t.TransactionDate.Before(cutoff) {
			continue
		}
		trades = append(trades, t)
	}
	return trades
}

func (p *Parser) parseItem(item *rawTransaction, chamber disclosure.Chamber) (disclosure.Trade, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(item.Ticker))
	if !validSymbol(symbol) {
		return disclosure.Trade{}, false
	}

	txStr := strings.TrimSpace(item.TransactionDate)
	discStr := strings.TrimSpace(item.DisclosureDate)
	if discStr == "" {
		discStr = strings.TrimSpace(item.FiledAtDate)
	}
	txDate, err := parseDate(txStr)
	if err != nil {
		return disclosure.Trade{}, false
	}
	discDate, err := parseDate(discStr)
	if err != nil {
		return disclosure.Trade{}, false
	}

	// Delay is clamped: out-of-order dates count as filed on time.
	delay := int(discDate.Sub(txDate).Hours() / 24)
	if delay < 0 {
		delay = 0
	}

	tradeType := strings.TrimSpace(item.Type)
	if tradeType == "" {
		tradeType = strings.TrimSpace(item.TransactionType)
	}
	if tradeType == "" {
		return disclosure.Trade{}, false
	}

	amountStr := item.Amount
	if amountStr == "" {
		amountStr = item.AssetValueRange
	}
	low, high := parseAmount(amountStr)

	assetType := strings.ToLower(item.AssetType)
	lowerType := strings.ToLower(tradeType)
	isOption := strings.Contains(assetType, "option") ||
		strings.Contains(lowerType, "call") ||
		strings.Contains(lowerType, "put")

	var name, state string
	if chamber == disclosure.ChamberHouse {
		name = strings.TrimSpace(item.Representative)
		state = item.State
	} else {
		name = strings.TrimSpace(item.FirstName + " " + item.LastName)
		state = item.SenatorState
		if state == "" {
			state = item.State
		}
	}
	if name == "" {
		return disclosure.Trade{}, false
	}

	assetName := item.AssetDescription
	if assetName == "" {
		assetName = symbol
	}

	return disclosure.Trade{
		ID:              tradeID(name, symbol, txStr, tradeType),
		Politician:      name,
		Chamber:         chamber,
		Party:           item.Party,
		State:           state,
		Symbol:          symbol,
		AssetName:       assetName,
		TradeType:       tradeType,
		AmountLow:       low,
		AmountHigh:      high,
		TransactionDate: txDate,
		DisclosureDate:  discDate,
		FilingDelayDays: delay,
		IsOption:        isOption,
		Committee:       p.lookupCommittee(name),
		Notes:           item.Comment,
	}, true
}

// lookupCommittee matches a politician name against the curated
// committee table, tolerating honorifics around the known name.
func (p *Parser) lookupCommittee(name string) string {
	lower := strings.ToLower(name)
	for known, committee := range p.committees {
		if strings.Contains(lower, strings.ToLower(known)) {
			return committee
		}
	}
	return ""
}

// validSymbol accepts 1-5 uppercase alphabetic characters. Tickers with
// digits (bonds, crypto placeholders) and sentinel values are dropped.
func validSymbol(s string) bool {
	if len(s) == 0 || len(s) > 5 || s == "N/A" || s == "--" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// parseAmount maps a disclosed bracket string to its bounds. Unmatched
// strings fall back to a direct integer parse, then to the smallest bracket.
func parseAmount(s string) (int64, int64) {
	normalized := normalizeAmount(s)
	for _, r := range amountRanges {
		if strings.Contains(normalized, normalizeAmount(r.label)) {
			return r.low, r.high
		}
	}
	if v, err := strconv.ParseInt(normalized, 10, 64); err == nil {
		return v, v
	}
	return 1000, 15000
}

func normalizeAmount(s string) string {
	replacer := strings.NewReplacer("$", "", ",", "", " ", "")
	return replacer.Replace(strings.TrimSpace(s))
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

// tradeID derives a deterministic identity from the disclosure's
// identifying fields, so re-fetching the same filing yields the same ID.
func tradeID(politician, symbol, dateStr, tradeType string) string {
	sum := md5.Sum([]byte(politician + symbol + dateStr + tradeType))
	return hex.EncodeToString(sum[:])[:12]
}
