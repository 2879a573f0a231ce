package scoring

import (
	"time"

	"congress-trade-bot-go/internal/disclosure"
)

// testRef builds a small synthetic reference table so tests do not
// depend on the curated production data.
func testRef() ReferenceData {
	return ReferenceData{
		Profiles: map[string]PoliticianProfile{
			"Jane Maxwell": {HistoricalAlpha: 0.90, Committee: "Armed Services"},
			"Perfect Pete": {HistoricalAlpha: 1.0},
		},
		CommitteeSectors: map[string][]string{
			"Armed Services": {"LMT", "RTX"},
		},
	}
}

func purchase(politician, symbol string, amount int64, txDate time.Time) disclosure.Trade {
	return disclosure.Trade{
		ID:              politician + "-" + symbol + "-" + txDate.Format("20060102"),
		Politician:      politician,
		Chamber:         disclosure.ChamberHouse,
		Symbol:          symbol,
		TradeType:       "Purchase",
		AmountLow:       amount,
		AmountHigh:      amount,
		TransactionDate: txDate,
		DisclosureDate:  txDate,
	}
}

func sale(politician, symbol string, amount int64, txDate time.Time) disclosure.Trade {
	t := purchase(politician, symbol, amount, txDate)
	t.TradeType = "Sale (Full)"
	return t
}
