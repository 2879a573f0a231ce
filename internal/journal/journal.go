package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"congress-trade-bot-go/internal/scoring"
	"congress-trade-bot-go/internal/trading"
)

// Journal writes the per-run signal log and the append-only execution
// log as JSON files, for downstream status reporting.
type Journal struct {
	dir string
}

func New(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal dir: %w", err)
	}
	return &Journal{dir: dir}, nil
}

type signalEntry struct {
	Symbol          string   `json:"symbol"`
	Politician      string   `json:"politician"`
	Score           float64  `json:"score"`
	Recommendation  string   `json:"recommendation"`
	Urgency         string   `json:"urgency"`
	TransactionDate string   `json:"transaction_date"`
	DisclosureDate  string   `json:"disclosure_date"`
	DelayDays       int      `json:"delay_days"`
	Amount          int64    `json:"amount"`
	IsOption        bool     `json:"is_option"`
	Committee       string   `json:"committee"`
	Reasons         []string `json:"reasons"`
}

// SaveSignals writes one timestamped JSON array for the run and returns
// the file path.
func (j *Journal) SaveSignals(signals []scoring.Signal, at time.Time) (string, error) {
	entries := make([]signalEntry, 0, len(signals))
	for i := range signals {
		s := &signals[i]
		entries = append(entries, signalEntry{
			Symbol:          s.Trade.Symbol,
			Politician:      s.Trade.Politician,
			Score:           s.TotalScore,
			Recommendation:  s.Recommendation,
			Urgency:         s.Urgency,
			TransactionDate: s.Trade.TransactionDate.Format("2006-01-02"),
			DisclosureDate:  s.Trade.DisclosureDate.Format("2006-01-02"),
			DelayDays:       s.Trade.FilingDelayDays,
			Amount:          s.Trade.AvgAmount(),
			IsOption:        s.Trade.IsOption,
			Committee:       s.Trade.Committee,
			Reasons:         s.Reasons,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode signals: %w", err)
	}
	path := filepath.Join(j.dir, "signals_"+at.Format("20060102_1504")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write signal log: %w", err)
	}
	return path, nil
}

type executionEntry struct {
	Timestamp      string   `json:"timestamp"`
	Symbol         string   `json:"symbol"`
	Politician     string   `json:"politician"`
	Score          float64  `json:"score"`
	Recommendation string   `json:"recommendation"`
	Shares         int      `json:"shares"`
	EntryPrice     float64  `json:"entry_price"`
	StopLoss       float64  `json:"stop_loss"`
	TakeProfit     float64  `json:"take_profit"`
	Reasons        []string `json:"reasons"`
}

// AppendExecution appends one JSON line to executed_trades.jsonl.
func (j *Journal) AppendExecution(sig *scoring.Signal, pos *trading.Position) error {
	entry := executionEntry{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Symbol:         pos.Symbol,
		Politician:     pos.Politician,
		Score:          sig.TotalScore,
		Recommendation: sig.Recommendation,
		Shares:         pos.Shares,
		EntryPrice:     pos.EntryPrice,
		StopLoss:       pos.StopLoss,
		TakeProfit:     pos.TakeProfit,
		Reasons:        sig.Reasons,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode execution: %w", err)
	}

	path := filepath.Join(j.dir, "executed_trades.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open execution log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write execution log: %w", err)
	}
	return nil
}
