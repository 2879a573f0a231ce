package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"congress-trade-bot-go/internal/disclosure"
	"congress-trade-bot-go/internal/scoring"
	"congress-trade-bot-go/internal/trading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignal() scoring.Signal {
	return scoring.Signal{
		Trade: disclosure.Trade{
			Symbol:          "LMT",
			Politician:      "Jane Maxwell",
			AmountLow:       100_001,
			AmountHigh:      250_000,
			TransactionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			DisclosureDate:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			FilingDelayDays: 9,
			Committee:       "Armed Services",
		},
		TotalScore:     83.5,
		Recommendation: scoring.StrongBuy,
		Urgency:        scoring.UrgencyImmediate,
		Reasons:        []string{"mega trade: $175000"},
	}
}

func TestJournal_SaveSignals(t *testing.T) {
	j, err := New(t.TempDir())
	require.NoError(t, err)

	at := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	path, err := j.SaveSignals([]scoring.Signal{testSignal()}, at)

	require.NoError(t, err)
	assert.Equal(t, "signals_20250615_1430.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "LMT", entries[0]["symbol"])
	assert.Equal(t, 83.5, entries[0]["score"])
	assert.Equal(t, "STRONG BUY", entries[0]["recommendation"])
	assert.Equal(t, float64(175_000), entries[0]["amount"])
	assert.Equal(t, "2025-06-01", entries[0]["transaction_date"])
}

func TestJournal_AppendExecution(t *testing.T) {
	dir := t.TempDir()
	j, err := New(dir)
	require.NoError(t, err)

	sig := testSignal()
	pos := &trading.Position{
		Symbol:     "LMT",
		Politician: "Jane Maxwell",
		Shares:     200,
		EntryPrice: 50,
		StopLoss:   46,
		TakeProfit: 60,
	}

	require.NoError(t, j.AppendExecution(&sig, pos))
	require.NoError(t, j.AppendExecution(&sig, pos))

	data, err := os.ReadFile(filepath.Join(dir, "executed_trades.jsonl"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "LMT", entry["symbol"])
	assert.Equal(t, float64(200), entry["shares"])
	assert.Equal(t, 46.0, entry["stop_loss"])
}
