package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun() RunRecord {
	return RunRecord{
		RunID:          "01TESTRUN",
		Created:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		State:          "complete",
		Symbol:         "ACME",
		Shares:         100,
		EntryPrice:     95,
		CurrentPrice:   100,
		StrategyType:   "protective_put",
		Method:         "historical_bootstrap",
		HorizonPeriods: 5,
		PathCount:      1000,
		Params:         []byte(`{"strategy_type":"protective_put"}`),
	}
}

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "hedger.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSQLiteRunRoundTrip(t *testing.T) {
	j := openTestDB(t)

	require.NoError(t, j.RecordRun(testRun()))

	got, err := j.GetRun("01TESTRUN")
	require.NoError(t, err)
	assert.Equal(t, "ACME", got.Symbol)
	assert.Equal(t, "protective_put", got.StrategyType)
	assert.Equal(t, 1000, got.PathCount)
	assert.JSONEq(t, `{"strategy_type":"protective_put"}`, string(got.Params))

	_, err = j.GetRun("missing")
	assert.Error(t, err)
}

func TestSQLiteMetricsNullable(t *testing.T) {
	j := openTestDB(t)
	require.NoError(t, j.RecordRun(testRun()))

	beta := 1.25
	require.NoError(t, j.RecordMetrics(MetricsRecord{
		RunID: "01TESTRUN", Hedged: false, HorizonPeriods: 5,
		VaR95: 450, VaR99: 610, ES95: 520, ES99: 700,
		MeanPnL: 12.5, Volatility: 0.04, AnnualizedVolatility: 0.28,
		Beta: &beta, MaxDrawdown: 0.2,
	}))
	// Hedged bundle with undefined beta and sharpe: persisted as NULL.
	require.NoError(t, j.RecordMetrics(MetricsRecord{
		RunID: "01TESTRUN", Hedged: true, HorizonPeriods: 5,
		VaR95: 210, VaR99: 220, ES95: 215, ES99: 225,
		MeanPnL: 4.0, Volatility: 0.02, AnnualizedVolatility: 0.14,
		MaxDrawdown: 0.08,
	}))

	got, err := j.MetricsForRun("01TESTRUN")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.False(t, got[0].Hedged)
	require.NotNil(t, got[0].Beta)
	assert.InDelta(t, 1.25, *got[0].Beta, 1e-12)

	assert.True(t, got[1].Hedged)
	assert.Nil(t, got[1].Beta)
	assert.Nil(t, got[1].Sharpe)
	assert.InDelta(t, 210.0, got[1].VaR95, 1e-12)
}

func TestSQLiteSamples(t *testing.T) {
	j := openTestDB(t)
	require.NoError(t, j.RecordRun(testRun()))

	rows := []OutcomeRow{
		{Index: 0, TerminalPrice: 104, PortfolioPnL: 900, HedgedPnL: 700},
		{Index: 1, TerminalPrice: 92, PortfolioPnL: -300, HedgedPnL: -400},
	}
	require.NoError(t, j.RecordSamples("01TESTRUN", rows))

	got, err := j.SamplesForRun("01TESTRUN")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestSQLiteListRuns(t *testing.T) {
	j := openTestDB(t)

	first := testRun()
	second := testRun()
	second.RunID = "02TESTRUN"
	second.Created = first.Created.Add(time.Hour)

	require.NoError(t, j.RecordRun(first))
	require.NoError(t, j.RecordRun(second))

	got, err := j.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "02TESTRUN", got[0].RunID) // newest first
}
