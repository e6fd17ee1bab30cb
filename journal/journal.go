// Package journal persists finished simulation runs: one simulation_runs
// record per run, a risk_metrics record per hedge state, and the raw
// outcome samples. The engine never writes here itself; callers persist a
// completed run explicitly, so a failed run leaves nothing behind.
package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/sim"
)

// RunRecord mirrors the simulation_runs table. Params is the full run
// configuration as JSON, tagged by strategy type and sampler method, so a
// run can be re-executed or rendered without schema changes.
type RunRecord struct {
	RunID      string
	Created    time.Time
	State      string
	FailReason string

	Symbol       string
	Shares       float64
	EntryPrice   float64
	CurrentPrice float64

	StrategyType   string
	Method         string
	HorizonPeriods int
	PathCount      int

	Params []byte
}

// MetricsRecord mirrors the risk_metrics table, one row per (run, hedged)
// pair. Beta and Sharpe stay nil when undefined and persist as NULL.
type MetricsRecord struct {
	RunID          string
	Hedged         bool
	HorizonPeriods int

	VaR95 float64
	VaR99 float64
	ES95  float64
	ES99  float64

	MeanPnL              float64
	Volatility           float64
	AnnualizedVolatility float64
	Beta                 *float64
	Sharpe               *float64
	MaxDrawdown          float64
}

// OutcomeRow is one persisted simulation draw.
type OutcomeRow struct {
	Index         int
	TerminalPrice float64
	PortfolioPnL  float64
	HedgedPnL     float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordMetrics(MetricsRecord) error
	RecordSamples(runID string, rows []OutcomeRow) error
	Close() error
}

// FromRun flattens a completed run into its journal records. Only Complete
// runs are persistable.
func FromRun(run *sim.Run) (RunRecord, []MetricsRecord, []OutcomeRow, error) {
	if run.State != sim.StateComplete {
		return RunRecord{}, nil, nil, fmt.Errorf("journal: run %s is %s, only complete runs are persisted", run.ID, run.State)
	}

	params, err := json.Marshal(run.Config)
	if err != nil {
		return RunRecord{}, nil, nil, fmt.Errorf("journal: encode params: %w", err)
	}

	rec := RunRecord{
		RunID:          run.ID,
		Created:        run.Created,
		State:          string(run.State),
		Symbol:         run.Config.Holding.Symbol,
		Shares:         run.Config.Holding.Shares,
		EntryPrice:     run.Config.Holding.EntryPrice,
		CurrentPrice:   run.Config.CurrentPrice,
		StrategyType:   string(run.Config.Strategy.Type),
		Method:         string(run.Config.Sampler.Method),
		HorizonPeriods: run.Config.Sampler.HorizonPeriods,
		PathCount:      run.Config.Sampler.PathCount,
		Params:         params,
	}

	metrics := []MetricsRecord{
		metricsRecord(run.ID, run.Unhedged),
		metricsRecord(run.ID, run.Hedged),
	}

	rows := make([]OutcomeRow, len(run.Samples))
	for i, s := range run.Samples {
		rows[i] = OutcomeRow{
			Index:         i,
			TerminalPrice: s.TerminalPrice,
			PortfolioPnL:  s.PortfolioPnL,
			HedgedPnL:     s.HedgedPnL,
		}
	}
	return rec, metrics, rows, nil
}

func metricsRecord(runID string, m risk.Metrics) MetricsRecord {
	return MetricsRecord{
		RunID:                runID,
		Hedged:               m.Hedged,
		HorizonPeriods:       m.HorizonPeriods,
		VaR95:                m.VaR95,
		VaR99:                m.VaR99,
		ES95:                 m.ES95,
		ES99:                 m.ES99,
		MeanPnL:              m.MeanPnL,
		Volatility:           m.Volatility,
		AnnualizedVolatility: m.AnnualizedVolatility,
		Beta:                 m.Beta,
		Sharpe:               m.Sharpe,
		MaxDrawdown:          m.MaxDrawdown,
	}
}
