package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns a single run record by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var params string

	row := j.db.QueryRow(`
		SELECT run_id, created, state, fail_reason, symbol, shares, entry_price, current_price,
		       strategy_type, method, horizon_periods, path_count, params
		FROM simulation_runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID,
		&rec.Created,
		&rec.State,
		&rec.FailReason,
		&rec.Symbol,
		&rec.Shares,
		&rec.EntryPrice,
		&rec.CurrentPrice,
		&rec.StrategyType,
		&rec.Method,
		&rec.HorizonPeriods,
		&rec.PathCount,
		&params,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	rec.Params = []byte(params)
	return rec, nil
}

// ListRuns returns the most recent runs, newest first.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(`
		SELECT run_id, created, state, fail_reason, symbol, shares, entry_price, current_price,
		       strategy_type, method, horizon_periods, path_count, params
		FROM simulation_runs
		ORDER BY created DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var params string
		if err := rows.Scan(
			&rec.RunID,
			&rec.Created,
			&rec.State,
			&rec.FailReason,
			&rec.Symbol,
			&rec.Shares,
			&rec.EntryPrice,
			&rec.CurrentPrice,
			&rec.StrategyType,
			&rec.Method,
			&rec.HorizonPeriods,
			&rec.PathCount,
			&params,
		); err != nil {
			return nil, err
		}
		rec.Params = []byte(params)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MetricsForRun returns the metric bundles recorded for a run, unhedged
// first.
func (j *SQLite) MetricsForRun(runID string) ([]MetricsRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, hedged, horizon_periods, var_95, var_99, es_95, es_99,
		       mean_pnl, volatility, annualized_volatility, beta, sharpe, max_drawdown
		FROM risk_metrics
		WHERE run_id = ?
		ORDER BY hedged ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricsRecord
	for rows.Next() {
		var rec MetricsRecord
		var beta, sharpe sql.NullFloat64
		if err := rows.Scan(
			&rec.RunID,
			&rec.Hedged,
			&rec.HorizonPeriods,
			&rec.VaR95,
			&rec.VaR99,
			&rec.ES95,
			&rec.ES99,
			&rec.MeanPnL,
			&rec.Volatility,
			&rec.AnnualizedVolatility,
			&beta,
			&sharpe,
			&rec.MaxDrawdown,
		); err != nil {
			return nil, err
		}
		if beta.Valid {
			rec.Beta = &beta.Float64
		}
		if sharpe.Valid {
			rec.Sharpe = &sharpe.Float64
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SamplesForRun returns the persisted outcome samples in draw order.
func (j *SQLite) SamplesForRun(runID string) ([]OutcomeRow, error) {
	rows, err := j.db.Query(`
		SELECT idx, terminal_price, portfolio_pnl, hedged_pnl
		FROM simulation_samples
		WHERE run_id = ?
		ORDER BY idx ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutcomeRow
	for rows.Next() {
		var r OutcomeRow
		if err := rows.Scan(&r.Index, &r.TerminalPrice, &r.PortfolioPnL, &r.HedgedPnL); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
