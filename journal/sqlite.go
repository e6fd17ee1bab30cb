package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO simulation_runs
		(run_id, created, state, fail_reason, symbol, shares, entry_price, current_price,
		 strategy_type, method, horizon_periods, path_count, params)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.State, r.FailReason, r.Symbol, r.Shares, r.EntryPrice,
		r.CurrentPrice, r.StrategyType, r.Method, r.HorizonPeriods, r.PathCount,
		string(r.Params),
	)
	return err
}

func (j *SQLite) RecordMetrics(m MetricsRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO risk_metrics
		(run_id, hedged, horizon_periods, var_95, var_99, es_95, es_99,
		 mean_pnl, volatility, annualized_volatility, beta, sharpe, max_drawdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.Hedged, m.HorizonPeriods, m.VaR95, m.VaR99, m.ES95, m.ES99,
		m.MeanPnL, m.Volatility, m.AnnualizedVolatility, m.Beta, m.Sharpe, m.MaxDrawdown,
	)
	return err
}

// RecordSamples inserts all sample rows for a run in one transaction, so a
// run's sample set is either fully persisted or not at all.
func (j *SQLite) RecordSamples(runID string, rows []OutcomeRow) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO simulation_samples (run_id, idx, terminal_price, portfolio_pnl, hedged_pnl)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(runID, row.Index, row.TerminalPrice, row.PortfolioPnL, row.HedgedPnL); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert sample %d: %w", row.Index, err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
