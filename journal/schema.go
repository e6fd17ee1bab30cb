// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS simulation_runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	state TEXT NOT NULL,
	fail_reason TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL,
	shares REAL NOT NULL,
	entry_price REAL NOT NULL,
	current_price REAL NOT NULL,
	strategy_type TEXT NOT NULL,
	method TEXT NOT NULL,
	horizon_periods INTEGER NOT NULL,
	path_count INTEGER NOT NULL,
	params TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS risk_metrics (
	run_id TEXT NOT NULL,
	hedged INTEGER NOT NULL,
	horizon_periods INTEGER NOT NULL,
	var_95 REAL NOT NULL,
	var_99 REAL NOT NULL,
	es_95 REAL NOT NULL,
	es_99 REAL NOT NULL,
	mean_pnl REAL NOT NULL,
	volatility REAL NOT NULL,
	annualized_volatility REAL NOT NULL,
	beta REAL,
	sharpe REAL,
	max_drawdown REAL NOT NULL,
	PRIMARY KEY (run_id, hedged)
);

CREATE TABLE IF NOT EXISTS simulation_samples (
	run_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	terminal_price REAL NOT NULL,
	portfolio_pnl REAL NOT NULL,
	hedged_pnl REAL NOT NULL,
	PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON simulation_runs(created);
`
