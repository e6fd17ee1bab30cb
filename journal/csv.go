package journal

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/hedger/payoff"
)

// CSV is a flat-file Journal for exporting runs where no database is
// wanted: one file each for runs, metrics, and samples.
type CSV struct {
	runs, metrics, samples *csv.Writer
	rf, mf, sf             *os.File
}

func NewCSV(runsPath, metricsPath, samplesPath string) (*CSV, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	mf, err := os.Create(metricsPath)
	if err != nil {
		rf.Close()
		return nil, err
	}
	sf, err := os.Create(samplesPath)
	if err != nil {
		rf.Close()
		mf.Close()
		return nil, err
	}

	j := &CSV{
		runs:    csv.NewWriter(rf),
		metrics: csv.NewWriter(mf),
		samples: csv.NewWriter(sf),
		rf:      rf, mf: mf, sf: sf,
	}

	if err := j.runs.Write([]string{"run_id", "created", "state", "symbol", "shares", "entry_price", "current_price", "strategy_type", "method", "horizon_periods", "path_count"}); err != nil {
		j.Close()
		return nil, err
	}
	if err := j.metrics.Write([]string{"run_id", "hedged", "horizon_periods", "var_95", "var_99", "es_95", "es_99", "mean_pnl", "volatility", "annualized_volatility", "beta", "sharpe", "max_drawdown"}); err != nil {
		j.Close()
		return nil, err
	}
	if err := j.samples.Write([]string{"run_id", "idx", "terminal_price", "portfolio_pnl", "hedged_pnl"}); err != nil {
		j.Close()
		return nil, err
	}
	j.flush()
	return j, nil
}

func (j *CSV) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.State,
		r.Symbol,
		f(r.Shares),
		f(r.EntryPrice),
		f(r.CurrentPrice),
		r.StrategyType,
		r.Method,
		strconv.Itoa(r.HorizonPeriods),
		strconv.Itoa(r.PathCount),
	})
	j.runs.Flush()
	if err != nil {
		return err
	}
	return j.runs.Error()
}

func (j *CSV) RecordMetrics(m MetricsRecord) error {
	err := j.metrics.Write([]string{
		m.RunID,
		strconv.FormatBool(m.Hedged),
		strconv.Itoa(m.HorizonPeriods),
		f(m.VaR95),
		f(m.VaR99),
		f(m.ES95),
		f(m.ES99),
		f(m.MeanPnL),
		f(m.Volatility),
		f(m.AnnualizedVolatility),
		optF(m.Beta),
		optF(m.Sharpe),
		f(m.MaxDrawdown),
	})
	j.metrics.Flush()
	if err != nil {
		return err
	}
	return j.metrics.Error()
}

func (j *CSV) RecordSamples(runID string, rows []OutcomeRow) error {
	for _, row := range rows {
		if err := j.samples.Write([]string{
			runID,
			strconv.Itoa(row.Index),
			f(row.TerminalPrice),
			f(row.PortfolioPnL),
			f(row.HedgedPnL),
		}); err != nil {
			return err
		}
	}
	j.samples.Flush()
	return j.samples.Error()
}

func (j *CSV) Close() error {
	j.flush()
	for _, c := range []io.Closer{j.rf, j.mf, j.sf} {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (j *CSV) flush() {
	j.runs.Flush()
	j.metrics.Flush()
	j.samples.Flush()
}

// WriteCurveCSV writes a payoff curve as price,payoff rows for charting.
func WriteCurveCSV(w io.Writer, curve []payoff.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"price", "payoff"}); err != nil {
		return err
	}
	for _, p := range curve {
		if err := cw.Write([]string{f(p.Price), f(p.Payoff)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// optF renders a nullable metric; undefined stays an empty cell.
func optF(x *float64) string {
	if x == nil {
		return ""
	}
	return f(*x)
}
