package journal

import (
	"fmt"
	"io"
	"time"
)

// PrintRunReport renders a run and its hedged/unhedged metric bundles as a
// plain-text comparison, the shape a UI's metrics table is built from.
// Either metrics record may be nil (e.g. a run queried before aggregation
// was journaled).
func PrintRunReport(w io.Writer, r RunRecord, unhedged, hedged *MetricsRecord) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Simulation Run")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Created:       %s\n", r.Created.Format(time.RFC3339))
	fmt.Fprintf(w, "State:         %s\n", r.State)
	if r.FailReason != "" {
		fmt.Fprintf(w, "Fail Reason:   %s\n", r.FailReason)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Position")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Symbol:        %s\n", r.Symbol)
	fmt.Fprintf(w, "Shares:        %.4f\n", r.Shares)
	fmt.Fprintf(w, "Entry Price:   %.2f\n", r.EntryPrice)
	fmt.Fprintf(w, "Current Price: %.2f\n", r.CurrentPrice)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Simulation")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Strategy:      %s\n", r.StrategyType)
	fmt.Fprintf(w, "Method:        %s\n", r.Method)
	fmt.Fprintf(w, "Horizon:       %d periods\n", r.HorizonPeriods)
	fmt.Fprintf(w, "Paths:         %d\n", r.PathCount)

	if unhedged == nil && hedged == nil {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk Metrics                Unhedged        Hedged")
	fmt.Fprintln(w, "--------------------------------------------------")
	row := func(label string, pick func(*MetricsRecord) string) {
		fmt.Fprintf(w, "%-22s %12s  %12s\n", label, pick(unhedged), pick(hedged))
	}

	row("VaR 95%:", metricCell(func(m *MetricsRecord) float64 { return m.VaR95 }))
	row("VaR 99%:", metricCell(func(m *MetricsRecord) float64 { return m.VaR99 }))
	row("ES 95%:", metricCell(func(m *MetricsRecord) float64 { return m.ES95 }))
	row("ES 99%:", metricCell(func(m *MetricsRecord) float64 { return m.ES99 }))
	row("Mean P/L:", metricCell(func(m *MetricsRecord) float64 { return m.MeanPnL }))
	row("Volatility:", metricCell(func(m *MetricsRecord) float64 { return m.Volatility }))
	row("Ann. Volatility:", metricCell(func(m *MetricsRecord) float64 { return m.AnnualizedVolatility }))
	row("Max Drawdown:", metricCell(func(m *MetricsRecord) float64 { return m.MaxDrawdown }))
	row("Beta:", optCell(func(m *MetricsRecord) *float64 { return m.Beta }))
	row("Sharpe:", optCell(func(m *MetricsRecord) *float64 { return m.Sharpe }))

	fmt.Fprintln(w)
}

func metricCell(get func(*MetricsRecord) float64) func(*MetricsRecord) string {
	return func(m *MetricsRecord) string {
		if m == nil {
			return "-"
		}
		return fmt.Sprintf("%.4f", get(m))
	}
}

func optCell(get func(*MetricsRecord) *float64) func(*MetricsRecord) string {
	return func(m *MetricsRecord) string {
		if m == nil {
			return "-"
		}
		v := get(m)
		if v == nil {
			return "n/a"
		}
		return fmt.Sprintf("%.4f", *v)
	}
}
