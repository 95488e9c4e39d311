package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Line results
const (
	ResultEmitted    = "emitted"
	ResultSuppressed = "suppressed"
)

// Metrics holds the counters for one filter run
type Metrics struct {
	linesTotal  *prometheus.CounterVec
	ruleMatches prometheus.Counter
	rulesLoaded prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		linesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grcat_lines_total",
			Help: "Input lines processed, by result",
		}, []string{"result"}),
		ruleMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grcat_rule_matches_total",
			Help: "Spans coloured by pattern rules",
		}),
		rulesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "grcat_rules_loaded",
			Help: "Rules in the active rule set",
		}),
	}

	for _, c := range []prometheus.Collector{m.linesTotal, m.ruleMatches, m.rulesLoaded} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return m, nil
}

// IncLinesTotal counts one line with the given result
func (m *Metrics) IncLinesTotal(result string) {
	m.linesTotal.WithLabelValues(result).Inc()
}

// AddRuleMatches adds n coloured spans
func (m *Metrics) AddRuleMatches(n int) {
	if n > 0 {
		m.ruleMatches.Add(float64(n))
	}
}

// SetRulesLoaded records the size of the rule set
func (m *Metrics) SetRulesLoaded(n int) {
	m.rulesLoaded.Set(float64(n))
}

// WriteTextfile writes everything gathered by g to path in the text
// exposition format, atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
