package rule

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"grcat/internal/metrics"
)

// newMockMetrics creates a new metrics instance for testing
func newMockMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()

	// Create a test registry that we can throw away
	reg := prometheus.NewRegistry()
	m, err := metrics.NewMetrics(reg)
	require.NoError(t, err)
	return m
}

// mustRuleSet parses text and builds a rule set, failing the test on error
func mustRuleSet(t *testing.T, text string, mode ReplaceMode) *RuleSet {
	t.Helper()

	rules, _ := ParseString(text)
	rs, err := NewRuleSet(rules, mode)
	require.NoError(t, err)
	return rs
}
