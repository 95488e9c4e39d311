package stats

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// StatsCollector holds the counters for one filter run
type StatsCollector struct {
	StartTime       time.Time
	LinesRead       uint64
	LinesEmitted    uint64
	LinesSuppressed uint64
	RuleMatches     uint64
	LastUpdate      time.Time
}

// NewStatsCollector creates a new stats collector
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		StartTime:  time.Now(),
		LastUpdate: time.Now(),
	}
}

// Update updates the stats with new values
func (s *StatsCollector) Update(read, emitted, suppressed, matches uint64) {
	atomic.StoreUint64(&s.LinesRead, read)
	atomic.StoreUint64(&s.LinesEmitted, emitted)
	atomic.StoreUint64(&s.LinesSuppressed, suppressed)
	atomic.StoreUint64(&s.RuleMatches, matches)
	s.LastUpdate = time.Now()
}

// GetStats returns current statistics
func (s *StatsCollector) GetStats() map[string]interface{} {
	uptime := time.Since(s.StartTime)
	return map[string]interface{}{
		"uptime":           uptime.String(),
		"lines_read":       atomic.LoadUint64(&s.LinesRead),
		"lines_emitted":    atomic.LoadUint64(&s.LinesEmitted),
		"lines_suppressed": atomic.LoadUint64(&s.LinesSuppressed),
		"rule_matches":     atomic.LoadUint64(&s.RuleMatches),
		"last_update":      s.LastUpdate,
	}
}

// GetStatsJSON returns stats as JSON
func (s *StatsCollector) GetStatsJSON() ([]byte, error) {
	return json.Marshal(s.GetStats())
}

// CalculateRate calculates lines read per second
func (s *StatsCollector) CalculateRate() float64 {
	uptime := time.Since(s.StartTime).Seconds()
	if uptime <= 0 {
		return 0
	}
	return float64(atomic.LoadUint64(&s.LinesRead)) / uptime
}
