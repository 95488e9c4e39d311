package rule

import (
	"sync/atomic"

	"grcat/internal/logger"
	"grcat/internal/metrics"
)

// ProcessorConfig holds processor configuration
type ProcessorConfig struct {
	// Colour disables all rule output except skip when false.
	Colour bool
}

// Processor applies a rule set to lines and keeps counters
type Processor struct {
	rules   *RuleSet
	colour  bool
	logger  *logger.Logger
	metrics *metrics.Metrics
	stats   ProcessorStats
}

// ProcessorStats tracks processing metrics
type ProcessorStats struct {
	Processed  uint64
	Emitted    uint64
	Suppressed uint64
	Matches    uint64
}

// NewProcessor creates a new processor. m may be nil.
func NewProcessor(rules *RuleSet, cfg ProcessorConfig, log *logger.Logger, m *metrics.Metrics) *Processor {
	if log == nil {
		log = logger.NewNopLogger()
	}
	p := &Processor{
		rules:   rules,
		colour:  cfg.Colour,
		logger:  log,
		metrics: m,
	}

	if rules.Skip() {
		p.logger.Info("rule set skips all input")
	}
	if !cfg.Colour {
		p.logger.Debug("colour disabled, lines pass through")
	}

	return p
}

// Process colorizes one line. It returns false when the line is suppressed.
func (p *Processor) Process(line string) (string, bool) {
	atomic.AddUint64(&p.stats.Processed, 1)

	var (
		out     string
		matched int
		ok      bool
	)
	if p.colour {
		out, matched, ok = p.rules.apply(line)
	} else {
		out, ok = line, !p.rules.Skip()
	}

	if !ok {
		atomic.AddUint64(&p.stats.Suppressed, 1)
		if p.metrics != nil {
			p.metrics.IncLinesTotal(metrics.ResultSuppressed)
		}
		return "", false
	}

	atomic.AddUint64(&p.stats.Emitted, 1)
	atomic.AddUint64(&p.stats.Matches, uint64(matched))
	if p.metrics != nil {
		p.metrics.IncLinesTotal(metrics.ResultEmitted)
		p.metrics.AddRuleMatches(matched)
	}

	return out, true
}

// GetStats returns current processing statistics
func (p *Processor) GetStats() ProcessorStats {
	return ProcessorStats{
		Processed:  atomic.LoadUint64(&p.stats.Processed),
		Emitted:    atomic.LoadUint64(&p.stats.Emitted),
		Suppressed: atomic.LoadUint64(&p.stats.Suppressed),
		Matches:    atomic.LoadUint64(&p.stats.Matches),
	}
}
