package rule

import (
	"fmt"
	"os"

	"grcat/internal/logger"
)

// RulesLoader handles loading rule files from the filesystem
type RulesLoader struct {
	logger *logger.Logger
}

// NewRulesLoader creates a new rules loader
func NewRulesLoader(log *logger.Logger) *RulesLoader {
	return &RulesLoader{
		logger: log,
	}
}

// LoadFromFile parses the rule file at path and builds a rule set from it.
// Parse warnings are logged and otherwise ignored.
func (l *RulesLoader) LoadFromFile(path string, mode ReplaceMode) (*RuleSet, error) {
	l.logger.Debug("loading rule file", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule file: %w", err)
	}
	defer f.Close()

	rules, warnings, err := Parse(f)
	if err != nil {
		l.logger.Error("failed to read rule file",
			"path", path,
			"error", err)
		return nil, err
	}

	for _, w := range warnings {
		l.logger.Warn("ignoring rule file line",
			"path", path,
			"line", w.Line,
			"text", w.Text,
			"reason", w.Message)
	}

	rs, err := NewRuleSet(rules, mode)
	if err != nil {
		l.logger.Error("invalid rule file",
			"path", path,
			"error", err)
		return nil, fmt.Errorf("invalid rule file %s: %w", path, err)
	}

	l.logger.Info("rules loaded successfully",
		"path", path,
		"totalRules", rs.Len(),
		"warnings", len(warnings))

	return rs, nil
}
