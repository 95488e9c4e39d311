package rule

import (
	"fmt"
	"regexp"

	"grcat/internal/colour"
)

// NewRuleSet validates the rules, compiles every pattern and freezes the
// order. An invalid pattern is a configuration error.
func NewRuleSet(rules []Rule, mode ReplaceMode) (*RuleSet, error) {
	rs := &RuleSet{
		rules:   make([]Rule, len(rules)),
		replace: mode,
	}
	copy(rs.rules, rules)

	for i := range rs.rules {
		rule := &rs.rules[i]
		if err := validateRule(rule); err != nil {
			if ve, ok := err.(*RuleValidationError); ok {
				ve.Field = fmt.Sprintf("rules[%d].%s", i, ve.Field)
			}
			return nil, err
		}
		if rule.Skips() {
			rs.skip = true
		}
	}

	return rs, nil
}

// validateRule compiles the pattern and restores the default colour list
func validateRule(rule *Rule) error {
	if rule == nil {
		return &RuleValidationError{
			Field:   "rule",
			Message: "rule cannot be nil",
		}
	}

	if len(rule.Colours) == 0 {
		rule.Colours = []colour.Code{""}
	}

	if rule.Pattern != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return &RuleValidationError{
				Field:   "regexp",
				Message: fmt.Sprintf("invalid regex pattern %q: %s", rule.Pattern, err),
			}
		}
		rule.re = re
	}

	return nil
}
