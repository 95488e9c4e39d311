package rule

import (
	"fmt"
	"regexp"

	"grcat/internal/colour"
)

// CountMode controls how much of a line a rule colours.
type CountMode int

const (
	// More colours every match of the pattern.
	More CountMode = iota
	// Once colours only the first match.
	Once
	// Block colours the whole line with the primary colour.
	Block
	// Unblock wraps the whole line in the reset sequence.
	Unblock
)

var countModeNames = map[string]CountMode{
	"more":    More,
	"once":    Once,
	"block":   Block,
	"unblock": Unblock,
}

// ParseCountMode maps a count value to its mode. Unknown values report false
// and map to More.
func ParseCountMode(s string) (CountMode, bool) {
	mode, ok := countModeNames[s]
	if !ok {
		return More, false
	}
	return mode, true
}

func (m CountMode) String() string {
	switch m {
	case Once:
		return "once"
	case Block:
		return "block"
	case Unblock:
		return "unblock"
	default:
		return "more"
	}
}

// ReplaceMode selects how matched spans are spliced back into the line.
type ReplaceMode int

const (
	// ReplacePositional splices each wrapped match at its own offset.
	ReplacePositional ReplaceMode = iota
	// ReplaceFirstOccurrence replaces the first textual occurrence of each
	// matched substring, which re-colours repeated substrings at the start of
	// the line. Matches the output of the classic grcat.
	ReplaceFirstOccurrence
)

// ParseReplaceMode maps a settings value to a ReplaceMode.
func ParseReplaceMode(s string) (ReplaceMode, error) {
	switch s {
	case "", "positional":
		return ReplacePositional, nil
	case "first-occurrence":
		return ReplaceFirstOccurrence, nil
	default:
		return ReplacePositional, fmt.Errorf("unknown replace mode: %s", s)
	}
}

// Rule is one block of a rule file
type Rule struct {
	Pattern string        // Regular expression, empty for whole-line rules
	Colours []colour.Code // Resolved colours, index 0 is primary
	Count   CountMode     // Defaults to More
	Command string        // Stored only
	Skip    string        // Truthy value suppresses every line
	Replace string        // Stored only
	Concat  string        // Stored only
	Line    int           // Rule file line the block starts on, 0 if unknown

	re *regexp.Regexp
}

// NewRule returns a rule holding the defaults for absent keys.
func NewRule() Rule {
	return Rule{
		Colours: []colour.Code{""},
		Count:   More,
	}
}

// Skips reports whether the rule suppresses all input.
func (r *Rule) Skips() bool {
	switch r.Skip {
	case "yes", "1", "true":
		return true
	}
	return false
}

// Unchanged reports whether the colours request that matches be left alone.
func (r *Rule) Unchanged() bool {
	for _, c := range r.Colours {
		if c == colour.Unchanged {
			return true
		}
	}
	return false
}

// Primary returns the first colour, or the empty code when there is none.
func (r *Rule) Primary() colour.Code {
	if len(r.Colours) == 0 {
		return ""
	}
	return r.Colours[0]
}

// Regexp returns the compiled pattern, nil until the rule joins a RuleSet or
// when the pattern is empty.
func (r *Rule) Regexp() *regexp.Regexp {
	return r.re
}

// RuleSet is the ordered, immutable list of rules applied to every line.
type RuleSet struct {
	rules   []Rule
	skip    bool
	replace ReplaceMode
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns a copy of the rules in application order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Skip reports whether any rule suppresses all input.
func (rs *RuleSet) Skip() bool {
	return rs.skip
}

// RuleValidationError represents a rule validation error
type RuleValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *RuleValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseWarning is a recoverable problem found while parsing a rule file.
type ParseWarning struct {
	Line    int
	Text    string
	Message string
}

func (w ParseWarning) Error() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Message, w.Text)
}
