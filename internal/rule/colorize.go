package rule

import (
	"strings"

	"grcat/internal/colour"
)

// Colorize runs line through every rule in order, each rule seeing the output
// of the previous one. It returns false when the line must be suppressed.
func (rs *RuleSet) Colorize(line string) (string, bool) {
	out, _, ok := rs.apply(line)
	return out, ok
}

// apply is Colorize that also counts the spans coloured by pattern rules.
func (rs *RuleSet) apply(line string) (string, int, bool) {
	if rs.skip {
		return "", 0, false
	}

	var previous colour.Code
	matched := 0

	for i := range rs.rules {
		rule := &rs.rules[i]

		switch rule.Count {
		case Block:
			if rule.Unchanged() {
				continue
			}
			code := rule.Primary()
			if code == colour.Previous {
				code = previous
			}
			line = colour.Wrap(line, code)
			previous = code
		case Unblock:
			line = colour.Wrap(line, colour.Reset)
			previous = colour.Reset
		default:
			if rule.re == nil || rule.Unchanged() {
				continue
			}
			code := rule.Primary()
			if code == colour.Previous {
				code = previous
			}

			var n int
			if rs.replace == ReplaceFirstOccurrence {
				line, n = replaceFirstOccurrence(line, rule, code)
			} else {
				line, n = replacePositional(line, rule, code)
			}
			if n > 0 {
				matched += n
				previous = code
			}
		}
	}

	return line, matched, true
}

func matchLimit(rule *Rule) int {
	if rule.Count == Once {
		return 1
	}
	return -1
}

// replacePositional wraps each non-empty match at its own offset.
func replacePositional(line string, rule *Rule, code colour.Code) (string, int) {
	locs := rule.re.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return line, 0
	}

	buf := buffers.Get()
	defer buffers.Put(buf)

	limit := matchLimit(rule)
	last, n := 0, 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		if limit > 0 && n >= limit {
			break
		}
		buf.WriteString(line[last:loc[0]])
		buf.WriteString(string(code))
		buf.WriteString(line[loc[0]:loc[1]])
		buf.WriteString(string(colour.Reset))
		last = loc[1]
		n++
	}
	if n == 0 {
		return line, 0
	}
	buf.WriteString(line[last:])

	return buf.String(), n
}

// replaceFirstOccurrence wraps, for each match, the first occurrence of the
// matched text in the line as rewritten so far.
func replaceFirstOccurrence(line string, rule *Rule, code colour.Code) (string, int) {
	result := line
	limit := matchLimit(rule)
	n := 0

	for _, loc := range rule.re.FindAllStringIndex(line, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if limit > 0 && n >= limit {
			break
		}
		matched := line[loc[0]:loc[1]]
		result = strings.Replace(result, matched, colour.Wrap(matched, code), 1)
		n++
	}

	return result, n
}
