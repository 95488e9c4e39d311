package rule

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"grcat/internal/colour"
)

// Rule file keys
const (
	KeyRegexp  = "regexp"
	KeyColours = "colours"
	KeyCount   = "count"
	KeyCommand = "command"
	KeySkip    = "skip"
	KeyReplace = "replace"
	KeyConcat  = "concat"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineSeparator
	lineKeyValue
)

type keyValue struct {
	key   string
	value string
	line  int
	text  string
}

// Parse reads a rule file. Blocks are separated by any line whose first
// character is not an ASCII letter; the trailing block is always emitted, so
// the result holds at least one rule. Malformed lines come back as warnings.
// Only read failures are errors.
func Parse(r io.Reader) ([]Rule, []ParseWarning, error) {
	p := &parser{}
	reader := bufio.NewReader(r)
	lineNo := 0

	for {
		text, err := reader.ReadString('\n')
		if len(text) > 0 {
			lineNo++
			p.feed(lineNo, strings.TrimRight(text, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read rules: %w", err)
		}
	}

	p.flush()
	return p.rules, p.warnings, nil
}

// ParseString parses rule file text held in memory.
func ParseString(text string) ([]Rule, []ParseWarning) {
	rules, warnings, _ := Parse(strings.NewReader(text))
	return rules, warnings
}

type parser struct {
	pending  []keyValue
	start    int
	rules    []Rule
	warnings []ParseWarning
}

func (p *parser) feed(lineNo int, text string) {
	switch classify(text) {
	case lineBlank, lineComment:
		return
	case lineSeparator:
		p.flush()
		return
	}

	key, value, ok := strings.Cut(text, "=")
	if !ok {
		p.warn(lineNo, text, "expected keyword=value")
		return
	}
	if strings.HasPrefix(key, "colo") {
		key = KeyColours
	}
	if len(p.pending) == 0 {
		p.start = lineNo
	}
	p.pending = append(p.pending, keyValue{key: key, value: value, line: lineNo, text: text})
}

func classify(text string) lineKind {
	switch {
	case strings.TrimSpace(text) == "":
		return lineBlank
	case text[0] == '#':
		return lineComment
	case !isASCIILetter(text[0]):
		return lineSeparator
	default:
		return lineKeyValue
	}
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// flush turns the pending pairs into a rule, even when there are none.
func (p *parser) flush() {
	rule := NewRule()
	rule.Line = p.start

	for _, kv := range p.pending {
		switch kv.key {
		case KeyRegexp:
			rule.Pattern = kv.value
		case KeyColours:
			codes := colour.ParseList(kv.value)
			for _, name := range colour.UnknownNames(kv.value) {
				p.warn(kv.line, kv.text, fmt.Sprintf("unknown colour %q, using default", name))
			}
			if len(codes) == 0 {
				p.warn(kv.line, kv.text, "no colours given")
				continue
			}
			rule.Colours = codes
		case KeyCount:
			mode, ok := ParseCountMode(kv.value)
			if !ok {
				p.warn(kv.line, kv.text, fmt.Sprintf("unknown count %q, using more", kv.value))
			}
			rule.Count = mode
		case KeyCommand:
			rule.Command = kv.value
		case KeySkip:
			rule.Skip = kv.value
		case KeyReplace:
			rule.Replace = kv.value
		case KeyConcat:
			rule.Concat = kv.value
		default:
			p.warn(kv.line, kv.text, fmt.Sprintf("%s is not a key", kv.key))
		}
	}

	p.rules = append(p.rules, rule)
	p.pending = p.pending[:0]
	p.start = 0
}

func (p *parser) warn(lineNo int, text, msg string) {
	p.warnings = append(p.warnings, ParseWarning{Line: lineNo, Text: text, Message: msg})
}
