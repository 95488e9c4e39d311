package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grcat/internal/colour"
)

func TestNewRuleSet(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		wantErr   bool
		wantField string
		wantSkip  bool
	}{
		{
			name:  "Valid patterns",
			rules: []Rule{{Pattern: `^\d+`, Colours: []colour.Code{"\x1b[31m"}}, {Pattern: "ERROR"}},
		},
		{
			name:  "Empty pattern is allowed",
			rules: []Rule{NewRule()},
		},
		{
			name:      "Invalid pattern",
			rules:     []Rule{{Pattern: "ok"}, {Pattern: "(unclosed"}},
			wantErr:   true,
			wantField: "rules[1].regexp",
		},
		{
			name:     "Skip rule",
			rules:    []Rule{{Pattern: "a"}, {Skip: "yes"}},
			wantSkip: true,
		},
		{
			name:     "Skip accepts 1 and true",
			rules:    []Rule{{Skip: "1"}, {Skip: "true"}},
			wantSkip: true,
		},
		{
			name:  "Other skip values are false",
			rules: []Rule{{Skip: "no"}, {Skip: "YES"}, {Skip: "0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := NewRuleSet(tt.rules, ReplacePositional)
			if tt.wantErr {
				require.Error(t, err)
				var ve *RuleValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.wantField, ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rules), rs.Len())
			assert.Equal(t, tt.wantSkip, rs.Skip())
		})
	}
}

func TestNewRuleSetCompilesPatterns(t *testing.T) {
	rules := []Rule{{Pattern: "a+"}, NewRule()}

	rs, err := NewRuleSet(rules, ReplacePositional)
	require.NoError(t, err)

	compiled := rs.Rules()
	require.NotNil(t, compiled[0].Regexp())
	assert.Equal(t, "a+", compiled[0].Regexp().String())
	assert.Nil(t, compiled[1].Regexp())

	// The caller's slice is not touched
	assert.Nil(t, rules[0].Regexp())
}

func TestNewRuleSetRestoresDefaultColours(t *testing.T) {
	rs, err := NewRuleSet([]Rule{{Pattern: "a"}}, ReplacePositional)
	require.NoError(t, err)
	assert.Equal(t, []colour.Code{""}, rs.Rules()[0].Colours)
}

func TestRuleValidationError(t *testing.T) {
	err := &RuleValidationError{Field: "rules[0].regexp", Message: "bad"}
	assert.Equal(t, "rules[0].regexp: bad", err.Error())
}
