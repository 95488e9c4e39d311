package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grcat/internal/logger"
)

func setupTestProcessor(t *testing.T, rules string, cfg ProcessorConfig) *Processor {
	t.Helper()

	rs := mustRuleSet(t, rules, ReplacePositional)
	return NewProcessor(rs, cfg, logger.NewNopLogger(), newMockMetrics(t))
}

func TestProcessorProcess(t *testing.T) {
	tests := []struct {
		name     string
		rules    string
		colour   bool
		lines    []string
		want     []string
		wantOK   []bool
		wantStat ProcessorStats
	}{
		{
			name:     "Colour on",
			rules:    "regexp=ERROR\ncolours=red\n",
			colour:   true,
			lines:    []string{"ERROR one", "fine", "ERROR ERROR"},
			want:     []string{red + "ERROR" + reset + " one", "fine", red + "ERROR" + reset + " " + red + "ERROR" + reset},
			wantOK:   []bool{true, true, true},
			wantStat: ProcessorStats{Processed: 3, Emitted: 3, Matches: 3},
		},
		{
			name:     "Colour off passes lines through",
			rules:    "regexp=ERROR\ncolours=red\n",
			colour:   false,
			lines:    []string{"ERROR one"},
			want:     []string{"ERROR one"},
			wantOK:   []bool{true},
			wantStat: ProcessorStats{Processed: 1, Emitted: 1},
		},
		{
			name:     "Skip suppresses with colour on",
			rules:    "skip=yes\n",
			colour:   true,
			lines:    []string{"a", "b"},
			want:     []string{"", ""},
			wantOK:   []bool{false, false},
			wantStat: ProcessorStats{Processed: 2, Suppressed: 2},
		},
		{
			name:     "Skip suppresses with colour off",
			rules:    "skip=yes\n",
			colour:   false,
			lines:    []string{"a"},
			want:     []string{""},
			wantOK:   []bool{false},
			wantStat: ProcessorStats{Processed: 1, Suppressed: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := setupTestProcessor(t, tt.rules, ProcessorConfig{Colour: tt.colour})

			for i, line := range tt.lines {
				got, ok := p.Process(line)
				assert.Equal(t, tt.wantOK[i], ok, "line %d", i)
				assert.Equal(t, tt.want[i], got, "line %d", i)
			}
			assert.Equal(t, tt.wantStat, p.GetStats())
		})
	}
}

func TestProcessorWithoutMetrics(t *testing.T) {
	rs := mustRuleSet(t, "regexp=x\ncolours=red\n", ReplacePositional)
	p := NewProcessor(rs, ProcessorConfig{Colour: true}, nil, nil)

	got, ok := p.Process("x")
	assert.True(t, ok)
	assert.Equal(t, red+"x"+reset, got)
}
