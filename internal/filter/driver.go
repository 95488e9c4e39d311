package filter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"grcat/internal/logger"
	"grcat/internal/rule"
	"grcat/internal/stats"
)

// LineProcessor turns one input line into an output line, or reports that the
// line is suppressed.
type LineProcessor interface {
	Process(line string) (string, bool)
}

type matchCounter interface {
	GetStats() rule.ProcessorStats
}

// Driver streams lines from an input to an output through a LineProcessor,
// one line at a time.
type Driver struct {
	processor LineProcessor
	logger    *logger.Logger
	stats     *stats.StatsCollector

	read, emitted, suppressed uint64
}

// NewDriver creates a driver. st may be nil.
func NewDriver(p LineProcessor, log *logger.Logger, st *stats.StatsCollector) *Driver {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Driver{
		processor: p,
		logger:    log,
		stats:     st,
	}
}

// Run reads in until end of stream. Each line has its terminator removed, is
// processed, and is written to out followed by a newline unless suppressed.
// Output is flushed whenever no further input is buffered, so interactive
// pipelines see lines as they arrive. Read and write errors end the run.
func (d *Driver) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	defer d.report()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if werr := d.handle(writer, trimTerminator(line)); werr != nil {
				return fmt.Errorf("failed to write output: %w", werr)
			}
			if reader.Buffered() == 0 {
				if werr := writer.Flush(); werr != nil {
					return fmt.Errorf("failed to write output: %w", werr)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			d.logger.Error("failed to read input", "error", err, "linesRead", d.read)
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	d.logger.Debug("end of input",
		"linesRead", d.read,
		"linesEmitted", d.emitted,
		"linesSuppressed", d.suppressed)
	return nil
}

func (d *Driver) handle(w *bufio.Writer, line string) error {
	d.read++

	result, ok := d.processor.Process(line)
	if !ok {
		d.suppressed++
		return nil
	}
	d.emitted++

	if _, err := w.WriteString(result); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

func (d *Driver) report() {
	if d.stats == nil {
		return
	}

	var matches uint64
	if p, ok := d.processor.(matchCounter); ok {
		matches = p.GetStats().Matches
	}
	d.stats.Update(d.read, d.emitted, d.suppressed, matches)
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
