package summary

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/montanaflynn/stats"
)

// ErrHeaderNotFound is returned when no row inside the header search window
// contains a single non-empty cell, so there is nothing to treat as a
// header. It aborts the whole summarization; every other per-column or
// per-cell decision is reported in the Result instead of failing the call.
var ErrHeaderNotFound = errors.New("could not detect header row in the sheet")

// Config holds tuning options for a Summarizer.
type Config struct {
	// HeaderSearchDepth bounds how many leading rows are inspected for the
	// header row. Defaults to DefaultHeaderSearchDepth.
	HeaderSearchDepth int
	// IncludeExtendedStats adds min/max/median/stddev to each column
	// summary. Off by default so the base contract stays sum and average.
	IncludeExtendedStats bool
}

// DefaultConfig returns the configuration used when callers have no
// opinion.
func DefaultConfig() Config {
	return Config{HeaderSearchDepth: DefaultHeaderSearchDepth}
}

// ColumnSummary is the per-column aggregation result. Column carries the
// caller's original label, not the normalized form. A column that was found
// but held no coercible values reports Sum 0 and Avg 0 rather than an
// error.
type ColumnSummary struct {
	Column string  `json:"column"`
	Sum    float64 `json:"sum"`
	Avg    float64 `json:"avg"`

	// Extended statistics, present only when IncludeExtendedStats is set
	// and the column held at least one numeric value.
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Median *float64 `json:"median,omitempty"`
	StdDev *float64 `json:"std_dev,omitempty"`
}

// Result is the outcome of one summarization call. Summaries preserves
// request order and contains an entry for every requested column found in
// the header; labels that were not found are listed in MissingColumns.
// AvailableColumns echoes every normalized label the chosen header row
// offered, in column order, for diagnostics when nothing matched.
type Result struct {
	HeaderRowIndex   int             `json:"header_row_index"`
	Summaries        []ColumnSummary `json:"summaries"`
	MissingColumns   []string        `json:"missing_columns"`
	AvailableColumns []string        `json:"available_columns"`
}

// Summarizer computes per-column sums and averages beneath a detected
// header row. Each call constructs its own header map and accumulators, so
// one Summarizer is safe for concurrent use over independent grids.
type Summarizer struct {
	logger *slog.Logger
	cfg    Config
}

// NewSummarizer creates a summarizer with the given configuration. A nil
// logger falls back to slog.Default.
func NewSummarizer(logger *slog.Logger, cfg Config) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HeaderSearchDepth <= 0 {
		cfg.HeaderSearchDepth = DefaultHeaderSearchDepth
	}
	return &Summarizer{logger: logger, cfg: cfg}
}

// Summarize locates the header row, then scans every row below it once per
// requested column, feeding each present cell through CoerceNumber and
// accumulating sum and count. Uncoercible cells are silently excluded, and
// rows shorter than the target column index are skipped for that column.
// Sums and averages are rounded to two decimal places.
func (s *Summarizer) Summarize(ctx context.Context, grid Grid, columns []string) (*Result, error) {
	header, ok := LocateHeader(grid, columns, s.cfg.HeaderSearchDepth)
	if !ok {
		return nil, ErrHeaderNotFound
	}

	s.logger.DebugContext(ctx, "header row located",
		slog.Int("row_index", header.Index),
		slog.Int("requested_columns", len(columns)))

	cols := headerMap(header.Cells)

	result := &Result{
		HeaderRowIndex:   header.Index,
		Summaries:        make([]ColumnSummary, 0, len(columns)),
		MissingColumns:   []string{},
		AvailableColumns: availableColumns(header.Cells),
	}

	for _, column := range columns {
		idx, ok := cols[NormalizeLabel(column)]
		if !ok {
			result.MissingColumns = append(result.MissingColumns, column)
			continue
		}

		var (
			sum    float64
			count  int
			values []float64 // retained only for extended statistics
		)
		for _, row := range grid[header.Index+1:] {
			if idx >= len(row) {
				continue // short row: the cell is absent, not zero
			}
			n, ok := CoerceNumber(row[idx])
			if !ok {
				continue
			}
			sum += n
			count++
			if s.cfg.IncludeExtendedStats {
				values = append(values, n)
			}
		}

		cs := ColumnSummary{Column: column, Sum: round2(sum)}
		if count > 0 {
			cs.Avg = round2(sum / float64(count))
		}
		if len(values) > 0 {
			attachExtendedStats(&cs, values)
		}
		result.Summaries = append(result.Summaries, cs)
	}

	s.logger.InfoContext(ctx, "column summary computed",
		slog.Int("header_row_index", header.Index),
		slog.Int("summarized", len(result.Summaries)),
		slog.Int("missing", len(result.MissingColumns)))

	return result, nil
}

// availableColumns lists the normalized header labels in column order,
// first occurrence wins.
func availableColumns(header Row) []string {
	seen := make(map[string]struct{}, len(header))
	out := make([]string, 0, len(header))
	for _, c := range header {
		key := NormalizeLabel(c)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// attachExtendedStats fills the optional statistics fields from the
// collected column values.
func attachExtendedStats(cs *ColumnSummary, values []float64) {
	if v, err := stats.Min(values); err == nil {
		v = round2(v)
		cs.Min = &v
	}
	if v, err := stats.Max(values); err == nil {
		v = round2(v)
		cs.Max = &v
	}
	if v, err := stats.Median(values); err == nil {
		v = round2(v)
		cs.Median = &v
	}
	if v, err := stats.StandardDeviation(values); err == nil {
		v = round2(v)
		cs.StdDev = &v
	}
}

// round2 rounds half away from zero to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
