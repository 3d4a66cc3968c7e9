package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"sheetsum/internal/infrastructure"
	"sheetsum/internal/summary"
	"sheetsum/internal/xlsx"
)

// ErrNoColumnsMatched signals that every requested column was missing from
// the detected header row. A column that was found but held no numeric
// data is NOT this case; it yields a zero summary instead.
var ErrNoColumnsMatched = errors.New("none of the requested columns were found in the sheet")

// NoMatchError wraps ErrNoColumnsMatched with the diagnostic context the
// transport layer surfaces to the caller: what was asked for and what the
// header actually offered.
type NoMatchError struct {
	RequestedColumns []string
	AvailableColumns []string
}

// Error implements the error interface
func (e *NoMatchError) Error() string { return ErrNoColumnsMatched.Error() }

// Unwrap allows errors.Is(err, ErrNoColumnsMatched)
func (e *NoMatchError) Unwrap() error { return ErrNoColumnsMatched }

// SummaryService orchestrates workbook decoding and column summarization.
type SummaryService struct {
	summarizer *summary.Summarizer
	logger     *slog.Logger
	metrics    *infrastructure.SummaryMetrics
}

// NewSummaryService creates the summary service. metrics may be nil when
// observability is disabled.
func NewSummaryService(summarizer *summary.Summarizer, logger *slog.Logger, metrics *infrastructure.SummaryMetrics) *SummaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryService{
		summarizer: summarizer,
		logger:     logger.With(slog.String("component", "summary_service")),
		metrics:    metrics,
	}
}

// SummarizeUpload decodes an uploaded .xlsx workbook and summarizes the
// requested columns. An empty sheet name selects the workbook's first
// sheet.
func (s *SummaryService) SummarizeUpload(ctx context.Context, filename string, r io.Reader, sheet string, columns []string) (*summary.Result, error) {
	opID := uuid.New().String()
	logger := s.logger.With(
		slog.String("operation_id", opID),
		slog.String("file", filename),
	)

	logger.InfoContext(ctx, "summarizing uploaded workbook",
		slog.String("sheet", sheet),
		slog.Int("requested_columns", len(columns)))

	grid, err := xlsx.Decode(r, sheet)
	if err != nil {
		logger.ErrorContext(ctx, "workbook decode failed",
			slog.String("error", err.Error()))
		s.recordOutcome(ctx, "decode_failed", 0)
		return nil, err
	}

	return s.summarize(ctx, logger, grid, columns)
}

// SummarizeGrid summarizes the requested columns of an already-decoded
// grid.
func (s *SummaryService) SummarizeGrid(ctx context.Context, grid summary.Grid, columns []string) (*summary.Result, error) {
	opID := uuid.New().String()
	logger := s.logger.With(slog.String("operation_id", opID))

	logger.InfoContext(ctx, "summarizing grid",
		slog.Int("rows", len(grid)),
		slog.Int("requested_columns", len(columns)))

	return s.summarize(ctx, logger, grid, columns)
}

// summarize runs the core and applies the all-columns-missing policy: an
// empty summary list fails the whole operation, with the requested and
// available columns attached for debugging.
func (s *SummaryService) summarize(ctx context.Context, logger *slog.Logger, grid summary.Grid, columns []string) (*summary.Result, error) {
	start := time.Now()

	result, err := s.summarizer.Summarize(ctx, grid, columns)
	if err != nil {
		logger.ErrorContext(ctx, "summarization failed",
			slog.String("error", err.Error()))
		s.recordOutcome(ctx, "header_not_found", time.Since(start).Seconds())
		return nil, err
	}

	if len(result.Summaries) == 0 {
		logger.WarnContext(ctx, "no requested columns matched",
			slog.Any("requested_columns", columns),
			slog.Any("available_columns", result.AvailableColumns))
		s.recordOutcome(ctx, "no_columns_matched", time.Since(start).Seconds())
		return nil, &NoMatchError{
			RequestedColumns: columns,
			AvailableColumns: result.AvailableColumns,
		}
	}

	logger.InfoContext(ctx, "summarization complete",
		slog.Int("summarized", len(result.Summaries)),
		slog.Int("missing", len(result.MissingColumns)),
		slog.Duration("duration", time.Since(start)))
	s.recordOutcome(ctx, "success", time.Since(start).Seconds())

	return result, nil
}

// RecordUploadSize records the size of an accepted upload.
func (s *SummaryService) RecordUploadSize(ctx context.Context, bytes int64) {
	if s.metrics == nil {
		return
	}
	s.metrics.UploadBytes.Record(ctx, bytes)
}

// recordOutcome records one summarization with its outcome label.
func (s *SummaryService) recordOutcome(ctx context.Context, outcome string, seconds float64) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	s.metrics.SummariesTotal.Add(ctx, 1, attrs)
	if seconds > 0 {
		s.metrics.SummaryDuration.Record(ctx, seconds, attrs)
	}
}
