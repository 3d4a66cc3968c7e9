package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "sheetsum/internal/errors"
	customMiddleware "sheetsum/internal/middleware"
	"sheetsum/internal/services"
	"sheetsum/internal/summary"
	"sheetsum/internal/validation"
	"sheetsum/pkg/contracts/api"
)

// SummaryHandler handles column-summary HTTP requests with RFC 7807 compliance
type SummaryHandler struct {
	service         *services.SummaryService
	logger          *slog.Logger
	errorHandler    *apierrors.ErrorHandler
	validate        *validator.Validate
	uploadValidator *validation.UploadValidator
	maxUploadBytes  int64
}

// NewSummaryHandler creates a new summary handler with RFC 7807 error handling
func NewSummaryHandler(service *services.SummaryService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *SummaryHandler {
	return &SummaryHandler{
		service:         service,
		logger:          logger.With(slog.String("component", "summary_handler")),
		errorHandler:    errorHandler,
		validate:        validator.New(),
		uploadValidator: validation.NewUploadValidator(logger, maxUploadBytes),
		maxUploadBytes:  maxUploadBytes,
	}
}

// Routes returns the summary routes with proper Chi patterns
func (h *SummaryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.SummarizeUpload)
	r.With(customMiddleware.ContentType("application/json")).
		Post("/grid", h.SummarizeGrid)

	return r
}

// SummarizeUpload handles POST /api/summary. It accepts a multipart form
// with an .xlsx upload under "file", the requested columns under "columns"
// (repeated fields or comma-separated) and an optional "sheet" name.
func (h *SummaryHandler) SummarizeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge(h.maxUploadBytes))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(
			fmt.Errorf("parsing multipart form: %w", err)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "An .xlsx file upload is required"))
		return
	}
	defer file.Close()

	if err := h.uploadValidator.Validate(header.Filename, header.Size); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	columns := parseColumns(r.MultipartForm.Value["columns"])
	if len(columns) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("columns", "At least one column name is required"))
		return
	}

	sheet := r.FormValue("sheet")

	h.logger.InfoContext(r.Context(), "summary upload received",
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size),
		slog.String("sheet", sheet),
		slog.Int("columns", len(columns)),
	)
	h.service.RecordUploadSize(r.Context(), header.Size)

	result, err := h.service.SummarizeUpload(r.Context(), header.Filename, file, sheet, columns)
	if err != nil {
		h.renderSummaryError(w, r, err)
		return
	}

	render.JSON(w, r, toSummaryResponse(header.Filename, result))
}

// SummarizeGrid handles POST /api/summary/grid. The grid arrives as JSON
// rows of null, number or string cells.
func (h *SummaryHandler) SummarizeGrid(w http.ResponseWriter, r *http.Request) {
	var req api.GridSummaryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(
			fmt.Errorf("decoding request body: %w", err)))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest,
			"VALIDATION_FAILED",
			"Request validation failed",
			validationDetails(err),
		))
		return
	}

	grid := make(summary.Grid, len(req.Grid))
	for i, row := range req.Grid {
		grid[i] = summary.Row(row)
	}

	result, err := h.service.SummarizeGrid(r.Context(), grid, req.Columns)
	if err != nil {
		h.renderSummaryError(w, r, err)
		return
	}

	render.JSON(w, r, toSummaryResponse("", result))
}

// renderSummaryError maps service errors to API errors
func (h *SummaryHandler) renderSummaryError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, summary.ErrHeaderNotFound) {
		h.errorHandler.HandleError(w, r, apierrors.ErrHeaderNotDetected())
		return
	}

	var noMatch *services.NoMatchError
	if errors.As(err, &noMatch) {
		h.errorHandler.HandleError(w, r, apierrors.ErrColumnsNotFound(
			noMatch.RequestedColumns, noMatch.AvailableColumns))
		return
	}

	var appErr *apierrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apierrors.ErrTypeParsing {
		h.errorHandler.HandleError(w, r, apierrors.ErrWorkbookUnreadable(appErr))
		return
	}

	h.errorHandler.HandleError(w, r, err)
}

// parseColumns flattens repeated form values and splits comma-separated
// entries, dropping blanks.
func parseColumns(values []string) []string {
	var columns []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				columns = append(columns, part)
			}
		}
	}
	return columns
}

// validationDetails converts validator errors into a field→message map
func validationDetails(err error) map[string]string {
	details := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return details
}

// toSummaryResponse converts the internal result into the wire contract
func toSummaryResponse(filename string, result *summary.Result) api.SummaryResponse {
	summaries := make([]api.ColumnSummary, len(result.Summaries))
	for i, cs := range result.Summaries {
		summaries[i] = api.ColumnSummary{
			Column: cs.Column,
			Sum:    cs.Sum,
			Avg:    cs.Avg,
			Min:    cs.Min,
			Max:    cs.Max,
			Median: cs.Median,
			StdDev: cs.StdDev,
		}
	}

	missing := result.MissingColumns
	if missing == nil {
		missing = []string{}
	}

	return api.SummaryResponse{
		File:           filename,
		Summary:        summaries,
		MissingColumns: missing,
	}
}
