// Package validation checks uploaded workbooks before they reach the
// decoder.
package validation

import (
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "sheetsum/internal/errors"
)

// UploadValidator validates workbook uploads against the accepted
// extensions and the configured size cap.
type UploadValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewUploadValidator creates an upload validator. maxBytes caps the
// accepted upload size.
func NewUploadValidator(logger *slog.Logger, maxBytes int64) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{
		logger:   logger.With(slog.String("component", "upload_validator")),
		maxBytes: maxBytes,
	}
}

// acceptedExtensions lists the workbook formats the decoder understands.
// excelize reads the whole OOXML family.
var acceptedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// Validate checks the upload's filename extension and size.
func (v *UploadValidator) Validate(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !acceptedExtensions[ext] {
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("file", filename),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError("uploaded file must be an .xlsx workbook").
			WithContext("file", filename)
	}

	if v.maxBytes > 0 && size > v.maxBytes {
		v.logger.Warn("rejected oversized upload",
			slog.String("file", filename),
			slog.Int64("size", size),
			slog.Int64("max_bytes", v.maxBytes))
		return apperrors.NewAppValidationError("uploaded file exceeds the size limit").
			WithContext("size", size).
			WithContext("max_bytes", v.maxBytes)
	}

	return nil
}
