// Package summary implements the column summarization core: locating a
// header row inside a decoded spreadsheet grid, coercing cell values to
// numbers, and computing per-column sums and averages.
//
// The package is transport-agnostic. It knows nothing about file formats or
// HTTP; callers hand it an in-memory Grid (see internal/xlsx and
// internal/sheets for decoders) and a list of requested column labels, and
// receive a Result back. Every call builds its own state, so a single
// Summarizer can serve concurrent requests over independent grids.
package summary
