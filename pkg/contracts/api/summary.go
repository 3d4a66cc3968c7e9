// Package api defines the request and response payloads of the HTTP API.
// The types here are the wire contract; internal packages convert their own
// result types into these before rendering.
package api

// ColumnSummary is the per-column aggregation entry of a summary response.
type ColumnSummary struct {
	Column string  `json:"column"`
	Sum    float64 `json:"sum"`
	Avg    float64 `json:"avg"`

	// Extended statistics, present only when the server runs with
	// extended stats enabled.
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Median *float64 `json:"median,omitempty"`
	StdDev *float64 `json:"std_dev,omitempty"`
}

// SummaryResponse is returned by POST /api/summary and
// POST /api/summary/grid. File is empty for grid requests.
type SummaryResponse struct {
	File           string          `json:"file,omitempty"`
	Summary        []ColumnSummary `json:"summary"`
	MissingColumns []string        `json:"missing_columns"`
}

// GridSummaryRequest is the JSON body of POST /api/summary/grid. Grid rows
// hold JSON null, number or string cells; ragged rows are allowed.
type GridSummaryRequest struct {
	Grid    [][]any  `json:"grid" validate:"required,min=1"`
	Columns []string `json:"columns" validate:"required,min=1,dive,required"`
}
