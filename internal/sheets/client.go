// Package sheets fetches grids from the Google Sheets API, as an
// alternative source to uploaded .xlsx workbooks.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	apperrors "sheetsum/internal/errors"
	"sheetsum/internal/summary"
)

// Client fetches spreadsheet ranges from the Google Sheets API.
type Client struct {
	svc *sheetsapi.Service
}

// NewClient builds a Sheets API client authenticated with an API key.
// Reading a spreadsheet requires it to be link-shared or public.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// FetchGrid retrieves readRange (A1 notation, e.g. "Sheet1!A1:Z500") from
// the given spreadsheet and returns it as a grid. With UNFORMATTED_VALUE
// rendering, numeric cells arrive from the API already typed as float64
// and pass through untouched.
func (c *Client) FetchGrid(ctx context.Context, spreadsheetID, readRange string) (summary.Grid, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, apperrors.NewNetworkError("unable to fetch spreadsheet values", err).
			WithContext("spreadsheet_id", spreadsheetID).
			WithContext("range", readRange)
	}

	grid := make(summary.Grid, len(resp.Values))
	for i, row := range resp.Values {
		grid[i] = summary.Row(row)
	}
	return grid, nil
}
