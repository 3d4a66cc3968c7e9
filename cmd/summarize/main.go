package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"sheetsum/internal/services"
	"sheetsum/internal/sheets"
	"sheetsum/internal/summary"
)

func main() {
	file := flag.String("file", "", "path to an .xlsx workbook")
	sheet := flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	columns := flag.String("columns", "", "comma-separated column names to summarize (required)")
	depth := flag.Int("depth", summary.DefaultHeaderSearchDepth, "how many leading rows to inspect for the header")
	extended := flag.Bool("extended", false, "include min/max/median/stddev per column")
	format := flag.String("format", "table", "output format: table | csv | json")
	out := flag.String("out", "", "output file path (defaults to stdout)")
	spreadsheetID := flag.String("spreadsheet-id", "", "Google Sheets spreadsheet ID (alternative to -file)")
	readRange := flag.String("range", "", "A1-notation range for -spreadsheet-id, e.g. Sheet1!A1:Z500")
	flag.Parse()

	// A missing .env file is fine; the environment wins anyway.
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	requested := parseColumns(*columns)
	if len(requested) == 0 {
		fmt.Fprintln(os.Stderr, "error: -columns is required")
		flag.Usage()
		os.Exit(2)
	}
	if (*file == "") == (*spreadsheetID == "") {
		fmt.Fprintln(os.Stderr, "error: exactly one of -file or -spreadsheet-id is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	summarizer := summary.NewSummarizer(logger, summary.Config{
		HeaderSearchDepth:    *depth,
		IncludeExtendedStats: *extended,
	})
	service := services.NewSummaryService(summarizer, logger, nil)

	var (
		result *summary.Result
		err    error
	)
	if *file != "" {
		result, err = summarizeFile(ctx, service, *file, *sheet, requested)
	} else {
		result, err = summarizeSpreadsheet(ctx, service, *spreadsheetID, *readRange, requested)
	}
	if err != nil {
		slog.Error("Summarization failed", "error", err)
		os.Exit(1)
	}

	output := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			slog.Error("Failed to create output file", "path", *out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		output = f
	}

	if err := writeResult(output, *format, result); err != nil {
		slog.Error("Failed to write result", "error", err)
		os.Exit(1)
	}
}

func summarizeFile(ctx context.Context, service *services.SummaryService, path, sheet string, columns []string) (*summary.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	return service.SummarizeUpload(ctx, path, f, sheet, columns)
}

func summarizeSpreadsheet(ctx context.Context, service *services.SummaryService, spreadsheetID, readRange string, columns []string) (*summary.Result, error) {
	apiKey := os.Getenv("SHEETSUM_SHEETS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SHEETSUM_SHEETS_API_KEY must be set for -spreadsheet-id")
	}
	if readRange == "" {
		return nil, fmt.Errorf("-range is required with -spreadsheet-id")
	}

	client, err := sheets.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	grid, err := client.FetchGrid(ctx, spreadsheetID, readRange)
	if err != nil {
		return nil, err
	}

	return service.SummarizeGrid(ctx, grid, columns)
}

func parseColumns(value string) []string {
	var columns []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			columns = append(columns, part)
		}
	}
	return columns
}

func writeResult(w io.Writer, format string, result *summary.Result) error {
	switch format {
	case "table":
		return writeTable(w, result)
	case "csv":
		return writeCSV(w, result)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unknown format %q (want table, csv or json)", format)
	}
}

func writeTable(w io.Writer, result *summary.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tSUM\tAVG")
	for _, cs := range result.Summaries {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", cs.Column, cs.Sum, cs.Avg)
	}
	if len(result.MissingColumns) > 0 {
		fmt.Fprintf(tw, "\nmissing columns: %s\n", strings.Join(result.MissingColumns, ", "))
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, result *summary.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"column", "sum", "avg"}); err != nil {
		return err
	}
	for _, cs := range result.Summaries {
		record := []string{
			cs.Column,
			strconv.FormatFloat(cs.Sum, 'f', 2, 64),
			strconv.FormatFloat(cs.Avg, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
