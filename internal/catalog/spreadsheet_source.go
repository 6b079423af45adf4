package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// SpreadsheetSource reads supplier collections from an .xlsx workbook. Each
// sheet is named after a service type and its first row holds the record field
// names, e.g. id | name | currency | adultPrice.
type SpreadsheetSource struct {
	path   string
	logger zerolog.Logger
}

// NewSpreadsheetSource creates a workbook source. The file is re-read on every fetch.
func NewSpreadsheetSource(path string) *SpreadsheetSource {
	return &SpreadsheetSource{
		path:   path,
		logger: log.With().Str("component", "catalog_workbook").Logger(),
	}
}

// Name implements Source.
func (s *SpreadsheetSource) Name() string { return "workbook" }

// Fetch implements Source.
func (s *SpreadsheetSource) Fetch(ctx context.Context, st ServiceType) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheet := findSheet(f.GetSheetList(), st)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheet for %s", s.path, st)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []json.RawMessage{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = strings.TrimSpace(cell)
	}

	records := make([]json.RawMessage, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		record := rowToRecord(headers, rows[i])
		data, err := json.Marshal(record)
		if err != nil {
			s.logger.Warn().Err(err).Str("sheet", sheet).Int("row", i+1).Msg("Skipping workbook row")
			continue
		}
		records = append(records, data)
	}

	return records, nil
}

// findSheet matches the sheet named after st, case-insensitively and
// accepting kebab-case names.
func findSheet(sheets []string, st ServiceType) string {
	for _, name := range sheets {
		if parsed, err := ParseServiceType(name); err == nil && parsed == st {
			return name
		}
	}
	return ""
}

// rowToRecord converts one row into a JSON object keyed by header. Empty cells
// are left out so the mapping sees them as absent.
func rowToRecord(headers, row []string) map[string]any {
	record := make(map[string]any, len(headers))
	for i, header := range headers {
		if header == "" || i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		record[header] = cellValue(header, cell)
	}
	return record
}

func cellValue(header, cell string) any {
	switch header {
	case "isActive":
		switch strings.ToLower(cell) {
		case "true", "yes", "1", "y", "da", "evet":
			return true
		case "false", "no", "0", "n", "ne", "hayir", "hayır":
			return false
		}
		return cell
	case "languages":
		parts := strings.Split(cell, ",")
		langs := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				langs = append(langs, p)
			}
		}
		return langs
	case "stars", "capacity":
		if n, err := strconv.Atoi(cell); err == nil {
			return n
		}
		return cell
	}
	return cell
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
