package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCSVEncoding is assumed for exports that are not valid UTF-8.
const DefaultCSVEncoding = "windows-1254"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSource reads supplier collections from a directory of CSV exports, one
// file per service type named like entrance-fee.csv. Headers use the record
// field names, same as workbook sheets.
type CSVSource struct {
	dir      string
	encoding string
	logger   zerolog.Logger
}

// NewCSVSource creates a CSV directory source. Files that are not valid UTF-8
// are decoded with enc (an HTML encoding label such as windows-1250); empty
// means DefaultCSVEncoding.
func NewCSVSource(dir, enc string) *CSVSource {
	if enc == "" {
		enc = DefaultCSVEncoding
	}
	return &CSVSource{
		dir:      dir,
		encoding: enc,
		logger:   log.With().Str("component", "catalog_csv").Logger(),
	}
}

// Name implements Source.
func (s *CSVSource) Name() string { return "csv" }

// Fetch implements Source.
func (s *CSVSource) Fetch(ctx context.Context, st ServiceType) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.findFile(st)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	content, err := s.decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = DetectDelimiter(content)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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
		data, err := json.Marshal(rowToRecord(headers, rows[i]))
		if err != nil {
			s.logger.Warn().Err(err).Str("file", path).Int("line", i+1).Msg("Skipping CSV row")
			continue
		}
		records = append(records, data)
	}
	return records, nil
}

// findFile looks for <type>.csv, accepting camelCase or kebab-case names.
func (s *CSVSource) findFile(st ServiceType) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("read catalog dir %s: %w", s.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if parsed, err := ParseServiceType(base); err == nil && parsed == st {
			return filepath.Join(s.dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("catalog dir %s has no file for %s: %w", s.dir, st, fs.ErrNotExist)
}

func (s *CSVSource) decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	enc, err := htmlindex.Get(s.encoding)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", s.encoding, err)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DetectDelimiter picks the separator that occurs most consistently across
// the first non-empty lines. Comma wins when nothing else does.
func DetectDelimiter(content string) rune {
	if len(content) > 4096 {
		content = content[:4096]
	}
	sample := make([]string, 0, 5)
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			sample = append(sample, line)
			if len(sample) == 5 {
				break
			}
		}
	}
	if len(sample) == 0 {
		return ','
	}

	best, bestScore := ',', 0.0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		counts := make([]float64, len(sample))
		sum := 0.0
		for i, line := range sample {
			counts[i] = float64(strings.Count(line, string(delim)))
			sum += counts[i]
		}
		avg := sum / float64(len(sample))
		if avg == 0 {
			continue
		}
		variance := 0.0
		for _, c := range counts {
			variance += (c - avg) * (c - avg)
		}
		variance /= float64(len(sample))

		if score := avg / (1 + variance); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// IsCSVDir reports whether path is a directory, so callers can choose
// between CSVSource and SpreadsheetSource for a single catalog path.
func IsCSVDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
