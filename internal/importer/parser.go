package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var ErrNoHeader = fmt.Errorf("%w: no matching header found: expected Date, Category, Amount and optionally Type, Description", transaction.ErrValidation)

// Parser reads semicolon separated transaction files and produces create params.
// It auto-detects the text encoding, the header row and which profile the file follows.
type Parser struct {
	vocab transaction.Vocabulary
	loc   *time.Location
}

// NewParser returns a parser validating categories against vocab and reading dates in loc.
func NewParser(vocab transaction.Vocabulary, loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}

	return &Parser{vocab: vocab, loc: loc}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %w", transaction.ErrValidation, err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoHeader
	}

	slog.Debug("parsing import file", "profile", profile.Name, "charset", charset, "rows", len(rows)-headerIdx-1)

	return p.parseRows(profile, cols, rows[headerIdx+1:], headerIdx)
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := normalizeHeader(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows. Rows without a parseable date (blank lines, summaries,
// footers) are skipped; a dated row with bad fields fails the whole file.
func (p *Parser) parseRows(prof *Profile, cols colIndex, rows [][]string, headerIdx int) ([]transaction.CreateParams, error) {
	var params []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerIdx + i + 2 // 1-based record number

		dateStr := cellValue(row, cols, prof.DateCol)
		if dateStr == "" {
			continue
		}

		if _, err := transaction.ParseDate(dateStr, p.loc); err != nil {
			continue
		}

		in := transaction.Input{
			Date:        dateStr,
			Category:    cellValue(row, cols, prof.CategoryCol),
			Amount:      cellValue(row, cols, prof.AmountCol),
			Description: cellValue(row, cols, prof.DescCol),
		}

		switch prof.AmountMode {
		case amountTyped:
			in.Type = cellValue(row, cols, prof.TypeCol)
		case amountSigned:
			in.Type, in.Amount = splitSigned(in.Amount)
		}

		parsed, err := in.Parse(p.vocab, p.loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		params = append(params, parsed)
	}

	return params, nil
}

// splitSigned maps "-12,50" to expense 12,50 and "12,50" to income 12,50.
func splitSigned(amount string) (string, string) {
	if rest, ok := strings.CutPrefix(amount, "-"); ok {
		return string(transaction.TypeExpense), rest
	}

	return string(transaction.TypeIncome), strings.TrimPrefix(amount, "+")
}

// cellValue safely gets a trimmed cell value for the named column.
func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
