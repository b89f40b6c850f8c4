// Package importer reads word lists from spreadsheets and CSV files into
// vocabulary records ready to be added to a profile.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/vocabcoach/internal/domain"
)

// Column names recognized in a header row.
const (
	ColWord        = "word"
	ColDefinition  = "definition"
	ColTranslation = "translation"
	ColExample     = "example"
	ColPhonetic    = "phonetic"
	ColTopic       = "topic"
	ColLevel       = "level"
)

// defaultColumns is the column order assumed when the file has no header.
var defaultColumns = []string{ColWord, ColDefinition, ColTranslation, ColExample, ColPhonetic, ColTopic, ColLevel}

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Options controls how a file is read.
type Options struct {
	Sheet string // XLSX sheet name; empty means the first sheet
}

// Report summarizes one import.
type Report struct {
	Rows    int      // data rows seen, header excluded
	Skipped int      // rows that produced no record
	Errors  []string // one message per skipped row
}

// ReadFile reads records from a .csv, .xlsx or .xlsm file. Records carry
// content only; identity and scheduling are assigned by the caller.
func ReadFile(path string, opts Options) ([]domain.VocabularyRecord, Report, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path, opts.Sheet)
	default:
		return nil, Report{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, Report{}, err
	}

	records, report := ParseRows(rows)
	return records, report, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// ParseRows maps raw rows to records. A first row whose cells name known
// columns is taken as the header; otherwise the default column order
// applies. Rows without a word, or without both a definition and a
// translation, are skipped and reported. Blank rows are ignored.
func ParseRows(rows [][]string) ([]domain.VocabularyRecord, Report) {
	var report Report
	if len(rows) == 0 {
		return nil, report
	}

	columns, start := defaultColumns, 0
	if header, ok := parseHeader(rows[0]); ok {
		columns, start = header, 1
	}

	records := make([]domain.VocabularyRecord, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		report.Rows++

		cells := make(map[string]string, len(columns))
		for c, name := range columns {
			if name != "" && c < len(row) {
				cells[name] = strings.TrimSpace(row[c])
			}
		}

		rec, err := toRecord(cells)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		records = append(records, rec)
	}
	return records, report
}

func parseHeader(row []string) ([]string, bool) {
	known := make(map[string]bool, len(defaultColumns))
	for _, c := range defaultColumns {
		known[c] = true
	}

	columns := make([]string, len(row))
	hasWord := false
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if known[name] {
			columns[i] = name
			hasWord = hasWord || name == ColWord
		}
	}
	return columns, hasWord
}

func toRecord(cells map[string]string) (domain.VocabularyRecord, error) {
	word := cleanWord(cells[ColWord])
	if word == "" {
		return domain.VocabularyRecord{}, errors.New("word is required")
	}
	if cells[ColDefinition] == "" && cells[ColTranslation] == "" {
		return domain.VocabularyRecord{}, errors.New("definition or translation is required")
	}
	return domain.VocabularyRecord{
		Word:                 word,
		Definition:           cells[ColDefinition],
		TranslatedDefinition: cells[ColTranslation],
		Example:              cells[ColExample],
		Phonetic:             cells[ColPhonetic],
		Topic:                cells[ColTopic],
		LevelTag:             cells[ColLevel],
	}, nil
}

// cleanWord drops a trailing parenthesized note such as "go (went, gone)".
func cleanWord(word string) string {
	if i := strings.Index(word, "("); i > 0 {
		word = word[:i]
	}
	return strings.TrimSpace(word)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
