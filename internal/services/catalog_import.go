package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lehmann314159/wordtrainer/internal/models"
)

// List cells hold entries separated by entrySeparator; each entry is
// "text | translation".
const (
	entrySeparator = ";"
	partSeparator  = "|"
)

// ImportResult contains the results of a tabular catalog import
type ImportResult struct {
	Words    []models.Word `json:"-"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []string      `json:"errors,omitempty"`
}

var requiredColumns = []string{"word", "meaning"}

// ImportCSV reads a catalog from CSV. The header row names the columns:
// word, meaning (required), phonetic_us, phonetic_uk, phrases, sentences,
// synonyms, confusing (optional). Row order is catalog order.
func ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.skip(lineNum, err.Error())
			continue
		}
		result.add(lineNum, colIndex, record)
	}

	return result, nil
}

// ImportXLSX reads a catalog from one sheet of an Excel workbook, with the
// same column layout as ImportCSV
func ImportXLSX(r io.Reader, sheet string) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	colIndex, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		result.add(i+2, colIndex, row)
	}

	return result, nil
}

func mapColumns(header []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

func (res *ImportResult) skip(lineNum int, reason string) {
	res.Errors = append(res.Errors, fmt.Sprintf("line %d: %s", lineNum, reason))
	res.Skipped++
}

func (res *ImportResult) add(lineNum int, colIndex map[string]int, record []string) {
	cell := func(name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	word := models.Word{
		Word:    cell("word"),
		Meaning: cell("meaning"),
	}
	if word.Word == "" && word.Meaning == "" && strings.TrimSpace(strings.Join(record, "")) == "" {
		// Blank rows are common at the end of spreadsheets
		return
	}
	if word.Word == "" || word.Meaning == "" {
		res.skip(lineNum, "missing required field")
		return
	}

	if us, uk := cell("phonetic_us"), cell("phonetic_uk"); us != "" || uk != "" {
		word.Phonetics = &models.Phonetics{US: us, UK: uk}
	}

	for _, e := range splitEntries(cell("phrases")) {
		word.Phrases = append(word.Phrases, models.Example{Text: e[0], Translation: e[1]})
	}
	for _, e := range splitEntries(cell("sentences")) {
		word.Sentences = append(word.Sentences, models.Example{Text: e[0], Translation: e[1]})
	}
	for _, e := range splitEntries(cell("synonyms")) {
		word.Synonyms = append(word.Synonyms, models.RelatedWord{Word: e[0], Translation: e[1]})
	}
	for _, e := range splitEntries(cell("confusing")) {
		word.Confusing = append(word.Confusing, models.RelatedWord{Word: e[0], Translation: e[1]})
	}

	res.Words = append(res.Words, word)
	res.Imported++
}

// splitEntries parses "a | b; c | d" into [[a b] [c d]]
func splitEntries(s string) [][2]string {
	if s == "" {
		return nil
	}

	var entries [][2]string
	for _, raw := range strings.Split(s, entrySeparator) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		var entry [2]string
		parts := strings.SplitN(raw, partSeparator, 2)
		entry[0] = strings.TrimSpace(parts[0])
		if len(parts) == 2 {
			entry[1] = strings.TrimSpace(parts[1])
		}
		entries = append(entries, entry)
	}
	return entries
}
