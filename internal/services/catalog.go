package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lehmann314159/wordtrainer/internal/models"
)

// ErrWordIndexOutOfRange is returned for an index outside the catalog
var ErrWordIndexOutOfRange = errors.New("word index out of range")

// Catalog is the ordered, read-only word list. A word's index is its identity.
type Catalog struct {
	words []models.Word
}

// NewCatalog creates a catalog from a copy of words
func NewCatalog(words []models.Word) *Catalog {
	c := &Catalog{words: make([]models.Word, len(words))}
	copy(c.words, words)
	return c
}

// Len returns the number of words in the catalog
func (c *Catalog) Len() int {
	return len(c.words)
}

// Word returns the record at index
func (c *Catalog) Word(index int) (*models.Word, error) {
	if index < 0 || index >= len(c.words) {
		return nil, fmt.Errorf("%w: %d (catalog has %d words)", ErrWordIndexOutOfRange, index, len(c.words))
	}
	return &c.words[index], nil
}

// LoadCatalog reads a catalog file. The format is chosen by extension:
// .json and .yaml/.yml hold a list of word records, .csv and .xlsx hold one
// word per row (see ImportCSV). sheet is only used for .xlsx.
func LoadCatalog(path, sheet string) (*Catalog, *ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	var result *ImportResult
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		result, err = decodeCatalog(f, func(r io.Reader, v interface{}) error {
			return json.NewDecoder(r).Decode(v)
		})
	case ".yaml", ".yml":
		result, err = decodeCatalog(f, func(r io.Reader, v interface{}) error {
			return yaml.NewDecoder(r).Decode(v)
		})
	case ".csv":
		result, err = ImportCSV(f)
	case ".xlsx":
		result, err = ImportXLSX(f, sheet)
	default:
		return nil, nil, fmt.Errorf("unsupported catalog format: %q", ext)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	if len(result.Words) == 0 {
		return nil, result, fmt.Errorf("catalog %s contains no words", path)
	}

	return NewCatalog(result.Words), result, nil
}

// decodeCatalog reads a whole-document catalog (a list of records)
func decodeCatalog(r io.Reader, decode func(io.Reader, interface{}) error) (*ImportResult, error) {
	var words []models.Word
	if err := decode(r, &words); err != nil {
		return nil, fmt.Errorf("failed to decode words: %w", err)
	}
	return &ImportResult{Words: words, Imported: len(words)}, nil
}
