package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVParser implements the Parser interface for CSV scorecard files.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads CSV (or tab separated) data and returns a ParsedScorecard.
func (p *CSVParser) Parse(fileData []byte, fileName string) (*ParsedScorecard, error) {
	cleaned, delimiter, err := preprocessCSVData(fileData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV %s: %w", fileName, err)
		}
		// Skip empty rows
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		rows = append(rows, record)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: CSV must contain at least header and one data row: %w", fileName, ErrNoPlayers)
	}
	return parseRows(rows, fileName)
}
