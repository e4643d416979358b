package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"claydir/internal/models"
)

// ErrNoHeader indicates a feed with no usable header row.
var ErrNoHeader = errors.New("feed has no header row")

// ParseCSV parses header-plus-rows CSV content into raw rows keyed by the
// original (free-text, case varying) column names. Blank and malformed lines
// are skipped rather than failing the whole parse.
func ParseCSV(content string) ([]models.RawRow, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	var rows []models.RawRow

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			// Malformed line: skip it, keep the rest of the feed
			continue
		}

		if isBlank(fields) {
			continue
		}

		row := make(models.RawRow, len(header))

		for i, value := range fields {
			if i >= len(header) {
				break
			}

			if header[i] == "" {
				continue
			}

			row[header[i]] = value
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// readHeader reads the first non-blank line as the header row.
func readHeader(reader *csv.Reader) ([]string, error) {
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read header row: %w", err)
		}

		if isBlank(fields) {
			continue
		}

		header := make([]string, len(fields))
		for i, name := range fields {
			header[i] = strings.TrimSpace(name)
		}

		return header, nil
	}
}

// isBlank reports whether every field of a line is empty or whitespace.
func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}
