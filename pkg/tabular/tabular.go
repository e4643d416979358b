// Package tabular writes display-width-aligned text tables. Alignment uses
// terminal display width rather than rune count, so CJK and emoji cells
// line up correctly.
package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Write renders headers and rows as a pipe-delimited aligned table.
func Write(w io.Writer, headers []string, rows [][]string) error {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return nil
	}

	// Calculate max widths using display width
	colWidths := make([]int, colCount)

	measure := func(row []string) {
		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	measure(headers)

	for _, row := range rows {
		measure(row)
	}

	// Minimum separator width
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	if err := writeRow(w, headers, colWidths); err != nil {
		return err
	}

	separator := make([]string, colCount)
	for i := range separator {
		separator[i] = strings.Repeat("-", colWidths[i])
	}

	if err := writeRow(w, separator, colWidths); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeRow(w, row, colWidths); err != nil {
			return err
		}
	}

	return nil
}

func writeRow(w io.Writer, row []string, colWidths []int) error {
	var sb strings.Builder

	sb.WriteString("|")

	for i, width := range colWidths {
		content := ""
		if i < len(row) {
			content = row[i]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		// Pad with spaces based on display width
		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	if _, err := fmt.Fprintln(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write table row: %w", err)
	}

	return nil
}
