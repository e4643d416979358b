package tabular

import (
	"bytes"
	"testing"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		rows     [][]string
		expected string
	}{
		{
			name:    "Basic table",
			headers: []string{"Name", "Town"},
			rows: [][]string{
				{"Ace Hardware", "Flora"},
				{"Joe's Cafe", "Clay City"},
			},
			expected: `| Name         | Town      |
| ------------ | --------- |
| Ace Hardware | Flora     |
| Joe's Cafe   | Clay City |
`,
		},
		{
			name:    "CJK cells align by display width",
			headers: []string{"Name", "Category"},
			rows: [][]string{
				{"花火堂", "Retail"},
			},
			expected: `| Name   | Category |
| ------ | -------- |
| 花火堂 | Retail   |
`,
		},
		{
			name:    "Narrow columns get minimum width",
			headers: []string{"A"},
			rows: [][]string{
				{"B"},
			},
			expected: `| A   |
| --- |
| B   |
`,
		},
		{
			name:    "Ragged row widens the table",
			headers: []string{"A"},
			rows: [][]string{
				{"x", "extra"},
			},
			expected: `| A   |       |
| --- | ----- |
| x   | extra |
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.headers, tt.rows); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			if buf.String() != tt.expected {
				t.Errorf("Output mismatch.\nGot:\n%s\nWant:\n%s", buf.String(), tt.expected)
			}
		})
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer

	if err := Write(&buf, nil, nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("Expected no output for empty table, got %q", buf.String())
	}
}
