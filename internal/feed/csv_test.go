package feed

import (
	"errors"
	"testing"
)

func TestParseCSV_HeaderAndRows(t *testing.T) {
	content := "name,town,category\nAce Hardware,Flora,Retail\nJoe's Cafe,Clay City,Dining\n"

	rows, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0]["name"] != "Ace Hardware" {
		t.Errorf("Expected 'Ace Hardware', got '%s'", rows[0]["name"])
	}

	if rows[1]["town"] != "Clay City" {
		t.Errorf("Expected 'Clay City', got '%s'", rows[1]["town"])
	}
}

func TestParseCSV_PreservesHeaderCase(t *testing.T) {
	content := "Name,TOWN,Category\nAce Hardware,Flora,Retail\n"

	rows, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if rows[0]["Name"] != "Ace Hardware" {
		t.Errorf("Expected raw key 'Name' to survive, got row %v", rows[0])
	}

	if rows[0]["TOWN"] != "Flora" {
		t.Errorf("Expected raw key 'TOWN' to survive, got row %v", rows[0])
	}
}

func TestParseCSV_SkipsBlankLines(t *testing.T) {
	content := "name,town\n\nAce Hardware,Flora\n  , \nJoe's Cafe,Clay City\n\n"

	rows, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows after skipping blanks, got %d", len(rows))
	}
}

func TestParseCSV_RaggedRows(t *testing.T) {
	// Short row keeps what it has, long row drops the overflow
	content := "name,town,category\nAce Hardware,Flora\nJoe's Cafe,Clay City,Dining,extra\n"

	rows, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if _, ok := rows[0]["category"]; ok {
		t.Error("Short row should not carry a category key")
	}

	if rows[1]["category"] != "Dining" {
		t.Errorf("Expected 'Dining', got '%s'", rows[1]["category"])
	}
}

func TestParseCSV_QuotedFields(t *testing.T) {
	content := "name,address\n\"Smith & Sons, LLC\",\"123 Main St, Flora\"\n"

	rows, err := ParseCSV(content)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if rows[0]["name"] != "Smith & Sons, LLC" {
		t.Errorf("Quoted comma mishandled: '%s'", rows[0]["name"])
	}

	if rows[0]["address"] != "123 Main St, Flora" {
		t.Errorf("Quoted address mishandled: '%s'", rows[0]["address"])
	}
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV("")
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("Expected ErrNoHeader, got %v", err)
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	rows, err := ParseCSV("name,town,category\n")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if len(rows) != 0 {
		t.Errorf("Expected 0 rows, got %d", len(rows))
	}
}
