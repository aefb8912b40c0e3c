package model

import (
	"encoding/json"
	"testing"
)

func TestClauseDisplayType(t *testing.T) {
	c := Clause{Index: 1, CleanedText: "text"}
	if c.DisplayType() != "General" {
		t.Errorf("Expected default type General, got %s", c.DisplayType())
	}

	c.Type = "Termination"
	if c.DisplayType() != "Termination" {
		t.Errorf("Expected type Termination, got %s", c.DisplayType())
	}
}

func TestClauseSimplifiedText(t *testing.T) {
	c := Clause{CleanedText: "original"}
	if c.SimplifiedText() != "original" {
		t.Errorf("Expected fallback to cleaned text, got %s", c.SimplifiedText())
	}

	c.Simplified = "simpler"
	if c.SimplifiedText() != "simpler" {
		t.Errorf("Expected simplified text, got %s", c.SimplifiedText())
	}
}

func TestSimplifiedCount(t *testing.T) {
	doc := ProcessedDocument{
		Clauses: []Clause{
			{CleanedText: "A.", Simplified: "A."},
			{CleanedText: "B.", Simplified: "b."},
			{CleanedText: "C."},
		},
	}

	if got := doc.SimplifiedCount(); got != 1 {
		t.Errorf("Expected simplified count 1, got %d", got)
	}
}

func TestTermDisplayCategory(t *testing.T) {
	term := LegalTerm{Term: "indemnify"}
	if term.DisplayCategory() != "Legal Term" {
		t.Errorf("Expected default category, got %s", term.DisplayCategory())
	}

	term.Category = "Liability"
	if term.DisplayCategory() != "Liability" {
		t.Errorf("Expected category Liability, got %s", term.DisplayCategory())
	}
}

func TestProcessedDocumentDecode(t *testing.T) {
	payload := `{
		"clause_count": 2,
		"word_count": 1234,
		"clauses": [
			{"index": 1, "type": "Payment", "cleaned_text": "Pay on time.", "simplified": "Pay when due."},
			{"index": 2, "cleaned_text": "Notice clause."}
		],
		"legal_terms": [
			{"term": "force majeure", "definition": "unforeseeable events"}
		],
		"raw_text": "Pay on time. Notice clause.",
		"original_readability": {"word_count": 6, "sentence_count": 2}
	}`

	var doc ProcessedDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}

	if doc.ClauseCount != 2 {
		t.Errorf("Expected clause_count 2, got %d", doc.ClauseCount)
	}
	if len(doc.Clauses) != 2 {
		t.Fatalf("Expected 2 clauses, got %d", len(doc.Clauses))
	}
	if doc.Clauses[0].Index != 1 {
		t.Errorf("Expected index 1, got %d", doc.Clauses[0].Index)
	}
	if doc.Clauses[1].DisplayType() != "General" {
		t.Errorf("Expected missing type to default to General")
	}
	if doc.SimplifiedReadability.WordCount != 0 {
		t.Errorf("Expected missing readability to default to 0")
	}
	if doc.ClauseTypeChart != "" {
		t.Errorf("Expected missing chart to be empty")
	}
}

func TestSessionDisplayFilename(t *testing.T) {
	s := Session{}
	if s.DisplayFilename() != "document.pdf" {
		t.Errorf("Expected default filename, got %s", s.DisplayFilename())
	}

	s.Filename = "lease.docx"
	if s.DisplayFilename() != "lease.docx" {
		t.Errorf("Expected lease.docx, got %s", s.DisplayFilename())
	}
}
