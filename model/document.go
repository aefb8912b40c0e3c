package model

// ProcessedDocument is the payload returned by the processing API for one
// uploaded document. It is consumed as-is; clauses and terms are never
// mutated after receipt.
type ProcessedDocument struct {
	ClauseCount           int         `json:"clause_count"`
	WordCount             int         `json:"word_count"`
	Clauses               []Clause    `json:"clauses"`
	LegalTerms            []LegalTerm `json:"legal_terms"`
	RawText               string      `json:"raw_text,omitempty"`
	OriginalReadability   Readability `json:"original_readability,omitempty"`
	SimplifiedReadability Readability `json:"simplified_readability,omitempty"`
	ClauseTypeChart       string      `json:"clause_type_chart,omitempty"`
	StatsChart            string      `json:"stats_chart,omitempty"`
}

// Clause is one contractual provision extracted from the document.
// Index is 1-based and identifies the clause for the life of the result.
type Clause struct {
	Index       int    `json:"index"`
	Type        string `json:"type,omitempty"`
	CleanedText string `json:"cleaned_text"`
	Simplified  string `json:"simplified,omitempty"`
}

// DisplayType returns the clause type, defaulting to "General".
func (c *Clause) DisplayType() string {
	if c.Type == "" {
		return "General"
	}
	return c.Type
}

// SimplifiedText returns the simplified text, falling back to the cleaned
// original when no simplification was produced.
func (c *Clause) SimplifiedText() string {
	if c.Simplified == "" {
		return c.CleanedText
	}
	return c.Simplified
}

// IsSimplified reports whether the clause was actually rewritten. A clause
// whose simplified text is missing or identical to the original does not
// count.
func (c *Clause) IsSimplified() bool {
	return c.Simplified != "" && c.Simplified != c.CleanedText
}

// LegalTerm is one glossary entry identified in the document.
type LegalTerm struct {
	Term        string `json:"term"`
	Category    string `json:"category,omitempty"`
	Definition  string `json:"definition,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// DisplayCategory returns the term category, defaulting to "Legal Term".
func (t *LegalTerm) DisplayCategory() string {
	if t.Category == "" {
		return "Legal Term"
	}
	return t.Category
}

// Readability holds the word/sentence counts used to contrast original and
// simplified text. Missing fields decode to 0.
type Readability struct {
	WordCount     int `json:"word_count"`
	SentenceCount int `json:"sentence_count"`
}

// SimplifiedCount returns the number of clauses that were actually
// simplified.
func (d *ProcessedDocument) SimplifiedCount() int {
	count := 0
	for i := range d.Clauses {
		if d.Clauses[i].IsSimplified() {
			count++
		}
	}
	return count
}
