package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Pranathi1405/ClauseEase-AI/model"
	"github.com/dustin/go-humanize"
)

// ResultsView is everything the results template needs, rendered once from
// the cached payload. Tab switching on the page is a pure class toggle; no
// fragment here is recomputed after this struct is built.
type ResultsView struct {
	Username        string
	Filename        string
	FileCount       string
	ClauseCount     int
	TermCount       int
	WordCount       string
	SimplifiedCount int

	ClausesSubtitle    string
	TermsSubtitle      string
	SimplifiedSubtitle string

	ClauseCards     template.HTML
	TermCards       template.HTML
	SimplifiedCards template.HTML

	OriginalWords       int
	OriginalSentences   int
	SimplifiedWords     int
	SimplifiedSentences int
	OriginalHTML        template.HTML
	SimplifiedHTML      template.HTML

	ClauseTypeChart template.HTML
	StatsChart      template.HTML
}

// BuildResultsView renders all tabs of the results screen from one
// processed document.
func BuildResultsView(doc *model.ProcessedDocument, filename, username string) ResultsView {
	termCount := len(doc.LegalTerms)

	return ResultsView{
		Username:        username,
		Filename:        filename,
		FileCount:       "1 file processed successfully",
		ClauseCount:     doc.ClauseCount,
		TermCount:       termCount,
		WordCount:       humanize.Comma(int64(doc.WordCount)),
		SimplifiedCount: doc.SimplifiedCount(),

		ClausesSubtitle:    fmt.Sprintf("%d clauses found in the document", doc.ClauseCount),
		TermsSubtitle:      fmt.Sprintf("%d legal terms identified in the document", termCount),
		SimplifiedSubtitle: "Plain language version of your contract",

		ClauseCards:     ClauseCards(doc.Clauses),
		TermCards:       TermCards(doc.LegalTerms),
		SimplifiedCards: SimplifiedCards(doc.Clauses),

		OriginalWords:       doc.OriginalReadability.WordCount,
		OriginalSentences:   doc.OriginalReadability.SentenceCount,
		SimplifiedWords:     doc.SimplifiedReadability.WordCount,
		SimplifiedSentences: doc.SimplifiedReadability.SentenceCount,
		OriginalHTML:        ComparisonOriginal(doc),
		SimplifiedHTML:      ComparisonSimplified(doc.Clauses),

		ClauseTypeChart: ChartSlot(doc.ClauseTypeChart, "Clause Types Distribution"),
		StatsChart:      ChartSlot(doc.StatsChart, "Text Statistics Comparison"),
	}
}

// ClauseCards renders one card per clause in received order, or the fixed
// empty state.
func ClauseCards(clauses []model.Clause) template.HTML {
	if len(clauses) == 0 {
		return emptyState("📋", "No clauses found in this document.")
	}

	var b strings.Builder
	for i := range clauses {
		clause := &clauses[i]
		b.WriteString(`<div class="clause-card">`)
		b.WriteString(`<div class="clause-header-row">`)
		fmt.Fprintf(&b, `<div class="clause-title">Clause %d</div>`, clause.Index)
		fmt.Fprintf(&b, `<span class="clause-type-badge">%s</span>`, EscapeHTML(clause.DisplayType()))
		b.WriteString(`</div>`)
		fmt.Fprintf(&b, `<div class="clause-original">%s</div>`, EscapeHTML(clause.CleanedText))
		b.WriteString(`</div>`)
	}
	return template.HTML(b.String())
}

// TermCards renders the legal-term glossary in received order, or the fixed
// empty state.
func TermCards(terms []model.LegalTerm) template.HTML {
	if len(terms) == 0 {
		return emptyState("⚖️", "No legal terms found in this document.")
	}

	var b strings.Builder
	b.WriteString(`<div class="terms-grid">`)
	for i := range terms {
		term := &terms[i]
		b.WriteString(`<div class="term-card">`)
		fmt.Fprintf(&b, `<div class="term-name">%s</div>`, EscapeHTML(term.Term))
		fmt.Fprintf(&b, `<span class="term-category">%s</span>`, EscapeHTML(term.DisplayCategory()))
		if term.Definition != "" {
			fmt.Fprintf(&b, `<div class="term-definition">%s</div>`, EscapeHTML(term.Definition))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return template.HTML(b.String())
}

// SimplifiedCards renders the simplified text of each clause, falling back
// to the cleaned original where no simplification exists.
func SimplifiedCards(clauses []model.Clause) template.HTML {
	if len(clauses) == 0 {
		return emptyState("✨", "No simplified text available.")
	}

	var b strings.Builder
	for i := range clauses {
		clause := &clauses[i]
		b.WriteString(`<div class="simplified-card">`)
		fmt.Fprintf(&b, `<div class="simplified-card-header">Clause %d</div>`, clause.Index)
		fmt.Fprintf(&b, `<div class="simplified-text">%s</div>`, EscapeHTML(clause.SimplifiedText()))
		b.WriteString(`</div>`)
	}
	return template.HTML(b.String())
}

// ComparisonOriginal paragraphs the raw source text and highlights every
// legal-term occurrence in it.
func ComparisonOriginal(doc *model.ProcessedDocument) template.HTML {
	text := doc.RawText
	if text == "" {
		text = "No text available"
	}
	return template.HTML(HighlightTerms(FormatParagraphs(text), doc.LegalTerms))
}

// ComparisonSimplified paragraphs the clauses' simplified text joined with
// single spaces, without highlighting.
func ComparisonSimplified(clauses []model.Clause) template.HTML {
	if len(clauses) == 0 {
		return `<p class="text-muted">No simplified text available</p>`
	}

	parts := make([]string, 0, len(clauses))
	for i := range clauses {
		parts = append(parts, clauses[i].SimplifiedText())
	}
	return template.HTML(FormatParagraphs(strings.Join(parts, " ")))
}

// ChartSlot renders a pre-built chart image reference as-is, or the fixed
// placeholder when the backend sent none.
func ChartSlot(src, alt string) template.HTML {
	if src == "" {
		return `<p class="chart-placeholder">Chart not available</p>`
	}
	return template.HTML(fmt.Sprintf(`<img src="%s" alt="%s" class="chart-image">`, EscapeHTML(src), EscapeHTML(alt)))
}

func emptyState(icon, message string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<div class="empty-state"><div class="empty-state-icon">%s</div><p>%s</p></div>`,
		icon, message,
	))
}
