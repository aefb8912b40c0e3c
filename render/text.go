package render

import (
	"regexp"
	"strings"

	"github.com/Pranathi1405/ClauseEase-AI/model"
)

var (
	htmlEscaper  = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[^.!?]+[.!?]+`)
)

// EscapeHTML escapes document-derived text for safe insertion into markup.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// SplitSentences collapses whitespace and splits text into sentences, where
// a sentence is any run of non-terminator characters ending in '.', '!' or
// '?'. Text without a terminator is a single sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return []string{text}
	}

	trimmed := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return trimmed
}

// Paragraphs groups consecutive sentences two at a time; a trailing odd
// sentence forms its own paragraph.
func Paragraphs(text string) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var paragraphs []string
	var current []string
	for i, sentence := range sentences {
		current = append(current, sentence)
		if (i+1)%2 == 0 || i == len(sentences)-1 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}
	return paragraphs
}

// FormatParagraphs renders text as escaped <p> blocks using the
// two-sentence grouping rule, or a fixed placeholder for empty input.
func FormatParagraphs(text string) string {
	paragraphs := Paragraphs(text)
	if len(paragraphs) == 0 {
		return `<p class="text-muted">No text available</p>`
	}

	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString(`<p class="comparison-paragraph">`)
		b.WriteString(EscapeHTML(p))
		b.WriteString("</p>")
	}
	return b.String()
}

// HighlightTerms wraps every case-insensitive word-boundary occurrence of
// each legal term in a highlight span carrying its explanation as a tooltip.
// Terms are applied in declaration order and each pass re-scans the already
// modified markup, so a term that matches inside a previously inserted span
// corrupts the nesting. That quirk is long-standing observable behavior and
// is kept as is.
func HighlightTerms(html string, terms []model.LegalTerm) string {
	for i := range terms {
		term := strings.TrimSpace(terms[i].Term)
		if term == "" {
			continue
		}

		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			continue
		}

		replacement := `<span class="highlight-legal" title="` +
			EscapeHTML(terms[i].Explanation) + `">` + EscapeHTML(term) + `</span>`
		html = re.ReplaceAllLiteralString(html, replacement)
	}
	return html
}
