package rag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// AssembleContext combines the static base template with retrieved results
// into a single prompt context. Each result is listed 1-indexed with its
// category, title, content truncated to perResultBudget runes, and its
// similarity as a percentage. With no results the base template is returned
// unchanged; retrieval finding nothing must never break the conversation.
func AssembleContext(baseTemplate string, results []SearchResult, perResultBudget int) string {
	if len(results) == 0 {
		return baseTemplate
	}

	var b strings.Builder
	b.WriteString(baseTemplate)
	b.WriteString("\n\n関連する情報:\n")

	for i, result := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. 【%s】%s\n", i+1, result.Category, result.Title)
		fmt.Fprintf(&b, "   %s\n", truncate(result.Content, perResultBudget))
		fmt.Fprintf(&b, "   (関連度: %.1f%%)\n", result.Similarity*100)
	}

	b.WriteString("\n上記の関連情報を参考にして、より具体的で正確な回答を提供してください。")
	return b.String()
}

// truncate cuts s to at most budget runes, marking the cut with an ellipsis.
func truncate(s string, budget int) string {
	if budget <= 0 || utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget]) + "…"
}
