// Package summarize produces per-item synopses, either by smart truncation
// or by a generative backend with truncation as the universal fallback.
package summarize

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

// Summarizer turns one item into a human-readable synopsis. Implementations
// never fail: whatever goes wrong, some text comes back.
type Summarizer interface {
	Summarize(ctx context.Context, it *news.Item) string
}

// TruncateSummarizer is the no-backend implementation: the raw summary (or
// the title when the summary is empty) cut at maxLength.
type TruncateSummarizer struct {
	MaxLength int
}

func NewTruncateSummarizer(maxLength int) *TruncateSummarizer {
	if maxLength <= 0 {
		maxLength = 200
	}
	return &TruncateSummarizer{MaxLength: maxLength}
}

func (t *TruncateSummarizer) Summarize(_ context.Context, it *news.Item) string {
	text := it.Summary
	if text == "" {
		text = it.Title
	}
	return SmartTruncate(text, t.MaxLength)
}

var sentenceEnders = []string{"。", "！", "？", ". ", "! ", "? "}

// SmartTruncate cuts text to at most max runes, preferring a sentence
// boundary when one sits past 70% of the budget; otherwise it hard-cuts and
// appends an ellipsis marker.
func SmartTruncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	truncated := string(runes[:max])

	best := -1
	for _, sep := range sentenceEnders {
		if idx := strings.LastIndex(truncated, sep); idx > best {
			best = idx
		}
	}
	if best >= 0 {
		// Byte offset back to rune offset for the 70% check.
		pos := utf8.RuneCountInString(truncated[:best])
		if float64(pos) > float64(max)*0.7 {
			return truncated[:best] + string([]rune(truncated[best:])[0])
		}
	}

	return truncated + "..."
}

// Batch fills AISummary on every item in place.
func Batch(ctx context.Context, s Summarizer, items []news.Item) {
	for i := range items {
		if items[i].AISummary != "" {
			continue
		}
		items[i].AISummary = s.Summarize(ctx, &items[i])
	}
}
