package news

import (
	"strings"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/metrics"
)

// KeywordSets is the fixed topic taxonomy used by the keyword filter. Each
// set maps to one category tag; an item matching keywords from both sets
// carries both tags.
type KeywordSets struct {
	Markets []string
	AI      []string
}

// containsAny reports whether the lowercased text contains any keyword.
// Keywords are matched as plain substrings, same as the scoring tables.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Deduplicate removes items whose exact link was already seen, keeping the
// first occurrence. Items with an empty link are never deduplicated against
// each other; duplicated linkless items are an accepted limitation.
func Deduplicate(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))

	for _, it := range items {
		if it.Link != "" {
			if _, dup := seen[it.Link]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			seen[it.Link] = struct{}{}
		}
		out = append(out, it)
	}
	return out
}

// FilterByKeywords keeps items whose title+summary contains at least one
// keyword from either set and tags them with the matching categories.
// Items matching neither set are dropped.
func FilterByKeywords(items []Item, sets KeywordSets) []Item {
	out := make([]Item, 0, len(items))

	for _, it := range items {
		text := strings.ToLower(it.Title + " " + it.Summary)

		hasMarkets := containsAny(text, sets.Markets)
		hasAI := containsAny(text, sets.AI)
		if !hasMarkets && !hasAI {
			continue
		}

		it.Categories = nil
		if hasMarkets {
			it.Categories = append(it.Categories, CategoryMarkets)
		}
		if hasAI {
			it.Categories = append(it.Categories, CategoryAI)
		}
		out = append(out, it)
	}

	logger.Info("keyword filter done", "kept", len(out), "dropped", len(items)-len(out))
	return out
}

// FilterByDate keeps items published within the last `days` days. Items with
// no parseable timestamp are kept; ambiguous dates favor retention.
func FilterByDate(items []Item, days int, now time.Time) []Item {
	if days <= 0 {
		days = 1
	}
	cutoff := now.AddDate(0, 0, -days)

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Published == nil || !it.Published.Before(cutoff) {
			out = append(out, it)
		}
	}
	return out
}
