package rank

import (
	"sort"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

// Rank scores every item, sorts descending by score (stable, so ties keep
// input order) and returns the first topN. The input slice is scored and
// reordered in place.
func Rank(s *Scorer, items []news.Item, topN int, now time.Time) []news.Item {
	for i := range items {
		items[i].Score = s.Score(&items[i], now)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	if len(items) > 0 {
		logger.Info("ranked news",
			"count", len(items),
			"top_score", items[0].Score,
			"bottom_score", items[len(items)-1].Score)
	}

	if topN > 0 && len(items) > topN {
		return items[:topN]
	}
	return items
}

// Diversify walks an already score-sorted list and admits items greedily
// while keeping each tracked category under floor(topN/2) occurrences. Once
// every tracked category has reached the cap the cap stops being enforced,
// so one dominant category late in the list cannot starve the selection.
// Items with only untracked categories are always admitted. Single forward
// pass; the result is a reasonable balance, not an optimal one.
func Diversify(items []news.Item, topN int, tracked []string) []news.Item {
	capPerCat := topN / 2
	counts := make(map[string]int, len(tracked))
	for _, c := range tracked {
		counts[c] = 0
	}

	allAtCap := func() bool {
		for _, n := range counts {
			if n < capPerCat {
				return false
			}
		}
		return true
	}

	selected := make([]news.Item, 0, topN)
	for _, it := range items {
		if len(selected) >= topN {
			break
		}

		canAdd := true
		for _, c := range it.Categories {
			if n, isTracked := counts[c]; isTracked && n >= capPerCat {
				if allAtCap() {
					canAdd = true
				} else {
					canAdd = false
				}
				break
			}
		}
		if !canAdd {
			continue
		}

		selected = append(selected, it)
		for _, c := range it.Categories {
			if _, isTracked := counts[c]; isTracked {
				counts[c]++
			}
		}
	}

	logger.Info("diversity selection done", "selected", len(selected), "distribution", counts)
	return selected
}

// SelectTop combines ranking and diversification the way a single run uses
// them: rank a 3x superset for headroom, diversify down to topN, backfill
// with the highest-scoring leftovers when diversification under-fills, then
// re-sort strictly by score. Diversity decides membership, not final order.
func SelectTop(s *Scorer, items []news.Item, topN int, tracked []string, now time.Time) []news.Item {
	ranked := Rank(s, items, topN*3, now)

	if len(ranked) < topN {
		logger.Warn("fewer items than target", "have", len(ranked), "want", topN)
		out := make([]news.Item, len(ranked))
		copy(out, ranked)
		return out
	}

	top := Diversify(ranked, topN, tracked)

	if len(top) < topN {
		picked := make(map[string]struct{}, len(top))
		for _, it := range top {
			picked[it.Link] = struct{}{}
		}
		for _, it := range ranked {
			if len(top) >= topN {
				break
			}
			if _, ok := picked[it.Link]; ok {
				continue
			}
			top = append(top, it)
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})
	if len(top) > topN {
		top = top[:topN]
	}
	return top
}
