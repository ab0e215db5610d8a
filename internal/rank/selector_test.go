package rank

import (
	"fmt"
	"testing"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

func scoredItems(n int, tag func(i int) []string) []news.Item {
	items := make([]news.Item, n)
	for i := 0; i < n; i++ {
		items[i] = news.Item{
			Title:      fmt.Sprintf("item %d", i),
			Link:       fmt.Sprintf("https://example.com/%d", i),
			Score:      float64(n - i),
			Categories: tag(i),
		}
	}
	return items
}

func TestRankOrderAndTruncation(t *testing.T) {
	s := NewScorer(DefaultWeights())
	now := time.Now()

	items := []news.Item{
		{Title: "small local note", Link: "https://example.com/1"},
		{Title: "Fed raises rates 0.25% as earnings beat expectations", Link: "https://example.com/2", Source: "Bloomberg"},
		{Title: "AI breakthrough: humanoid robot walks 10% faster", Link: "https://example.com/3", Source: "MIT Technology Review"},
		{Title: "another small note", Link: "https://example.com/4"},
	}

	out := Rank(s, items, 3, now)
	if len(out) > 3 {
		t.Fatalf("rank returned %d items, want at most 3", len(out))
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i].Score < out[i+1].Score {
			t.Errorf("output not sorted descending at %d: %f < %f", i, out[i].Score, out[i+1].Score)
		}
	}
}

func TestRankStableOnTies(t *testing.T) {
	// Two identical items tie exactly; stable sort keeps input order.
	s := NewScorer(Weights{})
	now := time.Now()

	items := []news.Item{
		{Title: "identical headline for the tie-break check", Link: "first"},
		{Title: "identical headline for the tie-break check", Link: "second"},
	}
	out := Rank(s, items, 10, now)
	if out[0].Link != "first" || out[1].Link != "second" {
		t.Errorf("tie order not preserved: got %s, %s", out[0].Link, out[1].Link)
	}
}

func TestDiversifyBalancesTwoCategories(t *testing.T) {
	// 15 "A" items then 15 "B" items, scores strictly descending 30..1.
	items := scoredItems(30, func(i int) []string {
		if i < 15 {
			return []string{news.CategoryMarkets}
		}
		return []string{news.CategoryAI}
	})

	out := Diversify(items, 10, TrackedCategories())
	if len(out) != 10 {
		t.Fatalf("expected 10 items, got %d", len(out))
	}

	counts := map[string]int{}
	for _, it := range out {
		for _, c := range it.Categories {
			counts[c]++
		}
	}
	if counts[news.CategoryMarkets] != 5 || counts[news.CategoryAI] != 5 {
		t.Errorf("expected 5/5 split, got %v", counts)
	}
}

func TestDiversifyCapRelaxationWhenAllAtCap(t *testing.T) {
	// Dual-tagged items max out both caps after 5 admissions; the remaining
	// slots can only fill because the cap stops being enforced once every
	// tracked category has reached it.
	items := scoredItems(12, func(i int) []string {
		return []string{news.CategoryMarkets, news.CategoryAI}
	})

	out := Diversify(items, 10, TrackedCategories())
	if len(out) != 10 {
		t.Errorf("expected full selection once caps relax, got %d", len(out))
	}
}

func TestDiversifyUntrackedAlwaysAdmitted(t *testing.T) {
	items := scoredItems(10, func(i int) []string {
		return []string{"weather"}
	})

	out := Diversify(items, 4, TrackedCategories())
	if len(out) != 4 {
		t.Errorf("untracked items should always be admitted, got %d", len(out))
	}
}

func TestDiversifyNeverExceedsTopN(t *testing.T) {
	items := scoredItems(50, func(i int) []string { return nil })
	out := Diversify(items, 7, TrackedCategories())
	if len(out) > 7 {
		t.Errorf("diversify returned %d items, want at most 7", len(out))
	}
}

func TestSelectTopBackfillsAndResorts(t *testing.T) {
	s := NewScorer(Weights{})
	now := time.Now()

	// All items are markets-tagged: diversify alone can only admit
	// floor(6/2)=3, so backfill must top it up to 6, and the result must
	// come back in strict score order.
	items := make([]news.Item, 12)
	for i := range items {
		items[i] = news.Item{
			Title:      fmt.Sprintf("markets story number %d with some length", i),
			Link:       fmt.Sprintf("https://example.com/m/%d", i),
			Summary:    fmt.Sprintf("Summary %d with enough text to be plausible and useful.", i),
			Categories: []string{news.CategoryMarkets},
		}
	}

	out := SelectTop(s, items, 6, TrackedCategories(), now)
	if len(out) != 6 {
		t.Fatalf("expected 6 items after backfill, got %d", len(out))
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i].Score < out[i+1].Score {
			t.Errorf("final output not score-sorted at %d", i)
		}
	}
}

func TestSelectTopShortInput(t *testing.T) {
	s := NewScorer(Weights{})
	now := time.Now()

	items := scoredItems(3, func(i int) []string { return nil })
	out := SelectTop(s, items, 10, TrackedCategories(), now)
	if len(out) != 3 {
		t.Errorf("expected all 3 items back on shortfall, got %d", len(out))
	}
}
