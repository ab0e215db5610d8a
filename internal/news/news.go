package news

import "time"

// Category tags assigned during keyword filtering.
const (
	CategoryMarkets        = "markets"
	CategoryAI             = "ai-robotics"
	CategoryMarketAnalysis = "market-analysis"
)

// Item is a single collected news record. Title, Link, Summary, Source and
// Published come from the fetch step and are never rewritten; Categories,
// Score and AISummary are filled in by later pipeline stages.
type Item struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Summary   string     `json:"summary"`
	Source    string     `json:"source"`
	Published *time.Time `json:"published,omitempty"`

	Categories []string `json:"categories,omitempty"`
	Score      float64  `json:"score"`
	AISummary  string   `json:"ai_summary,omitempty"`
}

// HasCategory reports whether the item carries the given category tag.
func (it *Item) HasCategory(cat string) bool {
	for _, c := range it.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Age returns how old the item is at the given instant. Items without a
// parsed timestamp report zero age; they are treated as fresh everywhere.
func (it *Item) Age(now time.Time) time.Duration {
	if it.Published == nil {
		return 0
	}
	return now.Sub(*it.Published)
}
