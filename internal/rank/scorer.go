package rank

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

const maxQualityMultiplier = 2.0

var (
	sentenceSplit = regexp.MustCompile(`[.!?。！？]`)
	anyDigit      = regexp.MustCompile(`\d`)
)

// Scorer computes a multiplicative relevance/quality score for one item.
// Scoring is pure given the item, the tables and the reference time; it
// never fails.
type Scorer struct {
	w Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{w: w}
}

// Score seeds at 1.0 and applies source reputation, keyword importance,
// recency and content quality as multipliers, so the absence of any signal
// leaves the score unchanged.
func (s *Scorer) Score(it *news.Item, now time.Time) float64 {
	score := 1.0

	// Source reputation: first matching table entry wins.
	source := strings.ToLower(it.Source)
	for _, sw := range s.w.Sources {
		if strings.Contains(source, strings.ToLower(sw.Name)) {
			score *= sw.Weight
			break
		}
	}

	// Keyword importance: every hit compounds. Keyword-dense items can score
	// high on purpose.
	text := strings.ToLower(it.Title + " " + it.Summary)
	for _, kw := range s.w.Keywords {
		if strings.Contains(text, strings.ToLower(kw.Keyword)) {
			score *= kw.Weight
		}
	}

	// Recency: fresh items get a flat boost, stale or undated ones none.
	if it.Published != nil {
		age := now.Sub(*it.Published)
		switch {
		case age < 24*time.Hour:
			score *= 1.3
		case age < 48*time.Hour:
			score *= 1.1
		}
	}

	score *= s.contentQuality(it)
	return score
}

// contentQuality composes title, summary and information-density sub-scores,
// clamped at 2.0 overall.
func (s *Scorer) contentQuality(it *news.Item) float64 {
	q := s.titleQuality(it.Title)
	q *= s.summaryQuality(it.Summary)
	q *= s.infoDensity(it.Title, it.Summary)

	if q > maxQualityMultiplier {
		return maxQualityMultiplier
	}
	return q
}

func (s *Scorer) titleQuality(title string) float64 {
	if title == "" {
		return 0.8
	}

	score := 1.0
	n := utf8.RuneCountInString(title)
	switch {
	case n >= 30 && n <= 120:
		score *= 1.1
	case n < 15:
		score *= 0.9
	case n > 200:
		score *= 0.9
	}

	for _, p := range s.w.Clickbait {
		if p.MatchString(title) {
			score *= 0.7
			break
		}
	}

	if s.w.TitleNumber != nil && s.w.TitleNumber.MatchString(title) {
		score *= 1.15
	}
	return score
}

func (s *Scorer) summaryQuality(summary string) float64 {
	if summary == "" {
		return 0.9
	}

	score := 1.0
	n := utf8.RuneCountInString(summary)
	switch {
	case n < 50:
		score *= 0.9
	case n >= 100 && n <= 500:
		score *= 1.2
	}

	// Fragments shorter than 10 runes don't count as sentences.
	count := 0
	for _, frag := range sentenceSplit.Split(summary, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(frag)) > 10 {
			count++
		}
	}
	if count >= 2 && count <= 5 {
		score *= 1.1
	}

	if anyDigit.MatchString(summary) {
		score *= 1.1
	}
	if s.w.SummaryQuote != nil && s.w.SummaryQuote.MatchString(summary) {
		score *= 1.05
	}
	return score
}

func (s *Scorer) infoDensity(title, summary string) float64 {
	text := strings.ToLower(title + " " + summary)

	matched := 0
	for _, cat := range s.w.InfoCategories {
		for _, p := range cat.Patterns {
			if p.MatchString(text) {
				matched++
				break
			}
		}
	}

	switch {
	case matched >= 4:
		return 1.3
	case matched == 3:
		return 1.2
	case matched == 2:
		return 1.1
	case matched == 0:
		return 0.95
	}
	return 1.0
}
