package rank

import (
	"regexp"

	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

// SourceWeight is one entry of the source reputation table. The table is a
// slice, not a map: first match wins and table order is the tie-break.
type SourceWeight struct {
	Name   string
	Weight float64
}

// KeywordWeight is one entry of the keyword importance table. Every keyword
// hit compounds multiplicatively.
type KeywordWeight struct {
	Keyword string
	Weight  float64
}

// InfoCategory is one information-density category. The category counts as
// matched when any of its patterns hits.
type InfoCategory struct {
	Name     string
	Patterns []*regexp.Regexp
}

// Weights holds all fixed scoring tables. The scoring engine itself carries
// no business data, so it can be exercised against synthetic tables.
type Weights struct {
	Sources  []SourceWeight
	Keywords []KeywordWeight

	Clickbait    []*regexp.Regexp
	TitleNumber  *regexp.Regexp
	SummaryQuote *regexp.Regexp

	InfoCategories []InfoCategory
}

// DefaultWeights returns the production scoring tables.
func DefaultWeights() Weights {
	return Weights{
		Sources: []SourceWeight{
			{"Bloomberg", 1.5},
			{"Reuters", 1.5},
			{"CNBC", 1.3},
			{"Financial Times", 1.5},
			{"Wall Street Journal", 1.5},
			{"MIT Technology Review", 1.4},
			{"Nature", 1.5},
			{"Science", 1.5},
			{"TechCrunch", 1.2},
			{"Wired", 1.2},
			{"The Verge", 1.2},
			{"Ars Technica", 1.3},
		},
		Keywords: []KeywordWeight{
			{"Federal Reserve", 2.0},
			{"interest rate", 1.8},
			{"market crash", 2.0},
			{"earnings", 1.5},
			{"breakthrough", 1.8},
			{"AGI", 2.0},
			{"humanoid robot", 1.7},
			{"S&P 500", 1.3},
			{"NASDAQ", 1.3},
			{"AI", 1.2},
			{"machine learning", 1.2},
		},
		Clickbait: []*regexp.Regexp{
			regexp.MustCompile(`(?i)you won't believe`),
			regexp.MustCompile(`(?i)shocking`),
			regexp.MustCompile(`!\s*!\s*!`),
			regexp.MustCompile(`(?i)click here`),
			regexp.MustCompile(`(?i)amazing trick`),
			regexp.MustCompile(`(?i)doctors hate`),
		},
		TitleNumber:  regexp.MustCompile(`\d+%|\$\d+|\d+年|\d+月|\d+日`),
		SummaryQuote: regexp.MustCompile("[\"'“”]"),
		InfoCategories: []InfoCategory{
			{
				Name: "numeric",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`\d+%`),
					regexp.MustCompile(`\$\d+`),
					regexp.MustCompile(`(?i)\d+\s*(million|billion|trillion)`),
					regexp.MustCompile(`\d+亿`),
					regexp.MustCompile(`\d+万`),
				},
			},
			{
				Name: "temporal",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`\d{4}年`),
					regexp.MustCompile(`\d+月`),
					regexp.MustCompile(`(?i)today|yesterday|tomorrow|this week`),
					regexp.MustCompile(`今天|昨天|明天`),
				},
			},
			{
				Name: "institutions",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)Federal Reserve|SEC|FDA|NASA|Google|Apple|Microsoft|特斯拉|苹果|微软`),
				},
			},
			{
				Name: "jargon",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)AI|API|GDP|CPI|IPO|merger|acquisition|算法|模型|芯片`),
				},
			},
			{
				Name: "causal",
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)because|due to|as a result|caused by|因为|由于|导致`),
				},
			},
		},
	}
}

// TrackedCategories are the category tags balanced by Diversify.
func TrackedCategories() []string {
	return []string{news.CategoryMarkets, news.CategoryAI}
}
