// Package market builds a daily US market snapshot from Yahoo Finance
// quotes and turns it into an analysis item pinned to the top of the digest.
package market

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/piquette/finance-go/quote"

	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

type symbolEntry struct {
	Name   string
	Symbol string
}

var indexSymbols = []symbolEntry{
	{"S&P 500", "^GSPC"},
	{"Dow Jones", "^DJI"},
	{"NASDAQ", "^IXIC"},
	{"Russell 2000", "^RUT"},
	{"VIX", "^VIX"},
}

var sectorSymbols = []symbolEntry{
	{"Technology", "XLK"},
	{"Financials", "XLF"},
	{"Health Care", "XLV"},
	{"Energy", "XLE"},
	{"Consumer", "XLY"},
	{"Industrials", "XLI"},
	{"Materials", "XLB"},
	{"Utilities", "XLU"},
}

var stockSymbols = []symbolEntry{
	{"Apple", "AAPL"},
	{"Microsoft", "MSFT"},
	{"Google", "GOOGL"},
	{"Amazon", "AMZN"},
	{"Tesla", "TSLA"},
	{"NVIDIA", "NVDA"},
	{"Meta", "META"},
	{"Netflix", "NFLX"},
}

// Mover is one quoted instrument with its daily move.
type Mover struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// Data is a point-in-time market snapshot.
type Data struct {
	Date    string  `json:"date"`
	Indices []Mover `json:"indices"`
	Sectors []Mover `json:"sectors"`
	Gainers []Mover `json:"top_gainers"`
	Losers  []Mover `json:"top_losers"`
}

// TextGenerator produces free-form commentary; the Gemini summarizer
// satisfies it. A nil generator means deterministic summaries only.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Analyzer fetches market data and writes the daily commentary.
type Analyzer struct {
	gen TextGenerator
}

func NewAnalyzer(gen TextGenerator) *Analyzer {
	return &Analyzer{gen: gen}
}

// Snapshot quotes every tracked symbol. A failing symbol is skipped; only a
// fully empty snapshot is an error.
func (a *Analyzer) Snapshot(now time.Time) (*Data, error) {
	data := &Data{Date: now.Format("2006-01-02")}

	data.Indices = fetchMovers(indexSymbols)
	data.Sectors = fetchMovers(sectorSymbols)

	stocks := fetchMovers(stockSymbols)
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].ChangePct > stocks[j].ChangePct })
	for i, s := range stocks {
		if i < 3 && s.ChangePct > 0 {
			data.Gainers = append(data.Gainers, s)
		}
		if i >= len(stocks)-3 && s.ChangePct < 0 {
			data.Losers = append(data.Losers, s)
		}
	}

	if len(data.Indices) == 0 && len(data.Sectors) == 0 {
		return nil, fmt.Errorf("no market data available")
	}
	return data, nil
}

func fetchMovers(symbols []symbolEntry) []Mover {
	var out []Mover
	for _, s := range symbols {
		q, err := quote.Get(s.Symbol)
		if err != nil || q == nil {
			logger.Warn("quote fetch failed", "symbol", s.Symbol, "error", err)
			continue
		}
		out = append(out, Mover{
			Name:      s.Name,
			Symbol:    s.Symbol,
			Price:     q.RegularMarketPrice,
			ChangePct: q.RegularMarketChangePercent,
		})
	}
	return out
}

// Analysis writes the commentary for a snapshot: backend-generated when a
// generator is wired, with the deterministic summary as fallback.
func (a *Analyzer) Analysis(ctx context.Context, data *Data) string {
	if a.gen == nil {
		return simpleSummary(data)
	}

	prompt := fmt.Sprintf(`You are an experienced US equity market analyst.
Based on today's market data, write a concise market report (400-600 words)
covering: overall index performance including the VIX, the best and worst
sectors with likely drivers, notable single-stock moves, and a short-term
plus medium-term outlook. Stay objective and data-driven.

Today's data:
%s

Output the report directly, with short section headings.`, formatData(data))

	analysis, err := a.gen.GenerateText(ctx, prompt)
	if err != nil {
		logger.Error("market analysis generation failed, using data summary", "error", err)
		return simpleSummary(data)
	}
	return analysis
}

// NewsItem packages the snapshot and its commentary as a synthetic digest
// item. The hardcoded score pins it above every ranked story.
func (a *Analyzer) NewsItem(ctx context.Context, now time.Time) (*news.Item, error) {
	data, err := a.Snapshot(now)
	if err != nil {
		return nil, err
	}

	published := now
	return &news.Item{
		Title:      fmt.Sprintf("📊 US Market Overview %s", data.Date),
		Link:       "#market-analysis",
		Summary:    "Daily index moves, sector rotation, single-stock swings and outlook",
		Source:     "Market data analysis",
		Published:  &published,
		Categories: []string{news.CategoryMarkets, news.CategoryMarketAnalysis},
		Score:      999.0,
		AISummary:  a.Analysis(ctx, data),
	}, nil
}

func formatData(data *Data) string {
	var b strings.Builder

	b.WriteString("[Indices]\n")
	for _, m := range data.Indices {
		fmt.Fprintf(&b, "  %s: %.2f (%+.2f%%)\n", m.Name, m.Price, m.ChangePct)
	}

	b.WriteString("\n[Sectors]\n")
	for _, m := range sortedByChange(data.Sectors) {
		fmt.Fprintf(&b, "  %s: %+.2f%%\n", m.Name, m.ChangePct)
	}

	b.WriteString("\n[Top gainers]\n")
	for _, m := range data.Gainers {
		fmt.Fprintf(&b, "  %s (%s): $%.2f (%+.2f%%)\n", m.Name, m.Symbol, m.Price, m.ChangePct)
	}

	b.WriteString("\n[Top losers]\n")
	for _, m := range data.Losers {
		fmt.Fprintf(&b, "  %s (%s): $%.2f (%+.2f%%)\n", m.Name, m.Symbol, m.Price, m.ChangePct)
	}

	return b.String()
}

func simpleSummary(data *Data) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 📊 US Market Overview %s\n\n", data.Date)

	b.WriteString("## Major indices\n\n")
	for _, m := range data.Indices {
		emoji := "🟢"
		if m.ChangePct < 0 {
			emoji = "🔴"
		}
		fmt.Fprintf(&b, "%s **%s**: %.2f (%+.2f%%)\n", emoji, m.Name, m.Price, m.ChangePct)
	}

	sectors := sortedByChange(data.Sectors)
	if len(sectors) > 0 {
		b.WriteString("\n## Sectors\n\n**Leading:**\n")
		for i, m := range sectors {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "- %s: %+.2f%%\n", m.Name, m.ChangePct)
		}
		b.WriteString("\n**Lagging:**\n")
		start := len(sectors) - 3
		if start < 0 {
			start = 0
		}
		for _, m := range sectors[start:] {
			fmt.Fprintf(&b, "- %s: %+.2f%%\n", m.Name, m.ChangePct)
		}
	}

	if len(data.Gainers)+len(data.Losers) > 0 {
		b.WriteString("\n## Notable moves\n\n**Gainers:**\n")
		for _, m := range data.Gainers {
			fmt.Fprintf(&b, "- %s (%s): $%.2f (%+.2f%%)\n", m.Name, m.Symbol, m.Price, m.ChangePct)
		}
		b.WriteString("\n**Losers:**\n")
		for _, m := range data.Losers {
			fmt.Fprintf(&b, "- %s (%s): $%.2f (%+.2f%%)\n", m.Name, m.Symbol, m.Price, m.ChangePct)
		}
	}

	return b.String()
}

func sortedByChange(movers []Mover) []Mover {
	out := make([]Mover, len(movers))
	copy(out, movers)
	sort.Slice(out, func(i, j int) bool { return out[i].ChangePct > out[j].ChangePct })
	return out
}
