package feed

import (
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/metrics"
	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

// FetchAll downloads and parses every feed URL, mapping entries into news
// items. A failing feed is logged and skipped; it contributes nothing.
func FetchAll(urls []string, timeout time.Duration) []news.Item {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	var all []news.Item
	successCount := 0

	for _, url := range urls {
		f, err := parser.ParseURL(url)
		if err != nil {
			logger.Error("error parsing RSS feed", "url", url, "error", err)
			continue
		}

		source := f.Title
		if source == "" {
			source = url
		}

		for _, entry := range f.Items {
			all = append(all, news.Item{
				Title:     entry.Title,
				Link:      entry.Link,
				Summary:   CleanHTML(entry.Description),
				Source:    source,
				Published: entry.PublishedParsed,
			})
		}

		successCount++
		logger.Info("loaded feed", "url", url, "items", len(f.Items))
	}

	logger.Info("processed RSS feeds", "ok", successCount, "total", len(urls))
	metrics.Global.AddItemsFetched(len(all))
	return all
}

// CleanHTML strips markup from a feed description, keeping the visible text.
// Feed summaries routinely arrive as HTML fragments.
func CleanHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	text := doc.Text()
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
