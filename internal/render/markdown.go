package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

// NotificationTitle is the push message title for a given day.
func NotificationTitle(now time.Time) string {
	return fmt.Sprintf("📰 Daily News Digest %s", now.Format("2006-01-02"))
}

// Markdown renders the notification payload: a header with the item count
// and generation date, then one block per item.
func Markdown(items []news.Item, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# 📰 Daily News Digest (%s)\n\n", now.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Today's selection: **%d** high-quality stories\n\n", len(items)))
	b.WriteString("---\n\n")

	for i, it := range items {
		title := orDefault(it.Title, "Untitled")
		source := orDefault(it.Source, "Unknown source")
		categories := strings.Join(it.Categories, " | ")
		summary := capSummary(bestSummary(it))

		b.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, title))
		b.WriteString(fmt.Sprintf("**Categories**: %s  \n", categories))
		b.WriteString(fmt.Sprintf("**Source**: %s | **Score**: %.1f  \n\n", source, it.Score))

		if summary != "" {
			b.WriteString(summary)
			b.WriteString("\n\n")
		}

		if it.Link != "" {
			b.WriteString(fmt.Sprintf("[📖 Read more](%s)\n\n", it.Link))
		}
		b.WriteString("---\n\n")
	}

	b.WriteString("\n💡 Tip: follow the links for the full stories\n")
	return b.String()
}
