package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

func sampleItems() []news.Item {
	return []news.Item{
		{
			Title:      "Fed raises rates 0.25%",
			Link:       "https://example.com/fed",
			Summary:    "The raw feed summary.",
			AISummary:  "The generated synopsis.",
			Source:     "Bloomberg",
			Categories: []string{news.CategoryMarkets},
			Score:      2.4,
		},
		{
			Title:      "Humanoid robot demo",
			Link:       "https://example.com/robot",
			Summary:    "Robot walks.",
			Source:     "MIT Technology Review",
			Categories: []string{news.CategoryAI},
			Score:      1.8,
		},
	}
}

func TestHTMLContainsItemsInOrder(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	doc, err := HTML(sampleItems(), now)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	fed := strings.Index(doc, "Fed raises rates 0.25%")
	robot := strings.Index(doc, "Humanoid robot demo")
	if fed < 0 || robot < 0 {
		t.Fatal("rendered document missing item titles")
	}
	if fed > robot {
		t.Error("items should appear in ranked order")
	}
	if !strings.Contains(doc, "June 15, 2025") {
		t.Error("document should carry the digest date")
	}
	if !strings.Contains(doc, "The generated synopsis.") {
		t.Error("generated synopsis should be preferred over the raw summary")
	}
	if !strings.Contains(doc, "Robot walks.") {
		t.Error("raw summary should be used when no synopsis exists")
	}
	if !strings.Contains(doc, `category-tag ai`) {
		t.Error("ai category should carry its style class")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	items := []news.Item{{Title: `<script>alert("x")</script>`, Link: "https://example.com/a"}}
	doc, err := HTML(items, time.Now())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(doc, "<script>alert") {
		t.Error("item fields must be HTML-escaped")
	}
}

func TestWriteHTMLCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "news_20250615.html")
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)

	if err := WriteHTML(sampleItems(), now, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("written file does not look like an HTML document")
	}
}

func TestMarkdownLayout(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	md := Markdown(sampleItems(), now)

	if !strings.Contains(md, "Daily News Digest (2025-06-15)") {
		t.Error("header should carry the date")
	}
	if !strings.Contains(md, "**2** high-quality stories") {
		t.Error("header should carry the item count")
	}
	if !strings.Contains(md, "## 1. Fed raises rates 0.25%") {
		t.Error("first item should be numbered 1")
	}
	if !strings.Contains(md, "## 2. Humanoid robot demo") {
		t.Error("second item should be numbered 2")
	}
	if !strings.Contains(md, "[📖 Read more](https://example.com/fed)") {
		t.Error("items with links should render a read-more link")
	}
	if !strings.Contains(md, "**Source**: Bloomberg | **Score**: 2.4") {
		t.Error("source and score line missing")
	}
}

func TestMarkdownOmitsLinkWhenEmpty(t *testing.T) {
	items := []news.Item{{Title: "No link item", Summary: "text"}}
	md := Markdown(items, time.Now())
	if strings.Contains(md, "Read more") {
		t.Error("linkless item should not render a read-more link")
	}
}

func TestNotificationTitle(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	if got := NotificationTitle(now); got != "📰 Daily News Digest 2025-06-15" {
		t.Errorf("NotificationTitle() = %q", got)
	}
}

func TestCapSummary(t *testing.T) {
	long := strings.Repeat("字", 350)
	got := capSummary(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long summary should be capped with an ellipsis")
	}
	short := "fits"
	if capSummary(short) != short {
		t.Error("short summary should pass through unchanged")
	}
}
