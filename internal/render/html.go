// Package render turns a ranked, summarized item list into the two output
// projections: a styled HTML document and a markdown notification payload.
// Both are pure functions of the item list and the given time.
package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

const summaryCap = 300

var htmlTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Daily News Digest - {{.Date}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 800px;
            margin: 0 auto;
            background: white;
            border-radius: 16px;
            box-shadow: 0 20px 60px rgba(0,0,0,0.3);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px;
            text-align: center;
        }
        .header h1 { font-size: 28px; margin-bottom: 10px; }
        .header p { opacity: 0.9; font-size: 14px; }
        .news-list { padding: 20px; }
        .news-item {
            border-bottom: 1px solid #e0e0e0;
            padding: 20px 0;
        }
        .news-item:last-child { border-bottom: none; }
        .news-number {
            display: inline-block;
            width: 32px;
            height: 32px;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            text-align: center;
            line-height: 32px;
            border-radius: 50%;
            font-weight: bold;
            margin-right: 12px;
        }
        .news-title {
            font-size: 18px;
            font-weight: 600;
            color: #2c3e50;
            margin-bottom: 8px;
            display: inline;
        }
        .news-meta { color: #7f8c8d; font-size: 13px; margin-bottom: 12px; }
        .category-tag {
            display: inline-block;
            background: #e3f2fd;
            color: #1976d2;
            padding: 3px 10px;
            border-radius: 12px;
            font-size: 12px;
            margin-right: 8px;
        }
        .category-tag.ai { background: #f3e5f5; color: #7b1fa2; }
        .news-summary { color: #34495e; font-size: 14px; margin: 12px 0; line-height: 1.8; }
        .news-link {
            display: inline-block;
            color: #667eea;
            text-decoration: none;
            font-weight: 500;
            font-size: 14px;
        }
        .news-link:hover { color: #764ba2; text-decoration: underline; }
        .score-badge {
            float: right;
            background: #ffd54f;
            color: #f57f17;
            padding: 4px 12px;
            border-radius: 12px;
            font-size: 12px;
            font-weight: bold;
        }
        .footer {
            background: #f8f9fa;
            padding: 20px;
            text-align: center;
            color: #7f8c8d;
            font-size: 13px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>📰 Daily News Digest</h1>
            <p>{{.Date}} | {{.Count}} hand-picked stories</p>
        </div>

        <div class="news-list">
{{range .Items}}            <div class="news-item">
                <div>
                    <span class="news-number">{{.Number}}</span>
                    <h2 class="news-title">{{.Title}}</h2>
                    <span class="score-badge">⭐ {{.Score}}</span>
                </div>
                <div class="news-meta">
                    {{range .Categories}}<span class="category-tag {{.Class}}">{{.Name}}</span>{{end}}
                    <span>Source: {{.Source}}</span>
                </div>
                <div class="news-summary">{{.Summary}}</div>
                <a href="{{.Link}}" class="news-link" target="_blank">Read more →</a>
            </div>
{{end}}        </div>

        <div class="footer">
            <p>💡 Generated automatically by the news collector</p>
            <p>Covering: US stock markets | AI &amp; robotics</p>
        </div>
    </div>
</body>
</html>
`))

type htmlCategory struct {
	Name  string
	Class string
}

type htmlItem struct {
	Number     int
	Title      string
	Score      string
	Categories []htmlCategory
	Source     string
	Summary    string
	Link       string
}

type htmlPage struct {
	Date  string
	Count int
	Items []htmlItem
}

// HTML renders the digest document.
func HTML(items []news.Item, now time.Time) (string, error) {
	page := htmlPage{
		Date:  now.Format("January 2, 2006"),
		Count: len(items),
	}

	for i, it := range items {
		cats := make([]htmlCategory, 0, len(it.Categories))
		for _, c := range it.Categories {
			class := ""
			if strings.Contains(c, "ai") {
				class = "ai"
			}
			cats = append(cats, htmlCategory{Name: c, Class: class})
		}

		page.Items = append(page.Items, htmlItem{
			Number:     i + 1,
			Title:      orDefault(it.Title, "Untitled"),
			Score:      fmt.Sprintf("%.1f", it.Score),
			Categories: cats,
			Source:     orDefault(it.Source, "Unknown source"),
			Summary:    capSummary(bestSummary(it)),
			Link:       orDefault(it.Link, "#"),
		})
	}

	var b strings.Builder
	if err := htmlTmpl.Execute(&b, page); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return b.String(), nil
}

// WriteHTML renders the digest and writes it to path, creating parent
// directories as needed.
func WriteHTML(items []news.Item, now time.Time, path string) error {
	doc, err := HTML(items, now)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	return nil
}

// bestSummary prefers the generated synopsis over the raw feed text.
func bestSummary(it news.Item) string {
	if it.AISummary != "" {
		return it.AISummary
	}
	return it.Summary
}

func capSummary(s string) string {
	if utf8.RuneCountInString(s) <= summaryCap {
		return s
	}
	return string([]rune(s)[:summaryCap]) + "..."
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
