// Package newsapi is a minimal client for the NewsAPI top-headlines
// endpoint. It is optional; without an API key it contributes nothing.
package newsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/metrics"
	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

const endpoint = "https://newsapi.org/v2/top-headlines"

type Client struct {
	apiKey string
	client *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	Status   string       `json:"status"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// FetchTopHeadlines pulls the business page and an AI-focused technology
// page. Each request is a single best-effort attempt; a failure is logged
// and the other page still counts.
func (c *Client) FetchTopHeadlines() []news.Item {
	if c.apiKey == "" {
		return nil
	}

	var all []news.Item

	business := url.Values{
		"apiKey":   {c.apiKey},
		"category": {"business"},
		"country":  {"us"},
		"pageSize": {"50"},
	}
	all = append(all, c.fetchPage(business)...)

	tech := url.Values{
		"apiKey":   {c.apiKey},
		"category": {"technology"},
		"country":  {"us"},
		"pageSize": {"50"},
		"q":        {"artificial intelligence OR AI OR robotics"},
	}
	all = append(all, c.fetchPage(tech)...)

	logger.Info("fetched NewsAPI headlines", "items", len(all))
	metrics.Global.AddItemsFetched(len(all))
	return all
}

func (c *Client) fetchPage(params url.Values) []news.Item {
	resp, err := c.client.Get(endpoint + "?" + params.Encode())
	if err != nil {
		logger.Error("NewsAPI request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("NewsAPI request failed", "error", fmt.Errorf("status %d", resp.StatusCode))
		return nil
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.Error("NewsAPI decode failed", "error", err)
		return nil
	}

	items := make([]news.Item, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		source := a.Source.Name
		if source == "" {
			source = "NewsAPI"
		}
		items = append(items, news.Item{
			Title:     a.Title,
			Link:      a.URL,
			Summary:   a.Description,
			Source:    source,
			Published: parseTime(a.PublishedAt),
		})
	}
	return items
}

// parseTime best-effort parses a publishedAt stamp. Unparseable stamps come
// back nil and the item is treated as fresh downstream.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
