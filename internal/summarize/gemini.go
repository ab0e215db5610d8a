package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/metrics"
	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
)

// GeminiSummarizer delegates to the Gemini generative API. Every call is a
// single attempt; any failure falls back to the truncation path, so callers
// always get text.
type GeminiSummarizer struct {
	client   *genai.Client
	model    string
	maxLen   int
	fallback *TruncateSummarizer
}

// NewGeminiSummarizer builds the backend summarizer. An empty endpoint uses
// the public API host.
func NewGeminiSummarizer(ctx context.Context, apiKey, model, endpoint string, maxLen int) (*GeminiSummarizer, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-1.5-flash"
	}
	if maxLen <= 0 {
		maxLen = 200
	}

	return &GeminiSummarizer{
		client:   client,
		model:    model,
		maxLen:   maxLen,
		fallback: NewTruncateSummarizer(maxLen),
	}, nil
}

func (g *GeminiSummarizer) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, it *news.Item) string {
	out, err := g.generate(ctx, it)
	if err != nil {
		logger.Error("Gemini summary failed, using truncation", "title", it.Title, "error", err)
		metrics.Global.IncrementSummaryFallbacks()
		return g.fallback.Summarize(ctx, it)
	}
	metrics.Global.IncrementSummariesGenerated()
	return out
}

func (g *GeminiSummarizer) generate(ctx context.Context, it *news.Item) (string, error) {
	model := g.client.GenerativeModel(g.model)

	content := strings.TrimSpace(it.Summary)
	content = strings.Join(strings.Fields(content), " ")
	// Keep prompts bounded; feed descriptions are occasionally whole articles.
	if utf8.RuneCountInString(content) > 6000 {
		content = string([]rune(content)[:6000]) + " [TRUNCATED]"
	}

	prompt := fmt.Sprintf(`Summarize the following news item in at most %d characters.
Be concise and concrete. For market news, explain what moved and why.
For AI news, state the technical advance or application.
Respond with the summary only, no preamble.

Title: %s
Content: %s
`, g.maxLen, it.Title, content)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	out := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if out == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return out, nil
}

// GenerateText runs one free-form prompt through the backend. Used by the
// market analyzer for its daily commentary.
func (g *GeminiSummarizer) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}
