// Package app wires the pipeline together and sequences one run:
// fetch -> dedupe/filter -> score/rank/select -> summarize -> render ->
// notify -> cache. Everything is sequential; a failing source, item or
// channel degrades the output instead of aborting the run.
package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chris87zhang9999/news-collector-deploy/internal/config"
	"github.com/chris87zhang9999/news-collector-deploy/internal/feed"
	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/market"
	"github.com/chris87zhang9999/news-collector-deploy/internal/metrics"
	"github.com/chris87zhang9999/news-collector-deploy/internal/news"
	"github.com/chris87zhang9999/news-collector-deploy/internal/newsapi"
	"github.com/chris87zhang9999/news-collector-deploy/internal/notify"
	"github.com/chris87zhang9999/news-collector-deploy/internal/rank"
	"github.com/chris87zhang9999/news-collector-deploy/internal/render"
	"github.com/chris87zhang9999/news-collector-deploy/internal/storage"
	"github.com/chris87zhang9999/news-collector-deploy/internal/summarize"
)

type App struct {
	cfg      *config.Config
	sources  *feed.SourcesConfig
	scorer   *rank.Scorer
	summ     summarize.Summarizer
	gemini   *summarize.GeminiSummarizer
	notifier *notify.Notifier
	store    *storage.SnapshotStore
	analyzer *market.Analyzer
	api      *newsapi.Client

	running atomic.Bool
}

// New builds the application from configuration. The summarizer backend is
// selected once here, not per call.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	sources, err := feed.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources config: %w", err)
	}

	a := &App{
		cfg:      cfg,
		sources:  sources,
		scorer:   rank.NewScorer(rank.DefaultWeights()),
		notifier: notify.NewNotifier(notify.NewServerChan(cfg.ServerChanKey), notify.NewWorkWeChat(cfg.WorkWeChatWebhook)),
		store:    storage.NewSnapshotStore(cfg.CacheFile()),
		api:      newsapi.NewClient(cfg.NewsAPIKey, cfg.RequestTimeout),
	}

	if cfg.AIEnabled {
		g, err := summarize.NewGeminiSummarizer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEndpoint, cfg.MaxSummaryLength)
		if err != nil {
			logger.Error("AI backend unavailable, falling back to truncation", "error", err)
			a.summ = summarize.NewTruncateSummarizer(cfg.MaxSummaryLength)
		} else {
			a.summ = g
			a.gemini = g
		}
	} else {
		a.summ = summarize.NewTruncateSummarizer(cfg.MaxSummaryLength)
	}

	if cfg.MarketAnalysis {
		var gen market.TextGenerator
		if a.gemini != nil {
			gen = a.gemini
		}
		a.analyzer = market.NewAnalyzer(gen)
	}

	return a, nil
}

// Close releases backend clients.
func (a *App) Close() {
	if a.gemini != nil {
		a.gemini.Close()
	}
}

func (a *App) keywordSets() news.KeywordSets {
	return news.KeywordSets{
		Markets: a.sources.Keywords.Markets,
		AI:      a.sources.Keywords.AIRobotics,
	}
}

// collect gathers raw items from every source and runs dedupe and both
// filters. The result is ready for scoring.
func (a *App) collect(now time.Time) []news.Item {
	items := feed.FetchAll(a.sources.Feeds, a.cfg.RequestTimeout)
	items = append(items, a.api.FetchTopHeadlines()...)
	logger.Info("collected news", "total", len(items))

	items = news.Deduplicate(items)
	items = news.FilterByKeywords(items, a.keywordSets())
	items = news.FilterByDate(items, a.cfg.FilterDays, now)

	metrics.Global.SetItemsKept(len(items))
	return items
}

// Run executes the full daily pipeline once. At most one run executes at a
// time: a call arriving while another is in flight is skipped, not queued.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		logger.Warn("previous run still in progress, skipping this trigger")
		return nil
	}
	defer a.running.Store(false)

	start := time.Now()
	now := start
	logger.Info("starting daily news collection")

	// 1. Collect
	items := a.collect(now)
	if len(items) == 0 {
		logger.Warn("no relevant news collected, nothing to do")
		return nil
	}

	// 2. Rank and select
	top := rank.SelectTop(a.scorer, items, a.cfg.MaxNewsCount, rank.TrackedCategories(), now)
	if len(top) < a.cfg.MaxNewsCount {
		logger.Warn("selected fewer items than target", "have", len(top), "want", a.cfg.MaxNewsCount)
	}

	// Market overview rides on top of the ranked stories.
	if a.analyzer != nil {
		if mi, err := a.analyzer.NewsItem(ctx, now); err != nil {
			logger.Error("market analysis unavailable", "error", err)
		} else {
			top = append([]news.Item{*mi}, top...)
		}
	}

	// 3. Summarize
	summarize.Batch(ctx, a.summ, top)

	// 4. Render the HTML digest
	htmlPath := a.cfg.HTMLFile(now)
	if err := render.WriteHTML(top, now, htmlPath); err != nil {
		logger.Error("failed to write HTML digest", "error", err)
	} else {
		logger.Info("HTML digest written", "path", htmlPath)
	}

	// 5. Notify, best effort
	if a.notifier.Configured() {
		content := render.Markdown(top, now)
		if err := a.notifier.Send(render.NotificationTitle(now), content); err != nil {
			logger.Error("notification failed", "error", err)
		} else {
			logger.Info("notification sent", "items", len(top))
		}
	} else {
		logger.Warn("no notification channel configured, skipping push")
	}

	// Persist the run snapshot, overwriting the previous one.
	if err := a.store.Save(top, now); err != nil {
		logger.Error("failed to save snapshot", "error", err)
	}

	metrics.Global.RecordRun(time.Since(start))
	logger.Info("daily news collection finished", "items", len(top), "duration", time.Since(start))
	return nil
}

// SelfCheck exercises fetch, ranking and rendering without pushing a
// notification. With testNotify set it additionally probes the channel,
// which fails hard when none is configured.
func (a *App) SelfCheck(ctx context.Context, testNotify bool) error {
	now := time.Now()
	logger.Info("running system self-check")

	items := a.collect(now)
	logger.Info("self-check: collection ok", "items", len(items))

	if len(items) > 0 {
		top := rank.SelectTop(a.scorer, items, 3, rank.TrackedCategories(), now)
		logger.Info("self-check: ranking ok", "selected", len(top))

		summarize.Batch(ctx, a.summ, top)

		testPath := a.cfg.TestHTMLFile()
		if err := render.WriteHTML(top, now, testPath); err != nil {
			return fmt.Errorf("self-check render failed: %w", err)
		}
		logger.Info("self-check: render ok", "path", testPath)

		for i, it := range top {
			if i >= 2 {
				break
			}
			logger.Info("sample item", "n", i+1, "title", it.Title, "source", it.Source, "score", it.Score, "link", it.Link)
		}
	}

	if testNotify {
		if err := a.notifier.TestConnection(); err != nil {
			return fmt.Errorf("self-check notification failed: %w", err)
		}
		logger.Info("self-check: notification ok")
	}

	return nil
}
