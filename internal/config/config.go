package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	// Sources
	SourcesConfigPath string
	NewsAPIKey        string

	// AI summarization settings
	AIEnabled        bool
	GeminiAPIKey     string
	GeminiModel      string
	GeminiEndpoint   string
	MaxSummaryLength int

	// Notification settings
	ServerChanKey     string
	WorkWeChatWebhook string

	// Schedule settings
	DailyTime    string // HH:MM, local time
	MaxNewsCount int
	FilterDays   int

	// Market analysis
	MarketAnalysis bool

	// App settings
	DataDir        string
	Debug          bool
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SourcesConfigPath: "configs/sources.yaml",
		GeminiModel:       "gemini-1.5-flash",
		MaxSummaryLength:  200,
		DailyTime:         "20:00",
		MaxNewsCount:      10,
		FilterDays:        1,
		DataDir:           "./data",
		RequestTimeout:    30 * time.Second,
	}

	// Load from environment
	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.GeminiEndpoint = os.Getenv("GEMINI_ENDPOINT")
	cfg.ServerChanKey = os.Getenv("SERVERCHAN_SENDKEY")
	cfg.WorkWeChatWebhook = os.Getenv("WORK_WECHAT_WEBHOOK")
	cfg.DailyTime = getEnvOrDefault("DAILY_TIME", cfg.DailyTime)
	cfg.DataDir = getEnvOrDefault("DATA_DIR", cfg.DataDir)

	cfg.MaxNewsCount = getEnvIntOrDefault("MAX_NEWS_COUNT", cfg.MaxNewsCount)
	cfg.FilterDays = getEnvIntOrDefault("FILTER_DAYS", cfg.FilterDays)
	cfg.MaxSummaryLength = getEnvIntOrDefault("MAX_SUMMARY_LENGTH", cfg.MaxSummaryLength)

	if os.Getenv("AI_ENABLED") == "true" && cfg.GeminiAPIKey != "" {
		cfg.AIEnabled = true
	}
	if os.Getenv("MARKET_ANALYSIS") == "true" {
		cfg.MarketAnalysis = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if _, err := time.Parse("15:04", c.DailyTime); err != nil {
		return fmt.Errorf("DAILY_TIME must be HH:MM, got %q", c.DailyTime)
	}
	if c.MaxNewsCount <= 0 {
		return fmt.Errorf("MAX_NEWS_COUNT must be positive")
	}
	if c.FilterDays <= 0 {
		return fmt.Errorf("FILTER_DAYS must be positive")
	}
	return nil
}

// CacheFile is the last-run snapshot path.
func (c *Config) CacheFile() string {
	return filepath.Join(c.DataDir, "news_cache.json")
}

// LogFile is the run log path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "news_collector.log")
}

// HTMLFile is the digest document path for a given day.
func (c *Config) HTMLFile(now time.Time) string {
	return filepath.Join(c.DataDir, fmt.Sprintf("news_%s.html", now.Format("20060102")))
}

// TestHTMLFile is the self-check render path, kept apart from the daily
// digest so a test run never overwrites real output.
func (c *Config) TestHTMLFile() string {
	return filepath.Join(c.DataDir, "test_news.html")
}

// CronSpec converts DailyTime into a cron expression.
func (c *Config) CronSpec() string {
	t, _ := time.Parse("15:04", c.DailyTime)
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())
}
