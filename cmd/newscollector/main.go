package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/chris87zhang9999/news-collector-deploy/internal/app"
	"github.com/chris87zhang9999/news-collector-deploy/internal/config"
	"github.com/chris87zhang9999/news-collector-deploy/internal/logger"
	"github.com/chris87zhang9999/news-collector-deploy/internal/metrics"
)

func main() {
	mode := flag.String("mode", "run", "run | test | schedule")
	testNotify := flag.Bool("test-notify", false, "probe the notification channel during self-check")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.LogFile(), cfg.Debug)

	// Optional HTTP server exposing health and pipeline counters.
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	switch *mode {
	case "run":
		if err := a.Run(ctx); err != nil {
			metrics.Global.SetError(err.Error())
			log.Fatalf("Pipeline failed: %v", err)
		}

	case "test":
		if err := a.SelfCheck(ctx, *testNotify); err != nil {
			log.Fatalf("Self-check failed: %v", err)
		}
		logger.Info("self-check passed")

	case "schedule":
		// Cron launches every trigger in its own goroutine; SkipIfStillRunning
		// drops a trigger while the previous run is in flight, so runs never
		// overlap. Run carries its own in-flight guard as well.
		c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
		_, err := c.AddFunc(cfg.CronSpec(), func() {
			logger.Info("scheduled run triggered")
			if err := a.Run(ctx); err != nil {
				metrics.Global.SetError(err.Error())
				logger.Error("scheduled run failed", "error", err)
			}
		})
		if err != nil {
			log.Fatalf("Failed to set up schedule %q: %v", cfg.CronSpec(), err)
		}
		c.Start()
		logger.Info("daily schedule active", "time", cfg.DailyTime)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())

		cancel()
		c.Stop()

	default:
		log.Fatalf("Unknown mode %q (supported: run, test, schedule)", *mode)
	}
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
