// Command appinsights-demo is a small CLI that exercises the appinsights
// client against a real (or local test) Application Insights endpoint: it
// tracks a heartbeat event on an interval, reports a metric, and shuts down
// cleanly on SIGINT/SIGTERM. Optionally it reads its settings from a YAML
// config file and, while running, watches that file and logs each reloaded
// interval and buffer size; the running client keeps the settings it
// started with.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/microsoft/appinsights-go/appinsights"
	"github.com/microsoft/appinsights-go/appinsights/internal/configwatch"
	"github.com/microsoft/appinsights-go/appinsights/internal/logging"
	"github.com/microsoft/appinsights-go/appinsights/internal/metrics"
)

func main() {
	var (
		iKey           string
		endpoint       string
		interval       time.Duration
		maxBuffer      int
		heartbeat      time.Duration
		configPath     string
		metricsBackend string
		metricsAddr    string
		showVersion    bool
	)

	flag.StringVar(&iKey, "ikey", "", "Application Insights instrumentation key (required unless -config is set)")
	flag.StringVar(&endpoint, "endpoint", appinsights.DefaultEndpointURL, "ingestion endpoint URL")
	flag.DurationVar(&interval, "interval", appinsights.DefaultSubmissionInterval, "submission interval")
	flag.IntVar(&maxBuffer, "max-buffer", appinsights.DefaultMaxBufferSize, "max buffered telemetry items")
	flag.DurationVar(&heartbeat, "heartbeat", 5*time.Second, "how often to track a heartbeat event (0=disabled)")
	flag.StringVar(&configPath, "config", "", "optional YAML config file to read settings from (later edits are logged, not applied)")
	flag.StringVar(&metricsBackend, "metrics", "noop", "metrics backend: noop, prometheus, otel")
	flag.StringVar(&metricsAddr, "metrics-addr", ":2112", "address to expose Prometheus metrics on, if -metrics=prometheus")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("appinsights-demo (appinsights-go client)")
		return
	}

	if configPath != "" {
		fc, err := configwatch.Load(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		if fc.InstrumentationKey != "" {
			iKey = fc.InstrumentationKey
		}
		if fc.EndpointURL != "" {
			endpoint = fc.EndpointURL
		}
		if fc.SubmissionInterval > 0 {
			interval = fc.SubmissionInterval
		}
		if fc.MaxBufferSize > 0 {
			maxBuffer = fc.MaxBufferSize
		}
	}

	if iKey == "" {
		fmt.Fprintln(os.Stderr, "an instrumentation key is required: pass -ikey or -config")
		os.Exit(1)
	}

	var metricsProvider metrics.Provider
	switch metricsBackend {
	case "prometheus":
		prom := metrics.NewPrometheusProvider(metrics.PrometheusProviderOptions{})
		metricsProvider = prom
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", prom.MetricsHandler())
			log.Printf("prometheus metrics listening on %s/metrics", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics server: %v", err)
			}
		}()
	case "otel":
		metricsProvider = metrics.NewOTelProvider(metrics.OTelProviderOptions{ServiceName: "appinsights-demo"})
	default:
		metricsProvider = metrics.NewNoopProvider()
	}

	logger := logging.New(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := appinsights.NewConfig(iKey,
		appinsights.WithEndpointURL(endpoint),
		appinsights.WithSubmissionInterval(interval),
		appinsights.WithMaxBufferSize(maxBuffer),
	)
	if err != nil {
		log.Fatalf("build config: %v", err)
	}

	client := appinsights.NewFromConfigWithObservability(cfg, logger, metricsProvider)
	client.Context().Tags()["ai.cloud.role"] = "appinsights-demo"

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configPath != "" {
		watcher, err := configwatch.New(configPath)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			defer watcher.Close()
			err := watcher.Start(ctx, func(fc configwatch.FileConfig) {
				log.Printf("config reloaded: interval=%s maxBuffer=%d", fc.SubmissionInterval, fc.MaxBufferSize)
			}, func(err error) {
				log.Printf("config watch error: %v", err)
			})
			if err != nil {
				log.Printf("config watch disabled: %v", err)
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	var ticker *time.Ticker
	var tickC <-chan time.Time
	if heartbeat > 0 {
		ticker = time.NewTicker(heartbeat)
		defer ticker.Stop()
		tickC = ticker.C
	}

	client.TrackEvent("appinsights-demo started")
	_ = enc.Encode(map[string]any{"event": "started", "time": time.Now().Format(time.RFC3339)})

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-tickC:
			client.TrackEvent("heartbeat")
			client.TrackMetric("appinsights_demo.heartbeat", 1)
			_ = enc.Encode(map[string]any{"event": "heartbeat", "time": time.Now().Format(time.RFC3339)})
		}
	}

	log.Println("shutting down: flushing pending telemetry")
	client.TrackEvent("appinsights-demo stopping")
	client.CloseChannel()
}
