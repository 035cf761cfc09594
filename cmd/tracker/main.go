package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ugc_tracker/internal/api"
	"ugc_tracker/internal/config"
	"ugc_tracker/internal/matcher"
	"ugc_tracker/internal/publisher"
	"ugc_tracker/internal/scheduler"
	"ugc_tracker/internal/service"
	"ugc_tracker/internal/source/gemini"
	"ugc_tracker/internal/source/remote"
	"ugc_tracker/internal/storage/memory"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	pub, err := newPublisher(cfg.Publisher, logger)
	if err != nil {
		logger.Error("failed to set up publisher", "kind", cfg.Publisher.Kind, "error", err)
		os.Exit(1)
	}
	if pub != nil {
		defer pub.Close()
	}

	var fallback *matcher.DemoFallback
	if cfg.Catalog.DemoFallback.IsEnabled() {
		fallback = &matcher.DemoFallback{
			VideoMarker: cfg.Catalog.DemoFallback.VideoMarker,
			SongID:      cfg.Catalog.DemoFallback.SongID,
			Confidence:  cfg.Catalog.DemoFallback.Confidence,
		}
	}

	analyzer := newAnalyzer(cfg.Oracle, fallback, logger)
	if cfg.Oracle.APIKey == "" {
		logger.Warn("oracle credential not configured, video submissions will fail", "oracle", analyzer.Name())
	}

	tracker := service.NewTrackerService(
		memory.NewSongRegistry(cfg.Catalog.SeedSongs...),
		memory.NewVideoLedger(),
		analyzer,
		matcher.NewResolver(fallback, logger),
		pub,
		logger,
	)

	attempts := time.Duration(max(cfg.Oracle.Retry.MaxAttempts, 1))
	tracker.SetAnalysisTimeout(attempts*cfg.Oracle.Timeout + (attempts-1)*cfg.Oracle.Retry.MaxBackoff)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewServer(tracker, cfg.HTTP.AllowedOrigins, logger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting ugc tracker",
		"addr", cfg.HTTP.Addr,
		"oracle", analyzer.Name(),
		"publisher", cfg.Publisher.Kind,
		"seed_songs", len(cfg.Catalog.SeedSongs),
		"demo_fallback", fallback != nil,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Reporter.IsEnabled() {
		sched := scheduler.NewScheduler(tracker, cfg.Reporter.Interval, logger)
		g.Go(func() error {
			if err := sched.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("tracker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("tracker stopped")
}

func newAnalyzer(cfg config.OracleConfig, fallback *matcher.DemoFallback, logger *slog.Logger) service.Analyzer {
	if cfg.Provider == config.OracleRemote {
		return remote.New(remote.Config{
			BaseURL:        cfg.BaseURL,
			APIKey:         cfg.APIKey,
			Timeout:        cfg.Timeout,
			MaxAttempts:    cfg.Retry.MaxAttempts,
			InitialBackoff: cfg.Retry.InitialBackoff,
			MaxBackoff:     cfg.Retry.MaxBackoff,
		}, logger)
	}

	gcfg := gemini.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}
	if fallback != nil {
		gcfg.DemoMarker = fallback.VideoMarker
	}
	return gemini.New(gcfg, logger)
}

// newPublisher returns a nil interface when events are disabled.
func newPublisher(cfg config.PublisherConfig, logger *slog.Logger) (service.Publisher, error) {
	switch cfg.Kind {
	case config.PublisherRabbitMQ:
		return publisher.NewRabbitMQ(publisher.RabbitMQConfig{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
	case config.PublisherKafka:
		return publisher.NewKafka(publisher.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
	default:
		return nil, nil
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
