package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	sliceboard "github.com/sliceboard/sliceboard"
	"github.com/sliceboard/sliceboard/internal/config"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	"github.com/sliceboard/sliceboard/internal/ingest"
	logpkg "github.com/sliceboard/sliceboard/internal/logger"
	"github.com/sliceboard/sliceboard/internal/metrics"
	"github.com/sliceboard/sliceboard/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sliceboard workspace",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("dataset", cfg.Dataset.Path),
		zap.Strings("models", cfg.Models),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Register Prometheus metrics explicitly (no init())
	metrics.Register()

	ds, err := loadDataset(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}
	logger.Info("Dataset loaded", zap.Int("rows", ds.Len()), zap.Int("columns", len(ds.Columns())))

	opts := []sliceboard.Option{
		sliceboard.WithRedis(cfg.Database.Addrs[0], cfg.Database.Password),
		sliceboard.WithUsername(cfg.Database.Username),
		sliceboard.WithDB(cfg.Database.DB),
		sliceboard.WithDataset(ds),
		sliceboard.WithSettings(sliceboard.Settings{
			IDColumn:    cfg.Dataset.IDColumn,
			DataColumn:  cfg.Dataset.DataColumn,
			LabelColumn: cfg.Dataset.LabelColumn,
			Models:      cfg.Models,
		}),
		sliceboard.WithReadinessTimeout(time.Duration(cfg.Database.ReadinessTimeout) * time.Second),
		sliceboard.WithLogger(logger),
	}
	if cfg.Dataset.LabelColumn != "" {
		opts = append(opts, sliceboard.WithMetric(
			"accuracy", sliceboard.MatchRate(cfg.Dataset.OutputName, cfg.Dataset.LabelColumn),
		))
	}

	client, err := sliceboard.New(opts...)
	if err != nil {
		logger.Fatal("Failed to create client", zap.Error(err))
	}
	defer client.Close()
	logger.Info("Connected to database")

	ctx := context.Background()
	if err := runPass(ctx, client, logger); err != nil {
		logger.Fatal("Compute pass failed", zap.Error(err))
	}

	if cfg.Ops.MetricsAddr == "" {
		return
	}

	// Serve /metrics until shutdown.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         cfg.Ops.MetricsAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Metrics endpoint listening", zap.String("addr", cfg.Ops.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Metrics endpoint failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics endpoint shutdown failed", zap.Error(err))
	}
}

func loadDataset(cfg config.Config, logger *zap.Logger) (*dataset.Dataset, error) {
	loader := ingest.NewLoader(logger)
	opts := ingest.Options{IDColumn: cfg.Dataset.IDColumn}
	if cfg.Dataset.Format == "csv" {
		return loader.LoadCSV(cfg.Dataset.Path, opts)
	}
	return loader.LoadParquet(cfg.Dataset.Path, opts)
}

// runPass materializes every slice, computes every metric, and evaluates
// every report for every model.
func runPass(ctx context.Context, client *sliceboard.Client, logger *zap.Logger) error {
	ws := client.Workspace()

	for _, sl := range ws.Slices() {
		ids, err := client.MaterializeSlice(ctx, sl.Name())
		if err != nil {
			return err
		}
		logger.Info("Slice materialized",
			zap.String("slice", sl.Name()),
			zap.Int("rows", len(ids)))
	}

	if err := client.ComputeAll(ctx); err != nil {
		return err
	}

	for _, name := range client.Metrics() {
		r, err := client.MetricRangeFor(ctx, name)
		if err != nil {
			return err
		}
		if r.IsEmpty() {
			logger.Info("Metric has no results", zap.String("metric", name))
			continue
		}
		logger.Info("Metric range",
			zap.String("metric", name),
			zap.Float64("min", r.Min),
			zap.Float64("max", r.Max))
	}

	for _, rep := range ws.Reports() {
		for _, model := range ws.Settings().Models {
			ev, err := client.EvaluateReport(ctx, rep.Name(), model)
			if err != nil {
				return err
			}
			for _, o := range ev.Outcomes {
				logger.Info("Report predicate",
					zap.String("report", rep.Name()),
					zap.String("model", model),
					zap.String("slice", o.Predicate.SliceName()),
					zap.String("metric", o.Predicate.Metric()),
					zap.String("status", string(o.Status)))
			}
			logger.Info("Report evaluated",
				zap.String("report", rep.Name()),
				zap.String("model", model),
				zap.Bool("passed", ev.Passed()))
		}
	}

	return nil
}
