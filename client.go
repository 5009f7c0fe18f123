package sliceboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sliceboard/sliceboard/internal/db"
	dbRedis "github.com/sliceboard/sliceboard/internal/db/redis"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	"github.com/sliceboard/sliceboard/internal/domain/metric"
	"github.com/sliceboard/sliceboard/internal/metrics"
	"github.com/sliceboard/sliceboard/internal/repository/resultstore"
	"github.com/sliceboard/sliceboard/internal/repository/slicecache"
	wsrepo "github.com/sliceboard/sliceboard/internal/repository/workspace"
	healthuc "github.com/sliceboard/sliceboard/internal/usecase/health"
	reportuc "github.com/sliceboard/sliceboard/internal/usecase/report"
	resultuc "github.com/sliceboard/sliceboard/internal/usecase/result"
	sliceuc "github.com/sliceboard/sliceboard/internal/usecase/slice"
	"github.com/sliceboard/sliceboard/internal/workspace"
)

const (
	defaultReadinessTimeout = 10 * time.Second

	// Cached materializations are keyed by dataset fingerprint; the TTL
	// garbage-collects entries whose dataset is gone.
	defaultCacheTTL = 24 * time.Hour
)

// Client is the sliceboard entry point. It owns the dataset, the workspace
// state, and the services computing over them.
type Client struct {
	store db.Store
	log   *zap.Logger

	ds        *dataset.Dataset
	ws        *workspace.Workspace
	registry  *resultuc.Registry
	sliceSvc  *sliceuc.Service
	reportSvc *reportuc.Service
	resultSvc *resultuc.Service
	healthSvc *healthuc.Service
}

// New creates a Client, connects to the database, and hydrates the workspace.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		logger:           zap.NewNop(),
		readinessTimeout: defaultReadinessTimeout,
		cacheTTL:         defaultCacheTTL,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("sliceboard: database address required (use WithRedis)")
	}
	if cfg.dataset == nil {
		return nil, errors.New("sliceboard: dataset required (use WithDataset)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("sliceboard: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("sliceboard: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := c.ws.Hydrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("sliceboard: hydrate workspace: %w", err)
	}
	return c, nil
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	idCache := slicecache.New(store, metrics.SliceCacheTotal, cfg.logger, cfg.dataset.Fingerprint(), cfg.cacheTTL)
	results := resultstore.New(store)
	repo := wsrepo.New(store)

	sliceSvc := sliceuc.New(idCache, newTransformRegistry(cfg.transforms), results)
	reportSvc := reportuc.New(results)

	registry := resultuc.NewRegistry()
	for name, fn := range cfg.metrics {
		if err := registry.Register(name, fn); err != nil {
			return nil, fmt.Errorf("sliceboard: register metric: %w", err)
		}
	}
	resultSvc := resultuc.New(registry, sliceSvc, results)

	ws := workspace.New(cfg.settings, repo, sliceSvc, cfg.logger)

	metrics.DatasetRows.Set(float64(cfg.dataset.Len()))

	return &Client{
		store:     store,
		log:       cfg.logger,
		ds:        cfg.dataset,
		ws:        ws,
		registry:  registry,
		sliceSvc:  sliceSvc,
		reportSvc: reportSvc,
		resultSvc: resultSvc,
		healthSvc: healthuc.New(store),
	}, nil
}

// Workspace returns the owned workspace state: slices, reports, and tags.
func (c *Client) Workspace() *workspace.Workspace { return c.ws }

// Dataset returns the evaluation table.
func (c *Client) Dataset() *dataset.Dataset { return c.ds }

// RegisterMetric adds a metric function after construction.
func (c *Client) RegisterMetric(name string, fn MetricFunc) error {
	return c.registry.Register(name, fn)
}

// Metrics lists the registered metric names.
func (c *Client) Metrics() []string { return c.registry.Names() }

// MaterializeSlice resolves the ordered row ids a named slice selects.
func (c *Client) MaterializeSlice(ctx context.Context, name string) ([]string, error) {
	sl, err := c.ws.Slice(name)
	if err != nil {
		return nil, err
	}
	return c.sliceSvc.Materialize(ctx, sl, c.ds)
}

// SliceRows resolves a named slice to its dataset rows.
func (c *Client) SliceRows(ctx context.Context, name string) ([]Row, error) {
	ids, err := c.MaterializeSlice(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.ds.Select(ids), nil
}

// ComputeAll evaluates every registered metric for every slice and model and
// persists the results.
func (c *Client) ComputeAll(ctx context.Context) error {
	return c.resultSvc.ComputeAll(
		ctx, c.ds, c.ws.Slices(), c.registry.Names(), c.ws.Settings().Models,
	)
}

// EvaluateReport evaluates a named report against stored results for a model.
func (c *Client) EvaluateReport(ctx context.Context, name, model string) (ReportEvaluation, error) {
	r, err := c.ws.Report(name)
	if err != nil {
		return ReportEvaluation{}, err
	}
	return c.reportSvc.Evaluate(ctx, r, model)
}

// MetricRangeFor reduces the stored results of one metric across every slice
// and model to the observed value range.
func (c *Client) MetricRangeFor(ctx context.Context, metricName string) (metric.Range, error) {
	return c.resultSvc.MatrixRange(ctx, metricName, c.ws.Slices(), c.ws.Settings().Models)
}

// Health runs health checks against dependencies.
func (c *Client) Health(ctx context.Context) healthuc.Report {
	return c.healthSvc.Check(ctx)
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
