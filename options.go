package sliceboard

import (
	"time"

	"go.uber.org/zap"

	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	resultuc "github.com/sliceboard/sliceboard/internal/usecase/result"
	"github.com/sliceboard/sliceboard/internal/workspace"
)

// MetricFunc computes a metric over the rows a slice selects, for one model.
// A nil value marks the metric unavailable for that selection.
type MetricFunc = resultuc.Func

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs            []string
	username         string
	password         string
	db               int
	readinessTimeout time.Duration
	cacheTTL         time.Duration

	dataset  *dataset.Dataset
	settings workspace.Settings

	metrics    map[string]MetricFunc
	transforms map[string]TransformFunc

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithUsername sets the database username (ACL setups).
func WithUsername(username string) Option {
	return func(c *clientConfig) {
		c.username = username
	}
}

// WithDB selects the Redis logical database.
func WithDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithReadinessTimeout bounds how long New waits for the database to answer
// before failing. Non-positive values keep the default.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.readinessTimeout = d
		}
	}
}

// WithCacheTTL sets the expiration for cached slice materializations.
// Zero keeps entries until they are invalidated.
func WithCacheTTL(d time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = d
	}
}

// WithDataset sets the evaluation table the workspace operates on.
func WithDataset(ds *dataset.Dataset) Option {
	return func(c *clientConfig) {
		c.dataset = ds
	}
}

// WithSettings sets the workspace settings (key columns, models).
func WithSettings(s workspace.Settings) Option {
	return func(c *clientConfig) {
		c.settings = s
	}
}

// WithModels sets the model list without touching other settings.
func WithModels(models ...string) Option {
	return func(c *clientConfig) {
		c.settings.Models = models
	}
}

// WithMetric registers a metric function under a name.
func WithMetric(name string, fn MetricFunc) Option {
	return func(c *clientConfig) {
		if c.metrics == nil {
			c.metrics = map[string]MetricFunc{}
		}
		c.metrics[name] = fn
	}
}

// WithTransform registers a named dataset transform usable by slices.
func WithTransform(name string, fn TransformFunc) Option {
	return func(c *clientConfig) {
		if c.transforms == nil {
			c.transforms = map[string]TransformFunc{}
		}
		c.transforms[name] = fn
	}
}

// WithLogger enables structured logging for workspace operations.
// Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
