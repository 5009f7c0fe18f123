package result

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	"github.com/sliceboard/sliceboard/internal/domain/metric"
	domresult "github.com/sliceboard/sliceboard/internal/domain/result"
	domslice "github.com/sliceboard/sliceboard/internal/domain/slice"
	"github.com/sliceboard/sliceboard/internal/metrics"
)

// Func computes a metric over the rows a slice selects, for one model.
// A nil value means the metric is unavailable for this selection, typically
// because the slice is empty.
type Func func(rows []dataset.Row, model string) (*float64, error)

// Registry maps metric names to their computation functions.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty metric registry.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Func{}}
}

// Register adds a metric function under a name. Re-registering a name
// replaces the previous function.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("metric name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("metric %q: function must not be nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// Lookup resolves a metric function by name.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMetricNotFound, name)
	}
	return fn, nil
}

// Names lists the registered metric names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Service computes metric results over slices and persists them.
type Service struct {
	registry *Registry
	slices   Materializer
	store    ResultStore
}

// New creates a result service.
func New(registry *Registry, slices Materializer, store ResultStore) *Service {
	return &Service{registry: registry, slices: slices, store: store}
}

// Compute evaluates one metric for one slice and model and persists the
// result. It returns the stored value, or nil when the metric is unavailable
// for the selection; unavailable results are never persisted.
func (s *Service) Compute(
	ctx context.Context, sl domslice.Slice, ds *dataset.Dataset, metricName, model string,
) (*float64, error) {
	fn, err := s.registry.Lookup(metricName)
	if err != nil {
		return nil, err
	}

	ids, err := s.slices.Materialize(ctx, sl, ds)
	if err != nil {
		return nil, fmt.Errorf("materialize slice %q: %w", sl.Name(), err)
	}

	start := time.Now()
	v, err := fn(ds.Select(ids), model)
	metrics.MetricComputeDuration.WithLabelValues(metricName, model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MetricComputeTotal.WithLabelValues(metricName, model, "error").Inc()
		return nil, fmt.Errorf("compute %s over slice %q: %w", metricName, sl.Name(), err)
	}
	if v == nil {
		metrics.MetricComputeTotal.WithLabelValues(metricName, model, "unavailable").Inc()
		return nil, nil
	}
	metrics.MetricComputeTotal.WithLabelValues(metricName, model, "ok").Inc()

	key, err := domresult.NewKey(sl.Name(), metricName, sl.Transform(), model)
	if err != nil {
		return nil, fmt.Errorf("result key: %w", err)
	}
	if err := s.store.Put(ctx, key, *v); err != nil {
		return nil, fmt.Errorf("store result %s: %w", key, err)
	}
	return v, nil
}

// ComputeAll evaluates every metric for every slice and model combination.
// Failures abort the pass so a partial recompute is never mistaken for a
// complete one.
func (s *Service) ComputeAll(
	ctx context.Context, ds *dataset.Dataset,
	slices []domslice.Slice, metricNames, models []string,
) error {
	for _, sl := range slices {
		for _, name := range metricNames {
			for _, model := range models {
				if _, err := s.Compute(ctx, sl, ds, name, model); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// MatrixRange reads the stored results of one metric across slices and models
// and reduces them to the observed value range. Missing results are skipped;
// when every cell is missing the empty sentinel range comes back.
func (s *Service) MatrixRange(
	ctx context.Context, metricName string, slices []domslice.Slice, models []string,
) (metric.Range, error) {
	matrix := make([][]*float64, 0, len(slices))
	for _, sl := range slices {
		row := make([]*float64, 0, len(models))
		for _, model := range models {
			key, err := domresult.NewKey(sl.Name(), metricName, sl.Transform(), model)
			if err != nil {
				return metric.Range{}, fmt.Errorf("result key: %w", err)
			}
			v, err := s.store.Get(ctx, key)
			if errors.Is(err, domain.ErrResultUnavailable) {
				row = append(row, nil)
				continue
			}
			if err != nil {
				return metric.Range{}, fmt.Errorf("get result %s: %w", key, err)
			}
			row = append(row, &v)
		}
		matrix = append(matrix, row)
	}
	return metric.GetRange(matrix), nil
}
