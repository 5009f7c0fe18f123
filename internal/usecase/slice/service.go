package slice

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	domslice "github.com/sliceboard/sliceboard/internal/domain/slice"
	"github.com/sliceboard/sliceboard/internal/metrics"
)

// Service materializes slices into row id sets with read-through caching.
type Service struct {
	cache      IDCache
	transforms TransformResolver
	results    ResultInvalidator
	group      singleflight.Group
}

// New creates a slice service. transforms and results can be nil.
func New(cache IDCache, transforms TransformResolver, results ResultInvalidator) *Service {
	return &Service{cache: cache, transforms: transforms, results: results}
}

// Materialize resolves the ordered row ids a slice selects from the dataset.
// Concurrent calls for the same slice share a single evaluation.
func (s *Service) Materialize(
	ctx context.Context, sl domslice.Slice, ds *dataset.Dataset,
) ([]string, error) {
	if ids, ok := s.cache.Get(ctx, sl.Name()); ok {
		return ids, nil
	}

	v, err, _ := s.group.Do(sl.Name(), func() (any, error) {
		if ids, ok := s.cache.Get(ctx, sl.Name()); ok {
			return ids, nil
		}

		start := time.Now()
		ids, err := s.evaluate(ctx, sl, ds)
		if err != nil {
			return nil, err
		}
		metrics.SliceMaterializeDuration.WithLabelValues(sl.Name()).Observe(time.Since(start).Seconds())

		s.cache.Put(ctx, sl.Name(), ids)
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// evaluate walks the dataset in row order and keeps ids matching the slice
// expression. An empty expression selects every row.
func (s *Service) evaluate(
	ctx context.Context, sl domslice.Slice, ds *dataset.Dataset,
) ([]string, error) {
	view := ds
	if sl.Transform() != "" {
		if s.transforms == nil {
			return nil, fmt.Errorf("slice %q: no transform resolver configured", sl.Name())
		}
		var err error
		view, err = s.transforms.Resolve(ctx, sl.Transform(), ds)
		if err != nil {
			return nil, fmt.Errorf("resolve transform %q: %w", sl.Transform(), err)
		}
	}

	expr := sl.Expression()
	ids := make([]string, 0, view.Len())
	for _, row := range view.Rows() {
		if expr.Evaluate(row) {
			ids = append(ids, row.ID())
		}
	}
	return ids, nil
}

// Invalidate drops the cached id set and persisted results for one slice.
// Callers must invoke it after any edit to the slice's predicates or transform.
func (s *Service) Invalidate(ctx context.Context, sliceName string) error {
	if err := s.cache.Invalidate(ctx, sliceName); err != nil {
		return fmt.Errorf("invalidate slice cache: %w", err)
	}
	if s.results != nil {
		if err := s.results.DeleteBySlice(ctx, sliceName); err != nil {
			return fmt.Errorf("delete slice results: %w", err)
		}
	}
	return nil
}

// InvalidateAll drops every cached id set, used when the dataset itself changes.
func (s *Service) InvalidateAll(ctx context.Context) error {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("invalidate slice caches: %w", err)
	}
	return nil
}
