package sliceboard

import (
	"context"
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

// TransformFunc derives a dataset view from the base dataset. Row ids must be
// preserved so slice results stay addressable.
type TransformFunc func(ctx context.Context, base *dataset.Dataset) (*dataset.Dataset, error)

// transformRegistry resolves named transforms for slice materialization.
type transformRegistry struct {
	funcs map[string]TransformFunc
}

func newTransformRegistry(funcs map[string]TransformFunc) *transformRegistry {
	if funcs == nil {
		funcs = map[string]TransformFunc{}
	}
	return &transformRegistry{funcs: funcs}
}

func (r *transformRegistry) Resolve(
	ctx context.Context, transform string, base *dataset.Dataset,
) (*dataset.Dataset, error) {
	fn, ok := r.funcs[transform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransformNotFound, transform)
	}
	return fn(ctx, base)
}
