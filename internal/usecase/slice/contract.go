package slice

import (
	"context"

	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

// IDCache caches materialized row ids per slice name.
type IDCache interface {
	Get(ctx context.Context, sliceName string) ([]string, bool)
	Put(ctx context.Context, sliceName string, ids []string)
	Invalidate(ctx context.Context, sliceName string) error
	InvalidateAll(ctx context.Context) error
}

// TransformResolver produces the dataset view a named transform yields.
type TransformResolver interface {
	Resolve(ctx context.Context, transform string, base *dataset.Dataset) (*dataset.Dataset, error)
}

// ResultInvalidator drops persisted metric results for a slice.
type ResultInvalidator interface {
	DeleteBySlice(ctx context.Context, sliceName string) error
}
