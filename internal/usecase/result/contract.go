package result

import (
	"context"

	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	domresult "github.com/sliceboard/sliceboard/internal/domain/result"
	domslice "github.com/sliceboard/sliceboard/internal/domain/slice"
)

// Materializer resolves a slice into its ordered row ids.
type Materializer interface {
	Materialize(ctx context.Context, sl domslice.Slice, ds *dataset.Dataset) ([]string, error)
}

// ResultStore persists computed metric results.
type ResultStore interface {
	Put(ctx context.Context, key domresult.Key, value float64) error
	Get(ctx context.Context, key domresult.Key) (float64, error)
}
