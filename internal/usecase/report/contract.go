package report

import (
	"context"

	"github.com/sliceboard/sliceboard/internal/domain/result"
)

// ResultReader reads computed metric results by key.
type ResultReader interface {
	Get(ctx context.Context, key result.Key) (float64, error)
}
