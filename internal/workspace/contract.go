package workspace

import (
	"context"

	"github.com/sliceboard/sliceboard/internal/domain/report"
	"github.com/sliceboard/sliceboard/internal/domain/slice"
	"github.com/sliceboard/sliceboard/internal/domain/tag"
)

// Store persists workspace entities by name. The workspace keeps everything
// in memory after Hydrate, so reads go through the List methods only.
type Store interface {
	SaveSlice(ctx context.Context, s slice.Slice) error
	DeleteSlice(ctx context.Context, name string) error
	ListSlices(ctx context.Context) ([]slice.Slice, error)

	SaveReport(ctx context.Context, r report.Report) error
	DeleteReport(ctx context.Context, name string) error
	ListReports(ctx context.Context) ([]report.Report, error)

	SaveTag(ctx context.Context, t tag.Tag) error
	DeleteTag(ctx context.Context, name string) error
	ListTags(ctx context.Context) ([]tag.Tag, error)
}

// SliceInvalidator drops derived state (cached ids, persisted results) when a
// slice changes.
type SliceInvalidator interface {
	Invalidate(ctx context.Context, sliceName string) error
	InvalidateAll(ctx context.Context) error
}
