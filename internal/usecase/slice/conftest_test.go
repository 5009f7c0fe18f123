package slice

import (
	"context"
	"sync"
	"testing"

	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	"github.com/sliceboard/sliceboard/internal/domain/predicate"
	domslice "github.com/sliceboard/sliceboard/internal/domain/slice"
)

// memCache implements IDCache in memory for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]string

	gets int
	puts int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]string{}}
}

func (m *memCache) Get(_ context.Context, sliceName string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	ids, ok := m.data[sliceName]
	return ids, ok
}

func (m *memCache) Put(_ context.Context, sliceName string, ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.data[sliceName] = ids
}

func (m *memCache) Invalidate(_ context.Context, sliceName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sliceName)
	return nil
}

func (m *memCache) InvalidateAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]string{}
	return nil
}

// fakeResults records result invalidations.
type fakeResults struct {
	deleted []string
	err     error
}

func (f *fakeResults) DeleteBySlice(_ context.Context, sliceName string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, sliceName)
	return nil
}

// passthroughTransform counts resolutions and returns the base dataset.
type passthroughTransform struct {
	resolved int
	err      error
}

func (u *passthroughTransform) Resolve(
	_ context.Context, _ string, base *dataset.Dataset,
) (*dataset.Dataset, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.resolved++
	return base, nil
}

func mustColumn(t *testing.T, name string) column.Column {
	t.Helper()
	col, err := column.New(column.TypeMetadata, name, "", "")
	if err != nil {
		t.Fatalf("column.New: %v", err)
	}
	return col
}

func mustPred(
	t *testing.T, col column.Column, op, value string, join predicate.Join, group predicate.GroupMarker,
) predicate.Predicate {
	t.Helper()
	p, err := predicate.New(col, op, value, join, group)
	if err != nil {
		t.Fatalf("predicate.New: %v", err)
	}
	return p
}

func mustSlice(t *testing.T, name string, preds []predicate.Predicate) domslice.Slice {
	t.Helper()
	sl, err := domslice.New(name, "", preds, "")
	if err != nil {
		t.Fatalf("slice.New: %v", err)
	}
	return sl
}

// testDataset builds a dataset with one numeric "score" column.
func testDataset(t *testing.T, scores map[string]float64, order []string) *dataset.Dataset {
	t.Helper()
	col := mustColumn(t, "score")
	rows := make([]dataset.Row, 0, len(order))
	for _, id := range order {
		row, err := dataset.NewRow(id, map[string]dataset.Value{
			col.Hash(): dataset.Number(scores[id]),
		})
		if err != nil {
			t.Fatalf("dataset.NewRow: %v", err)
		}
		rows = append(rows, row)
	}
	ds, err := dataset.New(rows, []column.Column{col})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}
