package result

import (
	"context"
	"testing"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	domresult "github.com/sliceboard/sliceboard/internal/domain/result"
	domslice "github.com/sliceboard/sliceboard/internal/domain/slice"
)

// allRows materializes every slice to the full dataset.
type allRows struct {
	err error
}

func (a *allRows) Materialize(
	_ context.Context, _ domslice.Slice, ds *dataset.Dataset,
) ([]string, error) {
	if a.err != nil {
		return nil, a.err
	}
	ids := make([]string, 0, ds.Len())
	for _, row := range ds.Rows() {
		ids = append(ids, row.ID())
	}
	return ids, nil
}

// memResults implements ResultStore in memory for tests.
type memResults struct {
	values map[string]float64
	putErr error
	getErr error
}

func newMemResults() *memResults {
	return &memResults{values: map[string]float64{}}
}

func (m *memResults) Put(_ context.Context, key domresult.Key, value float64) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key.Encode()] = value
	return nil
}

func (m *memResults) Get(_ context.Context, key domresult.Key) (float64, error) {
	if m.getErr != nil {
		return 0, m.getErr
	}
	v, ok := m.values[key.Encode()]
	if !ok {
		return 0, domain.ErrResultUnavailable
	}
	return v, nil
}

func mustSlice(t *testing.T, name string) domslice.Slice {
	t.Helper()
	sl, err := domslice.New(name, "", nil, "")
	if err != nil {
		t.Fatalf("slice.New: %v", err)
	}
	return sl
}

// labeledDataset builds rows with a numeric "score" metadata column, a
// "label" metadata column, and per-model "answer" output columns.
func labeledDataset(t *testing.T, rows []testRow) *dataset.Dataset {
	t.Helper()
	score := column.Reconstruct(column.TypeMetadata, "score", "", "")
	label := column.Reconstruct(column.TypeMetadata, "label", "", "")

	cols := []column.Column{score, label}
	seen := map[string]bool{}

	built := make([]dataset.Row, 0, len(rows))
	for _, r := range rows {
		cells := map[string]dataset.Value{
			score.Hash(): dataset.Number(r.score),
			label.Hash(): dataset.String(r.label),
		}
		for model, answer := range r.outputs {
			out := column.Reconstruct(column.TypeOutput, "answer", model, "")
			cells[out.Hash()] = dataset.String(answer)
			if !seen[out.Hash()] {
				seen[out.Hash()] = true
				cols = append(cols, out)
			}
		}
		row, err := dataset.NewRow(r.id, cells)
		if err != nil {
			t.Fatalf("dataset.NewRow: %v", err)
		}
		built = append(built, row)
	}

	ds, err := dataset.New(built, cols)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds
}

type testRow struct {
	id      string
	score   float64
	label   string
	outputs map[string]string
}
