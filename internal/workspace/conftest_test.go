package workspace

import (
	"context"
	"testing"

	"github.com/sliceboard/sliceboard/internal/domain/report"
	"github.com/sliceboard/sliceboard/internal/domain/slice"
	"github.com/sliceboard/sliceboard/internal/domain/tag"
)

// memStore implements Store in memory for tests.
type memStore struct {
	slices  map[string]slice.Slice
	reports map[string]report.Report
	tags    map[string]tag.Tag

	saveErr error
}

func newMemStore() *memStore {
	return &memStore{
		slices:  map[string]slice.Slice{},
		reports: map[string]report.Report{},
		tags:    map[string]tag.Tag{},
	}
}

func (m *memStore) SaveSlice(_ context.Context, s slice.Slice) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.slices[s.Name()] = s
	return nil
}

func (m *memStore) DeleteSlice(_ context.Context, name string) error {
	delete(m.slices, name)
	return nil
}

func (m *memStore) ListSlices(_ context.Context) ([]slice.Slice, error) {
	out := make([]slice.Slice, 0, len(m.slices))
	for _, s := range m.slices {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) SaveReport(_ context.Context, r report.Report) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.reports[r.Name()] = r
	return nil
}

func (m *memStore) DeleteReport(_ context.Context, name string) error {
	delete(m.reports, name)
	return nil
}

func (m *memStore) ListReports(_ context.Context) ([]report.Report, error) {
	out := make([]report.Report, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) SaveTag(_ context.Context, t tag.Tag) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tags[t.Name()] = t
	return nil
}

func (m *memStore) DeleteTag(_ context.Context, name string) error {
	delete(m.tags, name)
	return nil
}

func (m *memStore) ListTags(_ context.Context) ([]tag.Tag, error) {
	out := make([]tag.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		out = append(out, t)
	}
	return out, nil
}

// fakeInvalidator records invalidations.
type fakeInvalidator struct {
	invalidated []string
	allCalls    int
	err         error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, sliceName string) error {
	if f.err != nil {
		return f.err
	}
	f.invalidated = append(f.invalidated, sliceName)
	return nil
}

func (f *fakeInvalidator) InvalidateAll(_ context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.allCalls++
	return nil
}

func testSlice(t *testing.T, name string) slice.Slice {
	t.Helper()
	s, err := slice.New(name, "", nil, "")
	if err != nil {
		t.Fatalf("slice.New: %v", err)
	}
	return s
}

func testReport(t *testing.T, name string) report.Report {
	t.Helper()
	p, err := report.NewPredicate("s", "accuracy", "", ">", "0.5")
	if err != nil {
		t.Fatalf("report.NewPredicate: %v", err)
	}
	r, err := report.New(name, []report.Predicate{p})
	if err != nil {
		t.Fatalf("report.New: %v", err)
	}
	return r
}

func testTag(t *testing.T, name string, ids ...string) tag.Tag {
	t.Helper()
	tg, err := tag.New(name, ids)
	if err != nil {
		t.Fatalf("tag.New: %v", err)
	}
	return tg
}
