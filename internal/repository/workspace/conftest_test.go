package workspace

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/sliceboard/sliceboard/internal/db"
	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/predicate"
	"github.com/sliceboard/sliceboard/internal/domain/slice"
)

// memStore implements the consumer interface for tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func testSlice(t *testing.T, name string) slice.Slice {
	t.Helper()
	col, err := column.New(column.TypeMetadata, "age", "", "")
	if err != nil {
		t.Fatalf("column: %v", err)
	}
	p, err := predicate.New(col, ">=", "18", predicate.JoinNone, predicate.GroupNone)
	if err != nil {
		t.Fatalf("predicate: %v", err)
	}
	s, err := slice.New(name, "demo", []predicate.Predicate{p}, "")
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	return s
}
