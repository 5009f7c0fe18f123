package resultstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sliceboard/sliceboard/internal/db"
	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/result"
)

var resultKeyPrefix = domain.KeyPrefix + "result:"

// store is the consumer interface for the result store (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Store persists computed metric values addressed by their
// (slice, metric, transform, model) key. Redis keys are binary safe, so the
// encoded tuple is stored verbatim and can be decoded back on listing.
type Store struct {
	store store
}

// New creates a result store.
func New(s store) *Store {
	return &Store{store: s}
}

// Put stores one computed value under its key.
func (s *Store) Put(ctx context.Context, key result.Key, value float64) error {
	data := strconv.FormatFloat(value, 'g', -1, 64)
	if err := s.store.Set(ctx, storeKey(key), []byte(data)); err != nil {
		return fmt.Errorf("put result %s: %w", key, err)
	}
	return nil
}

// Get returns the value for a key. A missing key is ErrResultUnavailable:
// a normal "not computed yet" answer, not a storage failure.
func (s *Store) Get(ctx context.Context, key result.Key) (float64, error) {
	data, err := s.store.Get(ctx, storeKey(key))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, domain.ErrResultUnavailable
		}
		return 0, fmt.Errorf("get result %s: %w", key, err)
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt result %s: %w", key, err)
	}
	return v, nil
}

// Delete drops one stored value.
func (s *Store) Delete(ctx context.Context, key result.Key) error {
	if err := s.store.Del(ctx, storeKey(key)); err != nil {
		return fmt.Errorf("delete result %s: %w", key, err)
	}
	return nil
}

// List returns the keys of every stored result.
func (s *Store) List(ctx context.Context) ([]result.Key, error) {
	raw, err := s.store.Scan(ctx, resultKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan results: %w", err)
	}
	keys := make([]result.Key, 0, len(raw))
	for _, r := range raw {
		k, err := result.DecodeKey(strings.TrimPrefix(r, resultKeyPrefix))
		if err != nil {
			return nil, fmt.Errorf("decode result key %q: %w", r, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// DeleteBySlice drops every stored value for one slice, e.g. after the
// slice's definition changed.
func (s *Store) DeleteBySlice(ctx context.Context, sliceName string) error {
	keys, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if k.Slice != sliceName {
			continue
		}
		if err := s.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func storeKey(key result.Key) string {
	return resultKeyPrefix + key.Encode()
}
