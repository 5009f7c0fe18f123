package workspace

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/sliceboard/sliceboard/internal/db"
	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/report"
	"github.com/sliceboard/sliceboard/internal/domain/slice"
	"github.com/sliceboard/sliceboard/internal/domain/tag"
)

var (
	sliceKeyPrefix  = domain.KeyPrefix + "slice:"
	reportKeyPrefix = domain.KeyPrefix + "report:"
	tagKeyPrefix    = domain.KeyPrefix + "tag:"
)

// store is the consumer interface for workspace persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo persists slice, report, and tag definitions as JSON documents.
type Repo struct {
	store store
}

// New creates a workspace repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// --- slices ---

// SaveSlice upserts a slice definition.
func (r *Repo) SaveSlice(ctx context.Context, s slice.Slice) error {
	data, err := json.Marshal(sliceToDTO(s))
	if err != nil {
		return fmt.Errorf("encode slice %q: %w", s.Name(), err)
	}
	if err := r.store.Set(ctx, nameKey(sliceKeyPrefix, s.Name()), data); err != nil {
		return fmt.Errorf("save slice %q: %w", s.Name(), err)
	}
	return nil
}

// GetSlice loads one slice definition by name.
func (r *Repo) GetSlice(ctx context.Context, name string) (slice.Slice, error) {
	data, err := r.store.Get(ctx, nameKey(sliceKeyPrefix, name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return slice.Slice{}, domain.ErrSliceNotFound
		}
		return slice.Slice{}, fmt.Errorf("get slice %q: %w", name, err)
	}
	var dto sliceDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return slice.Slice{}, fmt.Errorf("decode slice %q: %w", name, err)
	}
	return sliceFromDTO(dto)
}

// DeleteSlice removes a slice definition.
func (r *Repo) DeleteSlice(ctx context.Context, name string) error {
	key := nameKey(sliceKeyPrefix, name)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check slice %q: %w", name, err)
	}
	if !exists {
		return domain.ErrSliceNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete slice %q: %w", name, err)
	}
	return nil
}

// ListSlices loads every persisted slice, sorted by name.
func (r *Repo) ListSlices(ctx context.Context) ([]slice.Slice, error) {
	keys, err := r.store.Scan(ctx, sliceKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan slices: %w", err)
	}
	out := make([]slice.Slice, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between scan and get
			}
			return nil, fmt.Errorf("get %q: %w", key, err)
		}
		var dto sliceDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		s, err := sliceFromDTO(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// --- reports ---

// SaveReport upserts a report definition.
func (r *Repo) SaveReport(ctx context.Context, rep report.Report) error {
	data, err := json.Marshal(reportToDTO(rep))
	if err != nil {
		return fmt.Errorf("encode report %q: %w", rep.Name(), err)
	}
	if err := r.store.Set(ctx, nameKey(reportKeyPrefix, rep.Name()), data); err != nil {
		return fmt.Errorf("save report %q: %w", rep.Name(), err)
	}
	return nil
}

// GetReport loads one report definition by name.
func (r *Repo) GetReport(ctx context.Context, name string) (report.Report, error) {
	data, err := r.store.Get(ctx, nameKey(reportKeyPrefix, name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return report.Report{}, domain.ErrReportNotFound
		}
		return report.Report{}, fmt.Errorf("get report %q: %w", name, err)
	}
	var dto reportDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return report.Report{}, fmt.Errorf("decode report %q: %w", name, err)
	}
	return reportFromDTO(dto)
}

// DeleteReport removes a report definition.
func (r *Repo) DeleteReport(ctx context.Context, name string) error {
	key := nameKey(reportKeyPrefix, name)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check report %q: %w", name, err)
	}
	if !exists {
		return domain.ErrReportNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete report %q: %w", name, err)
	}
	return nil
}

// ListReports loads every persisted report, sorted by name.
func (r *Repo) ListReports(ctx context.Context) ([]report.Report, error) {
	keys, err := r.store.Scan(ctx, reportKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan reports: %w", err)
	}
	out := make([]report.Report, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("get %q: %w", key, err)
		}
		var dto reportDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		rep, err := reportFromDTO(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// --- tags ---

// SaveTag upserts a tag.
func (r *Repo) SaveTag(ctx context.Context, t tag.Tag) error {
	data, err := json.Marshal(tagToDTO(t))
	if err != nil {
		return fmt.Errorf("encode tag %q: %w", t.Name(), err)
	}
	if err := r.store.Set(ctx, nameKey(tagKeyPrefix, t.Name()), data); err != nil {
		return fmt.Errorf("save tag %q: %w", t.Name(), err)
	}
	return nil
}

// GetTag loads one tag by name.
func (r *Repo) GetTag(ctx context.Context, name string) (tag.Tag, error) {
	data, err := r.store.Get(ctx, nameKey(tagKeyPrefix, name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return tag.Tag{}, domain.ErrTagNotFound
		}
		return tag.Tag{}, fmt.Errorf("get tag %q: %w", name, err)
	}
	var dto tagDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return tag.Tag{}, fmt.Errorf("decode tag %q: %w", name, err)
	}
	return tagFromDTO(dto)
}

// DeleteTag removes a tag.
func (r *Repo) DeleteTag(ctx context.Context, name string) error {
	key := nameKey(tagKeyPrefix, name)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check tag %q: %w", name, err)
	}
	if !exists {
		return domain.ErrTagNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete tag %q: %w", name, err)
	}
	return nil
}

// ListTags loads every persisted tag, sorted by name.
func (r *Repo) ListTags(ctx context.Context) ([]tag.Tag, error) {
	keys, err := r.store.Scan(ctx, tagKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}
	out := make([]tag.Tag, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("get %q: %w", key, err)
		}
		var dto tagDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		t, err := tagFromDTO(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// nameKey hashes user-authored names so they are safe as store keys.
func nameKey(prefix, name string) string {
	h := sha256.Sum256([]byte(name))
	return prefix + hex.EncodeToString(h[:])
}
