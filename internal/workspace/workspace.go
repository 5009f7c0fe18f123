package workspace

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/report"
	"github.com/sliceboard/sliceboard/internal/domain/slice"
	"github.com/sliceboard/sliceboard/internal/domain/tag"
)

// Settings are the dataset-level knobs a workspace is opened with.
type Settings struct {
	IDColumn    string
	DataColumn  string
	LabelColumn string
	Models      []string
	Metrics     []string
}

// Workspace is the single owner of the mutable dashboard state: the slices,
// reports, and tags of one project. All edits go through it so persistence
// and cache invalidation stay consistent.
type Workspace struct {
	runID    string
	settings Settings
	store    Store
	slices   SliceInvalidator
	log      *zap.Logger

	mu      sync.RWMutex
	bySlice map[string]slice.Slice
	byRep   map[string]report.Report
	byTag   map[string]tag.Tag
}

// New creates an empty workspace. Call Hydrate to load persisted state.
func New(settings Settings, store Store, slices SliceInvalidator, log *zap.Logger) *Workspace {
	return &Workspace{
		runID:    uuid.NewString(),
		settings: settings,
		store:    store,
		slices:   slices,
		log:      log,
		bySlice:  map[string]slice.Slice{},
		byRep:    map[string]report.Report{},
		byTag:    map[string]tag.Tag{},
	}
}

// RunID identifies this workspace session.
func (w *Workspace) RunID() string { return w.runID }

// Settings returns the workspace settings.
func (w *Workspace) Settings() Settings { return w.settings }

// Hydrate loads persisted slices, reports, and tags into memory.
func (w *Workspace) Hydrate(ctx context.Context) error {
	slices, err := w.store.ListSlices(ctx)
	if err != nil {
		return fmt.Errorf("list slices: %w", err)
	}
	reports, err := w.store.ListReports(ctx)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	tags, err := w.store.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.bySlice = make(map[string]slice.Slice, len(slices))
	for _, s := range slices {
		w.bySlice[s.Name()] = s
	}
	w.byRep = make(map[string]report.Report, len(reports))
	for _, r := range reports {
		w.byRep[r.Name()] = r
	}
	w.byTag = make(map[string]tag.Tag, len(tags))
	for _, t := range tags {
		w.byTag[t.Name()] = t
	}

	w.log.Info("workspace hydrated",
		zap.String("run_id", w.runID),
		zap.Int("slices", len(slices)),
		zap.Int("reports", len(reports)),
		zap.Int("tags", len(tags)))
	return nil
}

// CreateSlice adds a new slice. The name must be unused.
func (w *Workspace) CreateSlice(ctx context.Context, s slice.Slice) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bySlice[s.Name()]; ok {
		return fmt.Errorf("%w: %s", domain.ErrSliceExists, s.Name())
	}
	if err := w.store.SaveSlice(ctx, s); err != nil {
		return fmt.Errorf("save slice: %w", err)
	}
	w.bySlice[s.Name()] = s
	return nil
}

// UpdateSlice replaces an existing slice and invalidates everything derived
// from it.
func (w *Workspace) UpdateSlice(ctx context.Context, s slice.Slice) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bySlice[s.Name()]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSliceNotFound, s.Name())
	}
	if err := w.store.SaveSlice(ctx, s); err != nil {
		return fmt.Errorf("save slice: %w", err)
	}
	if err := w.slices.Invalidate(ctx, s.Name()); err != nil {
		return err
	}
	w.bySlice[s.Name()] = s
	return nil
}

// DeleteSlice removes a slice and invalidates everything derived from it.
func (w *Workspace) DeleteSlice(ctx context.Context, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bySlice[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSliceNotFound, name)
	}
	if err := w.store.DeleteSlice(ctx, name); err != nil {
		return fmt.Errorf("delete slice: %w", err)
	}
	if err := w.slices.Invalidate(ctx, name); err != nil {
		return err
	}
	delete(w.bySlice, name)
	return nil
}

// Slice looks up one slice by name.
func (w *Workspace) Slice(name string) (slice.Slice, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.bySlice[name]
	if !ok {
		return slice.Slice{}, fmt.Errorf("%w: %s", domain.ErrSliceNotFound, name)
	}
	return s, nil
}

// Slices lists all slices sorted by name.
func (w *Workspace) Slices() []slice.Slice {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]slice.Slice, 0, len(w.bySlice))
	for _, s := range w.bySlice {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// CreateReport adds a new report. The name must be unused.
func (w *Workspace) CreateReport(ctx context.Context, r report.Report) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byRep[r.Name()]; ok {
		return fmt.Errorf("%w: %s", domain.ErrReportExists, r.Name())
	}
	if err := w.store.SaveReport(ctx, r); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	w.byRep[r.Name()] = r
	return nil
}

// UpdateReport replaces an existing report.
func (w *Workspace) UpdateReport(ctx context.Context, r report.Report) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byRep[r.Name()]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrReportNotFound, r.Name())
	}
	if err := w.store.SaveReport(ctx, r); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	w.byRep[r.Name()] = r
	return nil
}

// DeleteReport removes a report.
func (w *Workspace) DeleteReport(ctx context.Context, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byRep[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrReportNotFound, name)
	}
	if err := w.store.DeleteReport(ctx, name); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	delete(w.byRep, name)
	return nil
}

// Report looks up one report by name.
func (w *Workspace) Report(name string) (report.Report, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	r, ok := w.byRep[name]
	if !ok {
		return report.Report{}, fmt.Errorf("%w: %s", domain.ErrReportNotFound, name)
	}
	return r, nil
}

// Reports lists all reports sorted by name.
func (w *Workspace) Reports() []report.Report {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]report.Report, 0, len(w.byRep))
	for _, r := range w.byRep {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// CreateTag adds a new tag. The name must be unused.
func (w *Workspace) CreateTag(ctx context.Context, t tag.Tag) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byTag[t.Name()]; ok {
		return fmt.Errorf("%w: %s", domain.ErrTagExists, t.Name())
	}
	if err := w.store.SaveTag(ctx, t); err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	w.byTag[t.Name()] = t
	return nil
}

// UpdateTag replaces an existing tag.
func (w *Workspace) UpdateTag(ctx context.Context, t tag.Tag) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byTag[t.Name()]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTagNotFound, t.Name())
	}
	if err := w.store.SaveTag(ctx, t); err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	w.byTag[t.Name()] = t
	return nil
}

// DeleteTag removes a tag.
func (w *Workspace) DeleteTag(ctx context.Context, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byTag[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTagNotFound, name)
	}
	if err := w.store.DeleteTag(ctx, name); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	delete(w.byTag, name)
	return nil
}

// Tag looks up one tag by name.
func (w *Workspace) Tag(name string) (tag.Tag, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.byTag[name]
	if !ok {
		return tag.Tag{}, fmt.Errorf("%w: %s", domain.ErrTagNotFound, name)
	}
	return t, nil
}

// Tags lists all tags sorted by name.
func (w *Workspace) Tags() []tag.Tag {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]tag.Tag, 0, len(w.byTag))
	for _, t := range w.byTag {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ResetDerived drops every cached slice id set, used after dataset reloads.
func (w *Workspace) ResetDerived(ctx context.Context) error {
	return w.slices.InvalidateAll(ctx)
}
