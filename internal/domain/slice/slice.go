package slice

import (
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain/predicate"
)

// Slice is a named subset of evaluation rows defined by a filter predicate
// expression (immutable value object). Materialized row ids are not stored on
// the Slice; they live in a side cache keyed by slice identity, so a Slice
// value can be shared freely.
type Slice struct {
	name       string
	folder     string
	expression predicate.Expression
	transform  string
}

// New validates and creates a Slice. The predicate list is compiled here, so
// a slice with malformed grouping or an unknown operation never exists.
func New(name, folder string, preds []predicate.Predicate, transform string) (Slice, error) {
	if name == "" {
		return Slice{}, fmt.Errorf("slice name is required")
	}
	expr, err := predicate.Compile(preds)
	if err != nil {
		return Slice{}, fmt.Errorf("slice %q: %w", name, err)
	}
	return Slice{name: name, folder: folder, expression: expr, transform: transform}, nil
}

// Name returns the slice name, unique within a workspace.
func (s Slice) Name() string { return s.name }

// Folder returns the UI folder the slice is organized under.
func (s Slice) Folder() string { return s.folder }

// Expression returns the compiled filter expression.
func (s Slice) Expression() predicate.Expression { return s.expression }

// Transform returns the transform name, empty for the raw dataset view.
func (s Slice) Transform() string { return s.transform }

// WithPredicates returns a copy with a recompiled expression. The caller must
// invalidate the slice's materialization cache.
func (s Slice) WithPredicates(preds []predicate.Predicate) (Slice, error) {
	expr, err := predicate.Compile(preds)
	if err != nil {
		return Slice{}, fmt.Errorf("slice %q: %w", s.name, err)
	}
	out := s
	out.expression = expr
	return out, nil
}

// WithTransform returns a copy with a different transform. The caller must
// invalidate the slice's materialization cache.
func (s Slice) WithTransform(transform string) Slice {
	out := s
	out.transform = transform
	return out
}
