package column

import (
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain"
)

// Type classifies where a column's values come from.
type Type string

const (
	// TypeMetadata is a metadata column from the ingested table.
	TypeMetadata Type = "METADATA"
	// TypePreDistill is a model-independent derived column.
	TypePreDistill Type = "PREDISTILL"
	// TypeOutput is a model's raw output column.
	TypeOutput Type = "OUTPUT"
	// TypeEmbedding is a model's embedding column.
	TypeEmbedding Type = "EMBEDDING"
	// TypePostDistill is a column derived from a model's output.
	TypePostDistill Type = "POSTDISTILL"
	// TypeTransform is a column produced by a transform.
	TypeTransform Type = "TRANSFORM"
)

// IsValid checks if the column type is supported.
func (t Type) IsValid() bool {
	switch t {
	case TypeMetadata, TypePreDistill, TypeOutput, TypeEmbedding, TypePostDistill, TypeTransform:
		return true
	}
	return false
}

// Column identifies a data column (immutable value object).
// Model is empty for columns that are not model-specific, transform is empty
// for untransformed columns.
type Column struct {
	columnType Type
	name       string
	model      string
	transform  string
}

// New validates and creates a Column.
func New(columnType Type, name, model, transform string) (Column, error) {
	if !columnType.IsValid() {
		return Column{}, fmt.Errorf("%w: unknown column type %q", domain.ErrInvalidColumn, columnType)
	}
	if name == "" {
		return Column{}, fmt.Errorf("%w: name is required", domain.ErrInvalidColumn)
	}
	return Column{columnType: columnType, name: name, model: model, transform: transform}, nil
}

// Reconstruct creates a Column without validation (storage hydration).
func Reconstruct(columnType Type, name, model, transform string) Column {
	return Column{columnType: columnType, name: name, model: model, transform: transform}
}

// Type returns the column type.
func (c Column) Type() Type { return c.columnType }

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Model returns the owning model, empty if not model-specific.
func (c Column) Model() string { return c.model }

// Transform returns the transform name, empty if untransformed.
func (c Column) Transform() string { return c.transform }

// Hash returns the stable lookup key for the column.
// Metadata columns are addressed by name alone across transforms and models,
// so the type component is dropped for them.
func (c Column) Hash() string {
	if c.columnType == TypeMetadata {
		return c.name + c.model
	}
	return string(c.columnType) + c.name + c.model
}

// Equal reports whether two columns are identical under the hash rule.
func (c Column) Equal(other Column) bool {
	return c.Hash() == other.Hash()
}
