package predicate

import (
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain/column"
)

// SelectionType is the kind of metadata widget a selection came from.
type SelectionType string

const (
	// SelectionRange is a numeric range selection: values are [min, max].
	SelectionRange SelectionType = "range"
	// SelectionValues is a discrete value-set selection.
	SelectionValues SelectionType = "values"
)

// Selection is a user-facing filter widget's selected value set. It is not a
// predicate itself; it constructs predicates.
type Selection struct {
	column        column.Column
	selectionType SelectionType
	values        []string
}

// NewSelection creates a metadata selection.
func NewSelection(col column.Column, selectionType SelectionType, values []string) (Selection, error) {
	switch selectionType {
	case SelectionRange:
		if len(values) != 2 {
			return Selection{}, fmt.Errorf("range selection needs exactly [min, max], got %d value(s)", len(values))
		}
	case SelectionValues:
		if len(values) == 0 {
			return Selection{}, fmt.Errorf("value selection needs at least one value")
		}
	default:
		return Selection{}, fmt.Errorf("unknown selection type %q", selectionType)
	}
	return Selection{column: col, selectionType: selectionType, values: values}, nil
}

// Column returns the selected column.
func (s Selection) Column() column.Column { return s.column }

// Type returns the selection type.
func (s Selection) Type() SelectionType { return s.selectionType }

// Values returns the selected values.
func (s Selection) Values() []string { return s.values }

// Predicates converts the selection into a predicate list that can be
// appended to an existing expression with the given join. A range selection
// becomes a grouped min/max pair; a value set becomes a grouped OR chain.
// A single selected value needs no group.
func (s Selection) Predicates(join Join) ([]Predicate, error) {
	switch s.selectionType {
	case SelectionRange:
		lo, err := New(s.column, string(OpGreaterEqual), s.values[0], join, GroupStart)
		if err != nil {
			return nil, err
		}
		hi, err := New(s.column, string(OpLessEqual), s.values[1], JoinAnd, GroupEnd)
		if err != nil {
			return nil, err
		}
		return []Predicate{lo, hi}, nil

	case SelectionValues:
		if len(s.values) == 1 {
			p, err := New(s.column, string(OpEqual), s.values[0], join, GroupNone)
			if err != nil {
				return nil, err
			}
			return []Predicate{p}, nil
		}
		preds := make([]Predicate, 0, len(s.values))
		for i, v := range s.values {
			g := GroupNone
			j := JoinOr
			if i == 0 {
				g = GroupStart
				j = join
			} else if i == len(s.values)-1 {
				g = GroupEnd
			}
			p, err := New(s.column, string(OpEqual), v, j, g)
			if err != nil {
				return nil, err
			}
			preds = append(preds, p)
		}
		return preds, nil
	}
	return nil, fmt.Errorf("unknown selection type %q", s.selectionType)
}
