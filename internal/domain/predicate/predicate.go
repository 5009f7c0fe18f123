package predicate

import (
	"strconv"
	"strings"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

// Operation is one of the six comparison symbols.
type Operation string

const (
	// OpGreater is ">".
	OpGreater Operation = ">"
	// OpLess is "<".
	OpLess Operation = "<"
	// OpEqual is "==".
	OpEqual Operation = "=="
	// OpNotEqual is "!=".
	OpNotEqual Operation = "!="
	// OpGreaterEqual is ">=".
	OpGreaterEqual Operation = ">="
	// OpLessEqual is "<=".
	OpLessEqual Operation = "<="
)

// IsValid checks if the operation is one of the six recognized symbols.
func (o Operation) IsValid() bool {
	switch o {
	case OpGreater, OpLess, OpEqual, OpNotEqual, OpGreaterEqual, OpLessEqual:
		return true
	}
	return false
}

// ParseOperation validates a comparison symbol.
// Unknown symbols are rejected here, never silently treated as true or false.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !op.IsValid() {
		return "", domain.NewInvalidOperation(s)
	}
	return op, nil
}

// Join connects a predicate to the expression on its left.
type Join string

const (
	// JoinAnd is a logical AND with the preceding expression.
	JoinAnd Join = "AND"
	// JoinOr is a logical OR with the preceding expression.
	JoinOr Join = "OR"
	// JoinNone marks the leading predicate, which has no left operand.
	JoinNone Join = ""
)

// IsValid checks if the join is recognized.
func (j Join) IsValid() bool {
	return j == JoinAnd || j == JoinOr || j == JoinNone
}

// GroupMarker opens or closes an explicit predicate group.
type GroupMarker string

const (
	// GroupNone marks an ungrouped predicate.
	GroupNone GroupMarker = ""
	// GroupStart opens a group at this predicate.
	GroupStart GroupMarker = "start"
	// GroupEnd closes the innermost open group after this predicate.
	GroupEnd GroupMarker = "end"
)

// IsValid checks if the group marker is recognized.
func (g GroupMarker) IsValid() bool {
	return g == GroupNone || g == GroupStart || g == GroupEnd
}

// Predicate is a single column/operation/value comparison (immutable value
// object), optionally joined to its neighbors and grouped.
type Predicate struct {
	column    column.Column
	operation Operation
	value     string
	join      Join
	group     GroupMarker
}

// New validates and creates a Predicate.
func New(col column.Column, operation, value string, join Join, group GroupMarker) (Predicate, error) {
	op, err := ParseOperation(operation)
	if err != nil {
		return Predicate{}, err
	}
	if !join.IsValid() {
		return Predicate{}, domain.NewInvalidOperation(string(join))
	}
	if !group.IsValid() {
		return Predicate{}, domain.NewInvalidOperation(string(group))
	}
	return Predicate{column: col, operation: op, value: value, join: join, group: group}, nil
}

// Column returns the compared column.
func (p Predicate) Column() column.Column { return p.column }

// Operation returns the comparison symbol.
func (p Predicate) Operation() Operation { return p.operation }

// Value returns the comparison operand.
func (p Predicate) Value() string { return p.value }

// Join returns the join with the preceding expression.
func (p Predicate) Join() Join { return p.join }

// Group returns the group marker.
func (p Predicate) Group() GroupMarker { return p.group }

// Matches applies the predicate to one row. A missing cell never matches.
func (p Predicate) Matches(row dataset.Row) bool {
	cell := row.Cell(p.column)
	if cell.IsMissing() {
		return false
	}
	return compare(p.operation, cell, p.value)
}

// CompareValue applies op between a cell and a string operand with the same
// numeric-aware rules used for row matching.
func CompareValue(op Operation, cell dataset.Value, operand string) bool {
	return compare(op, cell, operand)
}

// compare applies op between a cell and a string operand.
// When both sides are numeric the comparison is by value, so "10" is greater
// than "9" and 10 equals "10.0". Everything else compares as strings.
func compare(op Operation, cell dataset.Value, operand string) bool {
	if cn, ok := numeric(cell); ok {
		if on, err := strconv.ParseFloat(strings.TrimSpace(operand), 64); err == nil {
			return compareFloat(op, cn, on)
		}
	}
	return compareString(op, cell.String(), operand)
}

// numeric extracts a float from a numeric cell or a numeric-looking string cell.
func numeric(cell dataset.Value) (float64, bool) {
	if n, ok := cell.Number(); ok {
		return n, true
	}
	if cell.Kind() == dataset.KindString {
		if n, err := strconv.ParseFloat(strings.TrimSpace(cell.String()), 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func compareFloat(op Operation, a, b float64) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpLess:
		return a < b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	case OpGreaterEqual:
		return a >= b
	case OpLessEqual:
		return a <= b
	}
	return false
}

func compareString(op Operation, a, b string) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpLess:
		return a < b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	case OpGreaterEqual:
		return a >= b
	case OpLessEqual:
		return a <= b
	}
	return false
}
