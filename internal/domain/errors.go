package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation signals an unrecognized comparison symbol.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrUnbalancedGroup signals malformed predicate group nesting.
	ErrUnbalancedGroup = errors.New("unbalanced predicate group")
	// ErrInvalidColumn signals an invalid column definition.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrSliceNotFound signals a missing slice.
	ErrSliceNotFound = errors.New("slice not found")
	// ErrSliceExists signals a duplicate slice name.
	ErrSliceExists = errors.New("slice already exists")
	// ErrReportNotFound signals a missing report.
	ErrReportNotFound = errors.New("report not found")
	// ErrReportExists signals a duplicate report name.
	ErrReportExists = errors.New("report already exists")
	// ErrTagNotFound signals a missing tag.
	ErrTagNotFound = errors.New("tag not found")
	// ErrTagExists signals a duplicate tag name.
	ErrTagExists = errors.New("tag already exists")
	// ErrResultUnavailable signals a metric result that has not been computed yet.
	// Report evaluation maps it to an "unavailable" status, never to a failure.
	ErrResultUnavailable = errors.New("result unavailable")
	// ErrMetricNotFound signals an unregistered metric function.
	ErrMetricNotFound = errors.New("metric not found")
	// ErrTransformNotFound signals an unresolvable transform name.
	ErrTransformNotFound = errors.New("transform not found")
)

// InvalidOperationError wraps ErrInvalidOperation with the offending symbol.
type InvalidOperationError struct {
	Symbol string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidOperation.Error(), e.Symbol)
}

func (e *InvalidOperationError) Unwrap() error { return ErrInvalidOperation }

// NewInvalidOperation creates an invalid operation error.
func NewInvalidOperation(symbol string) error {
	return &InvalidOperationError{Symbol: symbol}
}
