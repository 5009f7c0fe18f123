package report

import (
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain/predicate"
)

// Status is the outcome of one report predicate.
type Status string

const (
	// StatusPass means the check held.
	StatusPass Status = "pass"
	// StatusFail means the check did not hold.
	StatusFail Status = "fail"
	// StatusUnavailable means the referenced result has not been computed.
	// It is distinct from failure and renders as "no data".
	StatusUnavailable Status = "unavailable"
)

// Predicate is one threshold check: the metric value for (slice, metric,
// transform) compared against a constant. Predicates reference slices by
// name, not by ownership.
type Predicate struct {
	sliceName string
	metric    string
	transform string
	operation predicate.Operation
	value     string
}

// NewPredicate validates and creates a report predicate.
func NewPredicate(sliceName, metric, transform, operation, value string) (Predicate, error) {
	if sliceName == "" {
		return Predicate{}, fmt.Errorf("report predicate: slice name is required")
	}
	if metric == "" {
		return Predicate{}, fmt.Errorf("report predicate: metric is required")
	}
	op, err := predicate.ParseOperation(operation)
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{sliceName: sliceName, metric: metric, transform: transform, operation: op, value: value}, nil
}

// SliceName returns the referenced slice name.
func (p Predicate) SliceName() string { return p.sliceName }

// Metric returns the referenced metric name.
func (p Predicate) Metric() string { return p.metric }

// Transform returns the transform context, empty for the raw view.
func (p Predicate) Transform() string { return p.transform }

// Operation returns the comparison symbol.
func (p Predicate) Operation() predicate.Operation { return p.operation }

// Value returns the threshold.
func (p Predicate) Value() string { return p.value }

// Report is a named set of threshold checks over metric results. Its
// predicates are independent; each yields its own status.
type Report struct {
	name       string
	predicates []Predicate
}

// New validates and creates a Report.
func New(name string, predicates []Predicate) (Report, error) {
	if name == "" {
		return Report{}, fmt.Errorf("report name is required")
	}
	return Report{name: name, predicates: predicates}, nil
}

// Name returns the report name, unique within a workspace.
func (r Report) Name() string { return r.name }

// Predicates returns the checks in authoring order.
func (r Report) Predicates() []Predicate { return r.predicates }

// WithPredicates returns a copy with a different check list.
func (r Report) WithPredicates(predicates []Predicate) Report {
	out := r
	out.predicates = predicates
	return out
}
