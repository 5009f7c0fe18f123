package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	"github.com/sliceboard/sliceboard/internal/domain/predicate"
	domreport "github.com/sliceboard/sliceboard/internal/domain/report"
	"github.com/sliceboard/sliceboard/internal/domain/result"
	"github.com/sliceboard/sliceboard/internal/metrics"
)

// Outcome is the evaluation of a single report predicate.
type Outcome struct {
	Predicate domreport.Predicate
	Status    domreport.Status
	Value     float64 // meaningful only when Status is not unavailable
}

// Evaluation is the evaluation of a whole report against one model, one
// outcome per predicate in authored order.
type Evaluation struct {
	Report   string
	Model    string
	Outcomes []Outcome
}

// Passed reports whether every predicate passed. Any unavailable or failing
// predicate makes the report not passed.
func (e Evaluation) Passed() bool {
	for _, o := range e.Outcomes {
		if o.Status != domreport.StatusPass {
			return false
		}
	}
	return len(e.Outcomes) > 0
}

// Service evaluates reports against computed metric results.
type Service struct {
	results ResultReader
}

// New creates a report service.
func New(results ResultReader) *Service {
	return &Service{results: results}
}

// EvaluatePredicate evaluates one report predicate for a model. A result
// missing from the store yields unavailable, never a failure.
func (s *Service) EvaluatePredicate(
	ctx context.Context, p domreport.Predicate, model string,
) (Outcome, error) {
	key, err := result.NewKey(p.SliceName(), p.Metric(), p.Transform(), model)
	if err != nil {
		return Outcome{}, fmt.Errorf("result key: %w", err)
	}

	v, err := s.results.Get(ctx, key)
	if errors.Is(err, domain.ErrResultUnavailable) {
		return Outcome{Predicate: p, Status: domreport.StatusUnavailable}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("get result %s: %w", key, err)
	}

	status := domreport.StatusFail
	if predicate.CompareValue(p.Operation(), dataset.Number(v), p.Value()) {
		status = domreport.StatusPass
	}
	return Outcome{Predicate: p, Status: status, Value: v}, nil
}

// Evaluate evaluates every predicate of a report for one model. Predicates
// are independent: evaluation never short-circuits, and outcomes preserve
// authored order.
func (s *Service) Evaluate(
	ctx context.Context, r domreport.Report, model string,
) (Evaluation, error) {
	ev := Evaluation{
		Report:   r.Name(),
		Model:    model,
		Outcomes: make([]Outcome, 0, len(r.Predicates())),
	}
	for _, p := range r.Predicates() {
		o, err := s.EvaluatePredicate(ctx, p, model)
		if err != nil {
			return Evaluation{}, err
		}
		metrics.ReportEvaluationsTotal.WithLabelValues(r.Name(), string(o.Status)).Inc()
		ev.Outcomes = append(ev.Outcomes, o)
	}
	return ev, nil
}
