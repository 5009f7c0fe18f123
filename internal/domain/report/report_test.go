package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/sliceboard/sliceboard/internal/domain"
)

func TestNewPredicate_Valid(t *testing.T) {
	p, err := NewPredicate("adults", "accuracy", "", ">=", "0.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SliceName() != "adults" || p.Metric() != "accuracy" || p.Value() != "0.9" {
		t.Errorf("unexpected predicate: %+v", p)
	}
}

func TestNewPredicate_Invalid(t *testing.T) {
	tests := []struct {
		name                         string
		sliceName, metric, operation string
		wantIs                       error
		wantSubstr                   string
	}{
		{"missing slice", "", "accuracy", ">=", nil, "slice name is required"},
		{"missing metric", "adults", "", ">=", nil, "metric is required"},
		{"bad operation", "adults", "accuracy", "=>", domain.ErrInvalidOperation, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPredicate(tt.sliceName, tt.metric, "", tt.operation, "0.9")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
			if tt.wantSubstr != "" && !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSubstr)
			}
		})
	}
}

func TestNew_RequiresName(t *testing.T) {
	_, err := New("", nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestWithPredicates(t *testing.T) {
	r, err := New("regressions", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := NewPredicate("adults", "accuracy", "", ">=", "0.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edited := r.WithPredicates([]Predicate{p})
	if len(r.Predicates()) != 0 {
		t.Error("original report must be unchanged")
	}
	if len(edited.Predicates()) != 1 {
		t.Errorf("edited report has %d predicates, want 1", len(edited.Predicates()))
	}
}
