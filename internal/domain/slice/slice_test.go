package slice

import (
	"errors"
	"strings"
	"testing"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/predicate"
)

func agePredicate(t *testing.T, op, value string, join predicate.Join, group predicate.GroupMarker) predicate.Predicate {
	t.Helper()
	col, err := column.New(column.TypeMetadata, "age", "", "")
	if err != nil {
		t.Fatalf("column: %v", err)
	}
	p, err := predicate.New(col, op, value, join, group)
	if err != nil {
		t.Fatalf("predicate: %v", err)
	}
	return p
}

func TestNew_Valid(t *testing.T) {
	s, err := New("adults", "demographics", []predicate.Predicate{
		agePredicate(t, ">=", "18", predicate.JoinNone, predicate.GroupNone),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "adults" || s.Folder() != "demographics" || s.Transform() != "" {
		t.Errorf("unexpected slice: %+v", s)
	}
	if s.Expression().IsEmpty() {
		t.Error("expected a non-empty expression")
	}
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New("", "", nil, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_MalformedGroupRejectedAtConstruction(t *testing.T) {
	// A slice with unbalanced grouping must never exist.
	_, err := New("broken", "", []predicate.Predicate{
		agePredicate(t, ">", "1", predicate.JoinNone, predicate.GroupStart),
	}, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrUnbalancedGroup) {
		t.Errorf("error = %v, want ErrUnbalancedGroup", err)
	}
}

func TestNew_EmptyPredicates(t *testing.T) {
	s, err := New("everything", "", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Expression().IsEmpty() {
		t.Error("expected the identity filter")
	}
}

func TestWithPredicates_ReturnsNewValue(t *testing.T) {
	orig, err := New("adults", "", []predicate.Predicate{
		agePredicate(t, ">=", "18", predicate.JoinNone, predicate.GroupNone),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edited, err := orig.WithPredicates([]predicate.Predicate{
		agePredicate(t, ">=", "21", predicate.JoinNone, predicate.GroupNone),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if edited.Name() != orig.Name() {
		t.Error("edit must preserve identity")
	}
	if orig.Expression().Predicates()[0].Value() != "18" {
		t.Error("original slice must be unchanged")
	}
	if edited.Expression().Predicates()[0].Value() != "21" {
		t.Error("edited slice must carry the new predicates")
	}
}

func TestWithTransform(t *testing.T) {
	s, err := New("everything", "", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rotated := s.WithTransform("rotate")
	if rotated.Transform() != "rotate" {
		t.Errorf("transform = %q", rotated.Transform())
	}
	if s.Transform() != "" {
		t.Error("original slice must be unchanged")
	}
}
