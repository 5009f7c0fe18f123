package predicate

import (
	"errors"
	"testing"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

func mustColumn(t *testing.T, name string) column.Column {
	t.Helper()
	c, err := column.New(column.TypeMetadata, name, "", "")
	if err != nil {
		t.Fatalf("column %q: %v", name, err)
	}
	return c
}

func testRow(t *testing.T, cells map[string]dataset.Value) dataset.Row {
	t.Helper()
	r, err := dataset.NewRow("row-1", cells)
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	return r
}

func TestParseOperation(t *testing.T) {
	for _, sym := range []string{">", "<", "==", "!=", ">=", "<="} {
		if _, err := ParseOperation(sym); err != nil {
			t.Errorf("ParseOperation(%q) = %v", sym, err)
		}
	}

	for _, sym := range []string{"=", "<>", "contains", "", ">>"} {
		_, err := ParseOperation(sym)
		if err == nil {
			t.Errorf("ParseOperation(%q): expected error", sym)
			continue
		}
		if !errors.Is(err, domain.ErrInvalidOperation) {
			t.Errorf("ParseOperation(%q) error = %v, want ErrInvalidOperation", sym, err)
		}
	}
}

func TestMatches_Numeric(t *testing.T) {
	age := mustColumn(t, "age")
	row := testRow(t, map[string]dataset.Value{"age": dataset.Number(10)})

	tests := []struct {
		name  string
		op    string
		value string
		want  bool
	}{
		{"eq same value", "==", "10", true},
		{"eq same value different spelling", "==", "10.0", true},
		{"eq different value", "==", "10.5", false},
		{"ne different value", "!=", "9", true},
		{"gt numeric not lexical", ">", "9", true},
		{"lt", "<", "9", false},
		{"gte boundary", ">=", "10", true},
		{"lte boundary", "<=", "10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(age, tt.op, tt.value, JoinNone, GroupNone)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := p.Matches(row); got != tt.want {
				t.Errorf("age %s %s = %v, want %v", tt.op, tt.value, got, tt.want)
			}
		})
	}
}

func TestMatches_NumericString(t *testing.T) {
	// Numeric strings compare by value, not lexically: "10" > "9".
	age := mustColumn(t, "age")
	row := testRow(t, map[string]dataset.Value{"age": dataset.String("10")})

	p, err := New(age, ">", "9", JoinNone, GroupNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Matches(row) {
		t.Error(`"10" > "9" must compare numerically and match`)
	}
}

func TestMatches_String(t *testing.T) {
	label := mustColumn(t, "label")
	row := testRow(t, map[string]dataset.Value{"label": dataset.String("cat")})

	tests := []struct {
		op    string
		value string
		want  bool
	}{
		{"==", "cat", true},
		{"==", "dog", false},
		{"!=", "dog", true},
		{"<", "dog", true},
		{">", "bird", true},
	}

	for _, tt := range tests {
		t.Run(tt.op+tt.value, func(t *testing.T) {
			p, err := New(label, tt.op, tt.value, JoinNone, GroupNone)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := p.Matches(row); got != tt.want {
				t.Errorf("label %s %q = %v, want %v", tt.op, tt.value, got, tt.want)
			}
		})
	}
}

func TestMatches_Bool(t *testing.T) {
	correct := mustColumn(t, "correct")
	row := testRow(t, map[string]dataset.Value{"correct": dataset.Bool(true)})

	p, err := New(correct, "==", "true", JoinNone, GroupNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Matches(row) {
		t.Error("boolean cell must match its string rendering")
	}
}

func TestMatches_MissingCell(t *testing.T) {
	absent := mustColumn(t, "absent")
	row := testRow(t, map[string]dataset.Value{"age": dataset.Number(1)})

	// A missing cell never matches, not even via "!=".
	p, err := New(absent, "!=", "anything", JoinNone, GroupNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Matches(row) {
		t.Error("missing cell must not match")
	}
}

func TestNew_InvalidOperation(t *testing.T) {
	_, err := New(mustColumn(t, "age"), "~=", "1", JoinNone, GroupNone)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrInvalidOperation) {
		t.Errorf("error = %v, want ErrInvalidOperation", err)
	}
}
