package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/sliceboard/sliceboard/internal/domain/column"
)

// Kind is the runtime type of a cell value.
type Kind int

const (
	// KindMissing marks an absent cell.
	KindMissing Kind = iota
	// KindNumber is a float64 cell.
	KindNumber
	// KindString is a string cell.
	KindString
	// KindBool is a boolean cell.
	KindBool
)

// Value is a single typed cell.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

// Missing is the absent-cell value.
var Missing = Value{kind: KindMissing}

// Number creates a numeric cell.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String creates a string cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool creates a boolean cell.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the cell's runtime type.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the cell is absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Number returns the numeric value and whether the cell is numeric.
func (v Value) Number() (float64, bool) { return v.num, v.kind == KindNumber }

// String returns the cell rendered as a string.
// Numbers use the shortest round-trip representation, booleans "true"/"false".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Row is one evaluation example: a stable id plus cells keyed by column hash.
type Row struct {
	id    string
	cells map[string]Value
}

// NewRow creates a row from cells keyed by column hash.
func NewRow(id string, cells map[string]Value) (Row, error) {
	if id == "" {
		return Row{}, fmt.Errorf("row id is required")
	}
	return Row{id: id, cells: cells}, nil
}

// ID returns the row identifier.
func (r Row) ID() string { return r.id }

// Cell returns the value addressed by a column, Missing if absent.
func (r Row) Cell(col column.Column) Value {
	return r.CellByHash(col.Hash())
}

// CellByHash returns the value for a precomputed column hash, Missing if absent.
func (r Row) CellByHash(hash string) Value {
	if v, ok := r.cells[hash]; ok {
		return v
	}
	return Missing
}

// Dataset is an ordered table of rows. Order is ingestion order and is
// preserved through filtering and materialization.
type Dataset struct {
	rows        []Row
	columns     []column.Column
	byID        map[string]int
	fingerprint string
}

// New creates a dataset from ordered rows and its column identities.
// Duplicate row ids are rejected.
func New(rows []Row, columns []column.Column) (*Dataset, error) {
	byID := make(map[string]int, len(rows))
	for i, r := range rows {
		if _, dup := byID[r.id]; dup {
			return nil, fmt.Errorf("duplicate row id %q", r.id)
		}
		byID[r.id] = i
	}
	return &Dataset{
		rows:        rows,
		columns:     columns,
		byID:        byID,
		fingerprint: computeFingerprint(rows, columns),
	}, nil
}

// Fingerprint returns a digest of the dataset's columns, row order, and cell
// values. Two datasets with the same content share a fingerprint; any change
// to the underlying data produces a new one. Derived state keyed by the
// fingerprint therefore never outlives the data it was computed from.
func (d *Dataset) Fingerprint() string { return d.fingerprint }

func computeFingerprint(rows []Row, columns []column.Column) string {
	h := sha256.New()
	for _, c := range columns {
		io.WriteString(h, c.Hash())
		h.Write([]byte{0})
	}
	for _, r := range rows {
		io.WriteString(h, r.id)
		h.Write([]byte{0})
		for _, c := range columns {
			v := r.CellByHash(c.Hash())
			h.Write([]byte{byte(v.Kind())})
			io.WriteString(h, v.String())
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Rows returns rows in dataset order.
func (d *Dataset) Rows() []Row { return d.rows }

// Columns returns the dataset's column identities.
func (d *Dataset) Columns() []column.Column { return d.columns }

// RowByID looks up a row by id.
func (d *Dataset) RowByID(id string) (Row, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Row{}, false
	}
	return d.rows[i], true
}

// Select returns the rows for the given ids, skipping unknown ids,
// in the order the ids are given.
func (d *Dataset) Select(ids []string) []Row {
	out := make([]Row, 0, len(ids))
	for _, id := range ids {
		if r, ok := d.RowByID(id); ok {
			out = append(out, r)
		}
	}
	return out
}
