// Package sliceboard is the embeddable data model of an interactive
// model-evaluation dashboard: slices carve a dataset into row subsets with
// filter predicates, metrics are computed per slice and model, and reports
// check metric results against thresholds.
package sliceboard

import (
	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
	"github.com/sliceboard/sliceboard/internal/domain/metric"
	"github.com/sliceboard/sliceboard/internal/domain/predicate"
	"github.com/sliceboard/sliceboard/internal/domain/report"
	"github.com/sliceboard/sliceboard/internal/domain/result"
	"github.com/sliceboard/sliceboard/internal/domain/slice"
	"github.com/sliceboard/sliceboard/internal/domain/tag"
	reportuc "github.com/sliceboard/sliceboard/internal/usecase/report"
	resultuc "github.com/sliceboard/sliceboard/internal/usecase/result"
	"github.com/sliceboard/sliceboard/internal/workspace"
)

// Aliases exposing the domain model to embedding applications.
type (
	Column     = column.Column
	ColumnType = column.Type

	Dataset = dataset.Dataset
	Row     = dataset.Row
	Value   = dataset.Value

	Predicate   = predicate.Predicate
	Operation   = predicate.Operation
	Join        = predicate.Join
	GroupMarker = predicate.GroupMarker
	Selection   = predicate.Selection

	Slice = slice.Slice
	Tag   = tag.Tag

	Report          = report.Report
	ReportPredicate = report.Predicate
	ReportStatus    = report.Status

	ResultKey   = result.Key
	MetricRange = metric.Range

	ReportEvaluation = reportuc.Evaluation
	ReportOutcome    = reportuc.Outcome

	Settings = workspace.Settings
)

// Column types.
const (
	TypeMetadata    = column.TypeMetadata
	TypePreDistill  = column.TypePreDistill
	TypeOutput      = column.TypeOutput
	TypeEmbedding   = column.TypeEmbedding
	TypePostDistill = column.TypePostDistill
	TypeTransform   = column.TypeTransform
)

// Joins and group markers.
const (
	JoinAnd  = predicate.JoinAnd
	JoinOr   = predicate.JoinOr
	JoinNone = predicate.JoinNone

	GroupNone  = predicate.GroupNone
	GroupStart = predicate.GroupStart
	GroupEnd   = predicate.GroupEnd
)

// Report statuses.
const (
	StatusPass        = report.StatusPass
	StatusFail        = report.StatusFail
	StatusUnavailable = report.StatusUnavailable
)

// NewColumn creates a validated column.
func NewColumn(t ColumnType, name, model, transform string) (Column, error) {
	return column.New(t, name, model, transform)
}

// MetadataColumn creates a metadata column, the common case.
func MetadataColumn(name string) Column {
	return column.Reconstruct(column.TypeMetadata, name, "", "")
}

// OutputColumn creates a model output column.
func OutputColumn(name, model string) Column {
	return column.Reconstruct(column.TypeOutput, name, model, "")
}

// NewPredicate creates a validated filter predicate.
func NewPredicate(col Column, operation, value string, join Join, group GroupMarker) (Predicate, error) {
	return predicate.New(col, operation, value, join, group)
}

// NewSlice creates a slice, compiling its predicates.
func NewSlice(name, folder string, preds []Predicate, transform string) (Slice, error) {
	return slice.New(name, folder, preds, transform)
}

// NewReport creates a report from threshold predicates.
func NewReport(name string, preds []ReportPredicate) (Report, error) {
	return report.New(name, preds)
}

// NewReportPredicate creates a validated report predicate.
func NewReportPredicate(sliceName, metricName, transform, operation, value string) (ReportPredicate, error) {
	return report.NewPredicate(sliceName, metricName, transform, operation, value)
}

// NewTag creates a tag over explicit row ids.
func NewTag(name string, ids []string) (Tag, error) {
	return tag.New(name, ids)
}

// NewRow creates a dataset row keyed by column hashes.
func NewRow(id string, cells map[string]Value) (Row, error) {
	return dataset.NewRow(id, cells)
}

// NewDataset creates a dataset from rows and columns.
func NewDataset(rows []Row, columns []Column) (*Dataset, error) {
	return dataset.New(rows, columns)
}

// Cell value constructors.
var (
	NumberValue  = dataset.Number
	StringValue  = dataset.String
	BoolValue    = dataset.Bool
	MissingValue = dataset.Missing
)

// Builtin metric constructors.
var (
	// Mean averages a numeric column over the slice rows.
	Mean = resultuc.Mean
	// MatchRate is the fraction of rows where the model output equals the label.
	MatchRate = resultuc.MatchRate
)
