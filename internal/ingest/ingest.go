// Package ingest loads evaluation tables from parquet or CSV files into
// datasets. Every file column becomes a metadata column; cell types are
// inferred per value.
package ingest

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

// Options control how a file maps onto a dataset.
type Options struct {
	// IDColumn names the column holding row ids. When empty or absent from
	// the file, the zero-based row index becomes the id.
	IDColumn string
}

// Loader reads datasets from files.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(log *zap.Logger) *Loader {
	return &Loader{log: log}
}

// rowIDFunc picks the id for each row, falling back to the row index when no
// id column is usable.
func (l *Loader) rowIDFunc(opts Options, columns []string) func(idx int, cells map[string]string) string {
	idCol := opts.IDColumn
	if idCol != "" {
		found := false
		for _, name := range columns {
			if name == idCol {
				found = true
				break
			}
		}
		if !found {
			l.log.Warn("id column not present, falling back to row index",
				zap.String("id_column", idCol))
			idCol = ""
		}
	}
	return func(idx int, cells map[string]string) string {
		if idCol != "" {
			if v, ok := cells[idCol]; ok && v != "" {
				return v
			}
		}
		return strconv.Itoa(idx)
	}
}

// inferValue parses a raw string cell into a typed dataset value. Empty
// strings are missing, numbers and booleans are recognized, everything else
// stays a string.
func inferValue(raw string) dataset.Value {
	if raw == "" {
		return dataset.Missing
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return dataset.Number(f)
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return dataset.Bool(true)
	case "false":
		return dataset.Bool(false)
	}
	return dataset.String(raw)
}

// metadataColumns wraps file column names as metadata columns.
func metadataColumns(names []string) []column.Column {
	cols := make([]column.Column, 0, len(names))
	for _, name := range names {
		cols = append(cols, column.Reconstruct(column.TypeMetadata, name, "", ""))
	}
	return cols
}
