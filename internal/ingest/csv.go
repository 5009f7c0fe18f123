package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

// LoadCSV reads a CSV file with a header row into a dataset.
func (l *Loader) LoadCSV(path string, opts Options) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	ds, err := l.ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV reads CSV content with a header row into a dataset.
func (l *Loader) ReadCSV(r io.Reader, opts Options) (*dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	names := make([]string, len(header))
	copy(names, header)

	hashes := make([]string, len(names))
	cols := metadataColumns(names)
	for i, col := range cols {
		hashes[i] = col.Hash()
	}

	rowID := l.rowIDFunc(opts, names)

	var rows []dataset.Row
	for idx := 0; ; idx++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", idx, err)
		}
		if len(record) != len(names) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", idx, len(record), len(names))
		}

		raw := make(map[string]string, len(names))
		cells := make(map[string]dataset.Value, len(names))
		for i, v := range record {
			raw[names[i]] = v
			cells[hashes[i]] = inferValue(v)
		}

		row, err := dataset.NewRow(rowID(idx, raw), cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", idx, err)
		}
		rows = append(rows, row)
	}

	ds, err := dataset.New(rows, cols)
	if err != nil {
		return nil, err
	}
	l.log.Info("csv loaded", zap.Int("rows", ds.Len()), zap.Int("columns", len(cols)))
	return ds, nil
}
