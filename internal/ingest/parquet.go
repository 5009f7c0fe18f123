package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

// LoadParquet reads a parquet file into a dataset.
func (l *Loader) LoadParquet(path string, opts Options) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet: %w", err)
	}

	ds, err := l.ReadParquet(f, st.Size(), opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ds, nil
}

// ReadParquet reads parquet content into a dataset. Only flat top-level
// columns are mapped; nested columns are skipped.
func (l *Loader) ReadParquet(r io.ReaderAt, size int64, opts Options) (*dataset.Dataset, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	// leaf column index -> top-level column name
	byIndex := map[int]string{}
	var names []string
	for i, path := range pf.Schema().Columns() {
		if len(path) != 1 {
			continue
		}
		byIndex[i] = path[0]
		names = append(names, path[0])
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no flat columns in parquet schema")
	}

	cols := metadataColumns(names)
	hashByName := make(map[string]string, len(cols))
	for i, col := range cols {
		hashByName[names[i]] = col.Hash()
	}

	rowID := l.rowIDFunc(opts, names)

	var rows []dataset.Row
	idx := 0
	for _, rg := range pf.RowGroups() {
		reader := parquet.NewRowGroupReader(rg)
		buf := make([]parquet.Row, 256)
		for {
			cnt, readErr := reader.ReadRows(buf)
			for i := 0; i < cnt; i++ {
				row, err := l.parquetRow(buf[i], byIndex, hashByName, rowID, idx)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
				idx++
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, fmt.Errorf("read rows: %w", readErr)
			}
		}
	}

	ds, err := dataset.New(rows, cols)
	if err != nil {
		return nil, err
	}
	l.log.Info("parquet loaded", zap.Int("rows", ds.Len()), zap.Int("columns", len(cols)))
	return ds, nil
}

func (l *Loader) parquetRow(
	row parquet.Row,
	byIndex map[int]string,
	hashByName map[string]string,
	rowID func(int, map[string]string) string,
	idx int,
) (dataset.Row, error) {
	raw := make(map[string]string, len(byIndex))
	cells := make(map[string]dataset.Value, len(byIndex))

	for _, v := range row {
		name, ok := byIndex[v.Column()]
		if !ok {
			continue
		}
		val := parquetValue(v)
		cells[hashByName[name]] = val
		if !val.IsMissing() {
			raw[name] = val.String()
		}
	}

	r, err := dataset.NewRow(rowID(idx, raw), cells)
	if err != nil {
		return dataset.Row{}, fmt.Errorf("row %d: %w", idx, err)
	}
	return r, nil
}

// parquetValue maps a parquet cell to a dataset value.
func parquetValue(v parquet.Value) dataset.Value {
	if v.IsNull() {
		return dataset.Missing
	}
	switch v.Kind() {
	case parquet.Boolean:
		return dataset.Bool(v.Boolean())
	case parquet.Int32, parquet.Int64:
		return dataset.Number(float64(v.Int64()))
	case parquet.Float, parquet.Double:
		return dataset.Number(v.Double())
	default:
		return dataset.String(v.String())
	}
}
