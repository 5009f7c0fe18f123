package result

import (
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

// Mean averages a numeric column over the selected rows. Rows where the cell
// is missing or not numeric are skipped; with no usable rows the metric is
// unavailable.
func Mean(colName string) Func {
	return func(rows []dataset.Row, _ string) (*float64, error) {
		col := column.Reconstruct(column.TypeMetadata, colName, "", "")
		var sum float64
		var n int
		for _, row := range rows {
			cell := row.Cell(col)
			v, ok := cell.Number()
			if !ok {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			return nil, nil
		}
		mean := sum / float64(n)
		return &mean, nil
	}
}

// MatchRate computes the fraction of rows where the model output column
// equals the label column. The output column is model scoped, so the same
// metric yields different results per model.
func MatchRate(outputName, labelName string) Func {
	return func(rows []dataset.Row, model string) (*float64, error) {
		if model == "" {
			return nil, fmt.Errorf("match rate requires a model")
		}
		out := column.Reconstruct(column.TypeOutput, outputName, model, "")
		label := column.Reconstruct(column.TypeMetadata, labelName, "", "")

		var matched, n int
		for _, row := range rows {
			o := row.Cell(out)
			l := row.Cell(label)
			if o.IsMissing() || l.IsMissing() {
				continue
			}
			if o.String() == l.String() {
				matched++
			}
			n++
		}
		if n == 0 {
			return nil, nil
		}
		rate := float64(matched) / float64(n)
		return &rate, nil
	}
}
