package workspace

import (
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain/column"
	"github.com/sliceboard/sliceboard/internal/domain/predicate"
	"github.com/sliceboard/sliceboard/internal/domain/report"
	"github.com/sliceboard/sliceboard/internal/domain/slice"
	"github.com/sliceboard/sliceboard/internal/domain/tag"
)

// DTOs mirror the dashboard's camelCase data model.

type columnDTO struct {
	ColumnType string `json:"columnType"`
	Name       string `json:"name"`
	Model      string `json:"model,omitempty"`
	Transform  string `json:"transform,omitempty"`
}

type predicateDTO struct {
	Column    columnDTO `json:"column"`
	Operation string    `json:"operation"`
	Value     string    `json:"value"`
	Join      string    `json:"join,omitempty"`
	Group     string    `json:"groupIndicator,omitempty"`
}

type sliceDTO struct {
	SliceName  string         `json:"sliceName"`
	Folder     string         `json:"folder,omitempty"`
	Predicates []predicateDTO `json:"filterPredicates"`
	Transform  string         `json:"transform,omitempty"`
}

type reportPredicateDTO struct {
	SliceName string `json:"sliceName"`
	Metric    string `json:"metric"`
	Transform string `json:"transform,omitempty"`
	Operation string `json:"operation"`
	Value     string `json:"value"`
}

type reportDTO struct {
	Name       string               `json:"name"`
	Predicates []reportPredicateDTO `json:"reportPredicates"`
}

type tagDTO struct {
	TagName string   `json:"tagName"`
	IDs     []string `json:"ids"`
}

func sliceToDTO(s slice.Slice) sliceDTO {
	preds := s.Expression().Predicates()
	dto := sliceDTO{
		SliceName:  s.Name(),
		Folder:     s.Folder(),
		Predicates: make([]predicateDTO, 0, len(preds)),
		Transform:  s.Transform(),
	}
	for _, p := range preds {
		col := p.Column()
		dto.Predicates = append(dto.Predicates, predicateDTO{
			Column: columnDTO{
				ColumnType: string(col.Type()),
				Name:       col.Name(),
				Model:      col.Model(),
				Transform:  col.Transform(),
			},
			Operation: string(p.Operation()),
			Value:     p.Value(),
			Join:      string(p.Join()),
			Group:     string(p.Group()),
		})
	}
	return dto
}

// sliceFromDTO revalidates on hydration, so a malformed persisted slice is
// caught at load time, before it can reach evaluation.
func sliceFromDTO(dto sliceDTO) (slice.Slice, error) {
	preds := make([]predicate.Predicate, 0, len(dto.Predicates))
	for i, pd := range dto.Predicates {
		col, err := column.New(column.Type(pd.Column.ColumnType), pd.Column.Name, pd.Column.Model, pd.Column.Transform)
		if err != nil {
			return slice.Slice{}, fmt.Errorf("slice %q predicate %d: %w", dto.SliceName, i, err)
		}
		p, err := predicate.New(col, pd.Operation, pd.Value, predicate.Join(pd.Join), predicate.GroupMarker(pd.Group))
		if err != nil {
			return slice.Slice{}, fmt.Errorf("slice %q predicate %d: %w", dto.SliceName, i, err)
		}
		preds = append(preds, p)
	}
	return slice.New(dto.SliceName, dto.Folder, preds, dto.Transform)
}

func reportToDTO(r report.Report) reportDTO {
	preds := r.Predicates()
	dto := reportDTO{Name: r.Name(), Predicates: make([]reportPredicateDTO, 0, len(preds))}
	for _, p := range preds {
		dto.Predicates = append(dto.Predicates, reportPredicateDTO{
			SliceName: p.SliceName(),
			Metric:    p.Metric(),
			Transform: p.Transform(),
			Operation: string(p.Operation()),
			Value:     p.Value(),
		})
	}
	return dto
}

func reportFromDTO(dto reportDTO) (report.Report, error) {
	preds := make([]report.Predicate, 0, len(dto.Predicates))
	for i, pd := range dto.Predicates {
		p, err := report.NewPredicate(pd.SliceName, pd.Metric, pd.Transform, pd.Operation, pd.Value)
		if err != nil {
			return report.Report{}, fmt.Errorf("report %q predicate %d: %w", dto.Name, i, err)
		}
		preds = append(preds, p)
	}
	return report.New(dto.Name, preds)
}

func tagToDTO(t tag.Tag) tagDTO {
	return tagDTO{TagName: t.Name(), IDs: t.IDs()}
}

func tagFromDTO(dto tagDTO) (tag.Tag, error) {
	return tag.New(dto.TagName, dto.IDs)
}
