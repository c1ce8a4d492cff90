package dataset

import (
	"fmt"

	"github.com/acadnet/hetgraph/pkg/models"
)

// Validate performs structural checks on a loaded dataset: duplicate native
// ids within a table and negative labels are reported. Dangling relationship
// references are not errors here; the graph builder skips those edges.
func Validate(ds *Dataset) error {
	var errors models.ValidationErrors

	errors = append(errors, checkLabeledIDs("author_label", ds.Authors)...)
	errors = append(errors, checkLabeledIDs("paper_label", ds.PaperLabels)...)

	errors = append(errors, checkEntityIDs("paper", ds.Papers)...)
	errors = append(errors, checkEntityIDs("conf", ds.Conferences)...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func checkEntityIDs(table string, rows []models.Entity) models.ValidationErrors {
	var errors models.ValidationErrors

	seen := make(map[int]bool, len(rows))
	for _, row := range rows {
		if seen[row.ID] {
			errors = append(errors, models.ValidationError{
				Field:   table + ".id",
				Message: "duplicate native id",
				Value:   fmt.Sprintf("%d", row.ID),
			})
		}
		seen[row.ID] = true
	}

	return errors
}

func checkLabeledIDs(table string, rows []models.LabeledEntity) models.ValidationErrors {
	var errors models.ValidationErrors

	seen := make(map[int]bool, len(rows))
	for _, row := range rows {
		if seen[row.ID] {
			errors = append(errors, models.ValidationError{
				Field:   table + ".id",
				Message: "duplicate native id",
				Value:   fmt.Sprintf("%d", row.ID),
			})
		}
		seen[row.ID] = true

		if row.Label < 0 {
			errors = append(errors, models.ValidationError{
				Field:   table + ".label",
				Message: "label cannot be negative",
				Value:   fmt.Sprintf("%d", row.Label),
			})
		}
	}

	return errors
}
