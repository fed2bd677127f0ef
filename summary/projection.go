package summary

import (
	"errors"
	"fmt"

	"ci-computer-dashboard/models"
)

// ErrUnknownColumn is returned when a selection names a column the table does not have
var ErrUnknownColumn = errors.New("unknown column")

// ProjectColumns restricts a table to the selected columns in the caller's order.
// An empty selection keeps every row with no columns. Repeated names are kept once.
func ProjectColumns(table *models.AssetTable, selected []string) (models.Table, error) {
	if table == nil {
		table = &models.AssetTable{}
	}

	columns := make([]string, 0, len(selected))
	seen := make(map[string]bool, len(selected))
	for _, c := range selected {
		if seen[c] {
			continue
		}
		if !table.HasColumn(c) {
			return models.Table{}, fmt.Errorf("%w: %s", ErrUnknownColumn, c)
		}
		seen[c] = true
		columns = append(columns, c)
	}

	rows := make([]models.TableRow, len(table.Records))
	for i, r := range table.Records {
		row := make(models.TableRow, len(columns))
		for _, c := range columns {
			if v, ok := r.Get(c); ok {
				v := v
				row[c] = &v
			} else {
				row[c] = nil
			}
		}
		rows[i] = row
	}

	return models.Table{Columns: columns, Rows: rows}, nil
}

// AvailableColumns returns the subset of candidates present in the table, in candidate order
func AvailableColumns(table *models.AssetTable, candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if table.HasColumn(c) {
			out = append(out, c)
		}
	}
	return out
}
