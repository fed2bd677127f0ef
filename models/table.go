package models

// Table is a column-ordered view of records handed to the presentation layer
type Table struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// TableRow maps a column to its value; nil means the cell is missing
type TableRow map[string]*string

// Cell returns the display text of a column, empty for missing cells
func (r TableRow) Cell(column string) string {
	if v := r[column]; v != nil {
		return *v
	}
	return ""
}

// RowCount returns the number of rows
func (t Table) RowCount() int {
	return len(t.Rows)
}
