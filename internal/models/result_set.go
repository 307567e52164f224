package models

// ResultSet is a fully buffered query result with every cell rendered as text.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the result has no rows.
func (r *ResultSet) Empty() bool {
	return r.Len() == 0
}

// Value returns the cell at row for the named column.
func (r *ResultSet) Value(row int, column string) (string, bool) {
	if r == nil || row < 0 || row >= len(r.Rows) {
		return "", false
	}
	for i, c := range r.Columns {
		if c == column && i < len(r.Rows[row]) {
			return r.Rows[row][i], true
		}
	}
	return "", false
}

// Column returns every value of the named column.
func (r *ResultSet) Column(column string) []string {
	values := make([]string, 0, r.Len())
	for i := 0; i < r.Len(); i++ {
		if v, ok := r.Value(i, column); ok {
			values = append(values, v)
		}
	}
	return values
}
