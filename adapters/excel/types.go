package excel

// RawRowData is one data row keyed by trimmed header
type RawRowData map[string]string

// ExcelData is a whole sheet or CSV file
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// Column returns every value of the named column in row order
func (d *ExcelData) Column(name string) []string {
	values := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		values = append(values, row[name])
	}
	return values
}

// HasColumns reports whether every name appears among the headers
func (d *ExcelData) HasColumns(names ...string) bool {
	seen := make(map[string]bool, len(d.Headers))
	for _, h := range d.Headers {
		seen[h] = true
	}
	for _, n := range names {
		if !seen[n] {
			return false
		}
	}
	return true
}
