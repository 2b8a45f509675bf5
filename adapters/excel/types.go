package excel

// RawRowData represents a row of raw spreadsheet data as header -> cell text
type RawRowData map[string]string

// ExcelData represents the complete spreadsheet dataset
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
	// RawRows holds unformatted cell values of a workbook, row-aligned with
	// Rows. Nil for CSV.
	RawRows []RawRowData
}
