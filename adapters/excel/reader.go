package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"marquee/domain/show"
	"marquee/internal"
	"marquee/internal/errors"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewDataReader creates a data reader for a CSV or XLSX file. sheet is only
// used for workbooks; an empty sheet means the first sheet.
func NewDataReader(filePath, sheet string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheet: sheet}
}

// FilePath returns the path the reader was created for
func (r *DataReader) FilePath() string {
	return r.filePath
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	internal.DefaultLogger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// ReadRecords reads the file and maps the configured columns onto raw records
func (r *DataReader) ReadRecords(columns ColumnMap) ([]show.RawRecord, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return data.Records(columns, r.fileType == "xlsx")
}

// readExcelData reads formatted cell text from the configured sheet
func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if idx, err := f.GetSheetIndex(sheet); sheet == "" || err != nil || idx < 0 {
		if sheet != "" {
			internal.DefaultLogger.Warn("[DataReader] Sheet %q not found, falling back to first sheet", sheet)
		}
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	// date-styled cells render in their display format ("01-03-21"); the raw
	// value is the serial number
	rawRows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read raw values of sheet %s: %w", sheet, err)
	}
	internal.DefaultLogger.Debug("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	data, err := r.processRows(rows)
	if err != nil {
		return nil, err
	}
	raw, err := r.processRows(rawRows)
	if err != nil {
		return nil, err
	}
	data.RawRows = raw.Rows
	return data, nil
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	readStart := time.Now()
	rows, err := ReadCSVRows(file)
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// ReadCSVRows reads every CSV row, tolerating ragged rows
func ReadCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into ExcelData format
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	if len(rows) == 0 {
		return nil, errors.InvalidInputf("%s file %s has no header row", strings.ToUpper(r.fileType), r.filePath)
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRowData, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = row[j]
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	internal.DefaultLogger.Debug("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// Records maps rows onto raw records using the column mapping. Headers are
// matched case-insensitively. With serialDates set, the date column is taken
// from the unformatted values and numeric serials are decoded to ISO dates.
// Other cells are passed through untrimmed.
func (d *ExcelData) Records(columns ColumnMap, serialDates bool) ([]show.RawRecord, error) {
	resolved := make(map[string]string, 4)
	var missing []string
	for _, want := range []string{columns.Date, columns.Show, columns.Gross, columns.Performances} {
		header, ok := d.findHeader(want)
		if !ok {
			missing = append(missing, want)
			continue
		}
		resolved[want] = header
	}
	if len(missing) > 0 {
		return nil, errors.InvalidInputf("missing required columns: %s (found: %s)",
			strings.Join(missing, ", "), strings.Join(d.Headers, ", "))
	}

	records := make([]show.RawRecord, len(d.Rows))
	for i, row := range d.Rows {
		date := row[resolved[columns.Date]]
		if serialDates {
			if i < len(d.RawRows) {
				date = d.RawRows[i][resolved[columns.Date]]
			}
			date = decodeSerialDate(strings.TrimSpace(date))
		}
		records[i] = show.RawRecord{
			Date:         date,
			Show:         row[resolved[columns.Show]],
			WeeklyGross:  row[resolved[columns.Gross]],
			Performances: row[resolved[columns.Performances]],
		}
	}
	return records, nil
}

func (d *ExcelData) findHeader(name string) (string, bool) {
	for _, h := range d.Headers {
		if strings.EqualFold(h, strings.TrimSpace(name)) {
			return h, true
		}
	}
	return "", false
}

// decodeSerialDate converts an unformatted spreadsheet date serial such as
// "44197" into ISO text. Anything else is returned unchanged.
func decodeSerialDate(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 1 || serial > 2958465 {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Format(show.ISODateLayout)
}
