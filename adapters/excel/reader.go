package excel

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"playpulse/internal/errors"
)

// DefaultSheet is read when no sheet name is configured
const DefaultSheet = "Sheet1"

// DataReader reads Excel and CSV files
type DataReader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	sheetName string
}

// NewDataReader creates a reader; the file type is taken from the extension
func NewDataReader(filePath, sheetName string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := ""
	switch ext {
	case ".csv":
		fileType = "csv"
	case ".xlsx", ".xlsm":
		fileType = "xlsx"
	}
	if sheetName == "" {
		sheetName = DefaultSheet
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheetName: sheetName}
}

// ReadData reads the file into structured rows
func (r *DataReader) ReadData(ctx context.Context) (*ExcelData, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData(ctx)
	case "xlsx":
		return r.readExcelData(ctx)
	default:
		return nil, errors.UnsupportedFormat(filepath.Ext(r.filePath))
	}
}

func (r *DataReader) readExcelData(ctx context.Context) (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	defer f.Close()
	log.Printf("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	readStart := time.Now()
	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, errors.ParseError(r.filePath+"#"+r.sheetName, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", r.sheetName, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(ctx, rows)
}

func (r *DataReader) readCSVData(ctx context.Context) (*ExcelData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	return ReadCSV(ctx, file, r.filePath)
}

// ReadCSV parses CSV content. Ragged rows are accepted and short rows leave
// their trailing columns empty.
func ReadCSV(ctx context.Context, src io.Reader, name string) (*ExcelData, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError(name, err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return (&DataReader{filePath: name, fileType: "csv"}).processRows(ctx, rows)
}

// processRows converts raw string rows into ExcelData
func (r *DataReader) processRows(ctx context.Context, rows [][]string) (*ExcelData, error) {
	if len(rows) < 1 {
		return nil, errors.NoData(r.filePath + " has no header row")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		if i%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rowData := make(RawRowData, len(headers))
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{Headers: headers, Rows: dataRows}, nil
}
