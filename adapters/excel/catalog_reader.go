package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"darksiren/domain/catalog"
	apperrors "darksiren/internal/errors"
)

// CatalogReader loads a galaxy redshift column from an Excel or CSV file.
type CatalogReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewCatalogReader creates a reader for the given file. The file type is
// inferred from the extension; xlsx reads from Sheet1.
func NewCatalogReader(filePath string) *CatalogReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &CatalogReader{filePath: filePath, fileType: fileType, sheet: "Sheet1"}
}

// Read loads the first column as redshifts and returns a validated catalog.
// A non-numeric first row is treated as a header and skipped.
func (r *CatalogReader) Read() (*catalog.Catalog, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, apperrors.CatalogError(fmt.Sprintf("catalog file not found: %s", r.filePath), nil)
	}

	var cells []string
	var err error
	switch r.fileType {
	case "csv":
		cells, err = r.readCSVColumn()
	case "xlsx":
		cells, err = r.readExcelColumn()
	default:
		return nil, apperrors.CatalogError(fmt.Sprintf("unsupported catalog file type: %s", r.fileType), nil)
	}
	if err != nil {
		return nil, err
	}

	return parseRedshifts(cells)
}

func (r *CatalogReader) readExcelColumn() ([]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.CatalogError("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, apperrors.CatalogError(fmt.Sprintf("failed to read %s", r.sheet), err)
	}

	cells := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cells = append(cells, row[0])
	}
	return cells, nil
}

func (r *CatalogReader) readCSVColumn() ([]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.CatalogError("failed to open CSV file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.CatalogError("failed to read CSV", err)
	}

	cells := make([]string, 0, len(records))
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		cells = append(cells, rec[0])
	}
	return cells, nil
}

func parseRedshifts(cells []string) (*catalog.Catalog, error) {
	zs := make([]float64, 0, len(cells))
	for i, cell := range cells {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		z, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			if i == 0 {
				// Header row
				continue
			}
			return nil, apperrors.CatalogError(fmt.Sprintf("row %d: cannot parse redshift %q", i+1, cell), err)
		}
		zs = append(zs, z)
	}
	return catalog.New(zs)
}
