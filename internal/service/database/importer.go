package database

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"folio/internal/domain"
	models "folio/internal/domain/models/database"
	"folio/internal/service/database/typeoption"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// readCSV parses CSV records. Ragged rows are accepted.
func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid csv: %v", err)}
	}
	return records, nil
}

// readXLSX returns the rows of the first sheet of a workbook
func readXLSX(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.ValidationError{Message: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readXLSXFile(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return readXLSX(f)
}

func readXLSXBytes(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid workbook: %v", err)}
	}
	defer f.Close()
	return readXLSX(f)
}

// buildDatabase turns tabular records into a database. The first record is
// the header. Columns whose non-empty values are all checkbox spellings become
// checkbox fields; all-numeric columns become number fields.
func buildDatabase(records [][]string) (*models.DatabaseData, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, &domain.ValidationError{Message: "import has no header row"}
	}

	header := records[0]
	body := records[1:]

	fields := make([]models.Field, len(header))
	for col, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Field %d", col+1)
		}
		fields[col] = models.Field{
			ID:        uuid.NewString(),
			Name:      name,
			FieldType: detectFieldType(body, col),
			IsPrimary: col == 0,
		}
		if col == 0 {
			fields[col].FieldType = models.FieldTypeRichText
		}
		if fields[col].FieldType.IsCheckbox() {
			fields[col].TypeOption = typeoption.CheckboxTypeOption{}.Data()
		}
	}

	now := time.Now().Unix()
	rows := make([]models.Row, 0, len(body))
	for _, record := range body {
		if isBlankRecord(record) {
			continue
		}
		row := models.Row{
			ID:        uuid.NewString(),
			Cells:     make(map[string]models.Cell, len(fields)),
			CreatedAt: now,
		}
		for col, field := range fields {
			if col >= len(record) || strings.TrimSpace(record[col]) == "" {
				continue
			}
			row.Cells[field.ID] = importCell(record[col], field.FieldType)
		}
		rows = append(rows, row)
	}

	return &models.DatabaseData{Fields: fields, Rows: rows}, nil
}

func detectFieldType(body [][]string, col int) models.FieldType {
	allCheckbox, allNumber, seen := true, true, false
	for _, record := range body {
		if col >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[col])
		if value == "" {
			continue
		}
		seen = true
		if !typeoption.IsCheckboxValue(value) {
			allCheckbox = false
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			allNumber = false
		}
	}

	switch {
	case !seen:
		return models.FieldTypeRichText
	case allCheckbox:
		return models.FieldTypeCheckbox
	case allNumber:
		return models.FieldTypeNumber
	default:
		return models.FieldTypeRichText
	}
}

func importCell(value string, fieldType models.FieldType) models.Cell {
	if fieldType.IsCheckbox() {
		return typeoption.ParseCheckbox(value).Cell()
	}
	return models.Cell{Data: strings.TrimSpace(value), FieldType: fieldType}
}

func isBlankRecord(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
