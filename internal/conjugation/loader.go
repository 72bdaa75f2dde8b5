package conjugation

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/coniugatore/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Expected descriptor columns in the reference file, in any order.
var descriptorColumns = []string{"Modo", "Tiempo", "Nombre", "Pronombre", "Genere"}

// Load reads the conjugation reference table from a CSV or Excel file,
// switching on the file extension. A missing descriptor or verb column is a
// fatal error; rows with Genere "F" or pronoun "Lei" are dropped.
func Load(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var records [][]string
	var err error
	if ext == ".xlsx" || ext == ".xlsm" {
		records, err = readExcel(path)
	} else {
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reference file %s is empty", path)
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	table := &Table{}
	for i, record := range records[1:] {
		row, ok, err := buildRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %v", i+2, err)
		}
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %v", err)
	}
	return records, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

// mapColumns resolves header names to indexes and verifies every descriptor
// and verb column is present.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range descriptorColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("reference file is missing column %q", name)
		}
	}
	for _, verb := range Verbs {
		if _, ok := columns[verb]; !ok {
			return nil, fmt.Errorf("reference file is missing verb column %q", verb)
		}
	}
	return columns, nil
}

func buildRow(record []string, columns map[string]int) (models.ConjugationRow, bool, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := models.ConjugationRow{
		Modo:      cell("Modo"),
		Tiempo:    cell("Tiempo"),
		Nombre:    cell("Nombre"),
		Pronombre: cell("Pronombre"),
		Genere:    cell("Genere"),
		Forms:     make(map[string]string, len(Verbs)),
	}
	if row.Modo == "" && row.Tiempo == "" && row.Pronombre == "" {
		return row, false, nil
	}
	// Fixed data-cleaning rules: feminine rows and "Lei" are not drilled.
	if row.Genere == "F" || row.Pronombre == "Lei" {
		return row, false, nil
	}
	for _, verb := range Verbs {
		form := cell(verb)
		// A blank form would produce an unanswerable question.
		if form == "" {
			return row, false, fmt.Errorf("empty form for verb %q", verb)
		}
		row.Forms[verb] = form
	}
	return row, true, nil
}
