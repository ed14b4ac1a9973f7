package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"timelanes/internal/config"
	"timelanes/internal/timeline"
)

// ReadCSV reads task records from a CSV file with a header row. Column
// names are matched case-insensitively against the configured id, name,
// start and end columns. Other columns become labels.
func ReadCSV(filename string, cfg config.Config) ([]timeline.Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	return parseCSV(file, cfg)
}

func parseCSV(r io.Reader, cfg config.Config) ([]timeline.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	// Create case-insensitive column mapping
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	lookup := func(name string, required bool) (int, error) {
		if col, exists := columnMap[strings.ToLower(name)]; exists {
			return col, nil
		}
		if required {
			return -1, fmt.Errorf("column '%s' not found in CSV. Available columns: %v", name, header)
		}
		return -1, nil
	}

	startCol, err := lookup(cfg.Columns.Start, true)
	if err != nil {
		return nil, err
	}
	endCol, err := lookup(cfg.Columns.End, true)
	if err != nil {
		return nil, err
	}
	idCol, _ := lookup(cfg.Columns.ID, false)
	nameCol, _ := lookup(cfg.Columns.Name, false)

	labelCols := labelColumns(columnMap, cfg, idCol, nameCol, startCol, endCol)

	var records []timeline.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading CSV line %d: %w", line, err)
		}

		rec := timeline.Record{
			ID:    field(row, idCol),
			Name:  field(row, nameCol),
			Start: field(row, startCol),
			End:   field(row, endCol),
		}
		for name, col := range labelCols {
			if v := field(row, col); v != "" {
				if rec.Labels == nil {
					rec.Labels = make(map[string]string)
				}
				rec.Labels[name] = v
			}
		}
		if rec.Start == "" && rec.End == "" && rec.ID == "" && rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// labelColumns picks the columns copied into labels: the configured list,
// or every column that is not one of the four task fields.
func labelColumns(columnMap map[string]int, cfg config.Config, taskCols ...int) map[string]int {
	out := make(map[string]int)
	if len(cfg.Columns.Labels) > 0 {
		for _, name := range cfg.Columns.Labels {
			if col, ok := columnMap[strings.ToLower(name)]; ok {
				out[strings.ToLower(name)] = col
			}
		}
		return out
	}

	reserved := make(map[int]bool)
	for _, c := range taskCols {
		if c >= 0 {
			reserved[c] = true
		}
	}
	for name, col := range columnMap {
		if !reserved[col] && name != "" {
			out[name] = col
		}
	}
	return out
}

func field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
