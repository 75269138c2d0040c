package workforce

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Выгрузки HR-систем: день первым, разделитель ";"
var dateLayouts = []string{"02/01/2006", "2/1/2006", "02.01.2006", "2006-01-02"}

// ParseEmploymentCSV читает выгрузку сотрудников с колонками start_date и end_date.
// Строки с нераспознанной датой найма пропускаются, пустая или
// нераспознанная дата увольнения означает, что сотрудник работает.
func ParseEmploymentCSV(r io.Reader) ([]EmploymentRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("workforce: empty employment file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	startCol, endCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "start_date":
			startCol = i
		case "end_date":
			endCol = i
		}
	}
	if startCol < 0 {
		return nil, errors.New("workforce: start_date column is missing")
	}

	var records []EmploymentRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		start, ok := parseDate(column(row, startCol))
		if !ok {
			continue
		}
		rec := EmploymentRecord{StartDate: start}
		if end, ok := parseDate(column(row, endCol)); ok {
			rec.EndDate = &end
		}
		records = append(records, rec)
	}
	return records, nil
}

func column(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
