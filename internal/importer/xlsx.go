package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers recognised in spreadsheets, matched case-insensitively.
const (
	colSubject   = "subject"
	colStrength  = "strength"
	colColor     = "color"
	colTopic     = "topic"
	colConf      = "confidence"
	colPriority  = "priority"
	colEstimated = "estimated_hours"
	colCompleted = "completed_hours"
	colDone      = "completed"
)

// SheetConfig selects where the syllabus table lives in a workbook.
type SheetConfig struct {
	// SheetName is the sheet to read. Empty means the first sheet.
	SheetName string
}

// ParseXLSX reads a syllabus table: one topic per row under a header row
// naming the columns. Rows that cannot be parsed are skipped and reported in
// the returned row errors; the error return is reserved for unreadable files
// and missing required columns.
func ParseXLSX(path string, cfg SheetConfig) (Syllabus, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Syllabus{}, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Syllabus{}, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Syllabus{}, nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	cols := headerIndex(rows[0])
	for _, required := range []string{colSubject, colTopic} {
		if _, ok := cols[required]; !ok {
			return Syllabus{}, nil, fmt.Errorf("sheet %q: missing %q column", sheet, required)
		}
	}

	var (
		s         Syllabus
		rowErrors []string
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if isBlank(row) {
			continue
		}

		sub, topic, err := parseRow(cell)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if topic.Name != "" {
			sub.Topics = []TopicSpec{topic}
		}
		s.Subjects = append(s.Subjects, sub)
	}
	return s.merge(), rowErrors, nil
}

func parseRow(cell func(string) string) (SubjectSpec, TopicSpec, error) {
	sub := SubjectSpec{
		Name:     cell(colSubject),
		Strength: strings.ToLower(cell(colStrength)),
		Color:    cell(colColor),
	}
	if sub.Name == "" {
		return sub, TopicSpec{}, fmt.Errorf("subject cannot be empty")
	}
	switch sub.Strength {
	case "", "weak", "average", "strong":
	default:
		return sub, TopicSpec{}, fmt.Errorf("unknown strength %q", sub.Strength)
	}

	topic := TopicSpec{Name: cell(colTopic)}
	var err error
	if topic.Confidence, err = optionalInt(cell(colConf), 1, 5); err != nil {
		return sub, topic, fmt.Errorf("confidence: %w", err)
	}
	if topic.Priority, err = optionalInt(cell(colPriority), 0, 100); err != nil {
		return sub, topic, fmt.Errorf("priority: %w", err)
	}
	if topic.EstimatedHours, err = optionalHours(cell(colEstimated)); err != nil {
		return sub, topic, fmt.Errorf("estimated hours: %w", err)
	}
	if topic.CompletedHours, err = optionalHours(cell(colCompleted)); err != nil {
		return sub, topic, fmt.Errorf("completed hours: %w", err)
	}
	if v := cell(colDone); v != "" {
		if topic.Completed, err = parseBool(v); err != nil {
			return sub, topic, fmt.Errorf("completed: %w", err)
		}
	}
	return sub, topic, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if _, dup := cols[key]; !dup && key != "" {
			cols[key] = i
		}
	}
	return cols
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func optionalInt(s string, lo, hi int) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a whole number", s)
	}
	if v < lo || v > hi {
		return nil, fmt.Errorf("%d is outside %d-%d", v, lo, hi)
	}
	return &v, nil
}

func optionalHours(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return nil, fmt.Errorf("%v is negative", v)
	}
	return &v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "x", "done":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}
