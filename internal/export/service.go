package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/doc-processor/internal/entity"
)

// Service renders a field record into downloadable artifacts (JSON, XLSX).
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger.With("component", "export")}
}

// FieldsJSON returns the field record as indented JSON, the same document the
// UI offers for download. The degraded shape serializes with its error,
// raw_response and parsed_fields keys.
func (s *Service) FieldsJSON(record entity.FieldRecord) ([]byte, error) {
	b, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	return b, nil
}

// FieldsXLSX returns an XLSX workbook (as bytes) with one Field/Value row per
// key of the record.
func (s *Service) FieldsXLSX(record entity.FieldRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Fields"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	write(1, 1, "Field")
	write(2, 1, "Value")

	row := 2
	for _, kv := range flatten(record) {
		write(1, row, kv[0])
		write(2, row, kv[1])
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "B", "B", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", row-2,
		"degraded", record.Degraded(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// flatten turns a record into ordered Field/Value string pairs. Canonical keys
// come first in prompt order, anything extra the model produced follows
// alphabetically.
func flatten(record entity.FieldRecord) [][2]string {
	if record.Failure != nil {
		return [][2]string{
			{"error", record.Failure.Error},
			{"raw_response", record.Failure.RawResponse},
		}
	}

	seen := make(map[string]bool, len(record.Fields))
	var out [][2]string
	for _, k := range entity.FieldKeys {
		if v, ok := record.Fields[k]; ok {
			out = append(out, [2]string{k, cellValue(v)})
			seen[k] = true
		}
	}
	var rest []string
	for k := range record.Fields {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, [2]string{k, cellValue(record.Fields[k])})
	}
	return out
}

func cellValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, cellValue(item))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprintf("%v", t)
	}
}
