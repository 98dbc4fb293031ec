package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"diarylens/domain/core"
	"diarylens/domain/diary"
	"diarylens/internal"
	"diarylens/ports"

	"github.com/xuri/excelize/v2"
)

// Column aliases accepted in the header row, compared case-insensitively
var columnAliases = map[string][]string{
	"date":     {"date", "entry_date", "日付"},
	"content":  {"content", "body", "text", "本文"},
	"id":       {"id", "entry_id"},
	"source":   {"source", "出典"},
	"favorite": {"favorite", "favourite", "お気に入り"},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006年1月2日",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// RawRowData represents a row of raw spreadsheet data keyed by canonical column
type RawRowData map[string]string

// DataReader reads diary entries from Excel and CSV files
type DataReader struct {
	config   ExcelConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
	now      func() time.Time
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if config.SheetName == "" {
		config.SheetName = DefaultExcelConfig().SheetName
	}
	if config.Source == "" {
		config.Source = filepath.Base(config.FilePath)
	}
	return &DataReader{
		config:   config,
		fileType: fileType,
		logger:   internal.DefaultLogger.WithComponent("excel"),
		now:      time.Now,
	}
}

var _ ports.EntryReader = (*DataReader)(nil)

// ListEntries reads every data row as a diary entry. Rows without content
// are skipped; rows without a parseable date become undated entries.
func (r *DataReader) ListEntries(ctx context.Context) ([]diary.Entry, error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.processRows(rows)
}

func (r *DataReader) readRows() ([][]string, error) {
	r.logger.Debug("reading %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.config.FilePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVRows()
	case "xlsx":
		return r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.config.SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.config.SheetName, err)
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", r.config.SheetName,
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into entries
func (r *DataReader) processRows(rows [][]string) ([]diary.Entry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s file has no header row", strings.ToUpper(r.fileType))
	}

	columns := mapHeaders(rows[0])
	if _, ok := columns["content"]; !ok {
		return nil, fmt.Errorf("%s file has no content column", strings.ToUpper(r.fileType))
	}

	var (
		entries []diary.Entry
		undated int
		skipped int
	)
	importedAt := r.now().UTC()
	for i := 1; i < len(rows); i++ {
		row := rowData(columns, rows[i])
		content := row["content"]
		if strings.TrimSpace(content) == "" {
			skipped++
			continue
		}

		entry := diary.Entry{
			ID:        core.EntryID(row["id"]),
			Content:   content,
			Source:    r.config.Source,
			CreatedAt: importedAt,
			Favorite:  parseBool(row["favorite"]),
		}
		if entry.ID == "" {
			entry.ID = core.NewEntryID()
		}
		if src := row["source"]; src != "" {
			entry.Source = src
		}
		if d, ok := parseDate(row["date"]); ok {
			entry.Date = &d
		} else {
			undated++
		}
		entries = append(entries, entry)
	}

	r.logger.Info("%s file processed: %d entries (%d undated, %d empty rows skipped)",
		strings.ToUpper(r.fileType), len(entries), undated, skipped)
	return entries, nil
}

func mapHeaders(header []string) map[string]int {
	columns := make(map[string]int)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for canonical, aliases := range columnAliases {
			if _, seen := columns[canonical]; seen {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					columns[canonical] = i
				}
			}
		}
	}
	return columns
}

func rowData(columns map[string]int, row []string) RawRowData {
	data := make(RawRowData, len(columns))
	for name, idx := range columns {
		if idx < len(row) {
			data[name] = row[idx]
		}
	}
	if c, ok := data["content"]; ok {
		// keep inner newlines, they are sentence terminators
		data["content"] = strings.TrimSpace(c)
	}
	for _, k := range []string{"date", "id", "source", "favorite"} {
		data[k] = strings.TrimSpace(data[k])
	}
	return data
}

// parseDate accepts the common written layouts and Excel serial day numbers.
// The result is a civil date in UTC.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return core.CivilDate(t), true
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return core.CivilDate(t), true
		}
	}
	return time.Time{}, false
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "★", "○":
		return true
	}
	return false
}
