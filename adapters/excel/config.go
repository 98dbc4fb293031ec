package excel

// ExcelConfig holds configuration for a spreadsheet entry source
type ExcelConfig struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name"`
	// Source is stamped on every entry; defaults to the file's base name
	Source string `json:"source"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet import
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		SheetName: "Sheet1",
	}
}
