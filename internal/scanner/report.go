package scanner

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"setscan/internal/compare"
)

// Row is one discrepancy with its show context attached.
type Row struct {
	FolderName    string
	Date          string
	TxtFilesFound string
	Discrepancy   compare.Discrepancy
}

// Report is the outcome of one scan run.
type Report struct {
	RunID             string
	StartedAt         time.Time
	FoldersScanned    int
	FoldersWithIssues int
	Rows              []Row
}

// TypeCounts returns the number of rows per discrepancy type.
func (r *Report) TypeCounts() map[compare.Type]int {
	counts := make(map[compare.Type]int)
	for _, row := range r.Rows {
		counts[row.Discrepancy.Type]++
	}
	return counts
}

var reportHeader = []string{
	"folder_name", "date", "txt_files_found", "discrepancy_type",
	"source_a", "source_b", "details",
}

// WriteCSV writes the report to path, one row per discrepancy.
func (r *Report) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(reportHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, row := range r.Rows {
		record := []string{
			row.FolderName,
			row.Date,
			row.TxtFilesFound,
			string(row.Discrepancy.Type),
			row.Discrepancy.SourceA,
			row.Discrepancy.SourceB,
			row.Discrepancy.Details,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
