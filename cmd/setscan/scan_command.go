package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"setscan/internal/compare"
	"setscan/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var band int
	var padChars int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan show folders and report setlist discrepancies",
		Long: "Scan walks a show folder (or a tree of them), pairs each show with its\n" +
			"setlist text files, reconciles them against the catalog and against each\n" +
			"other, and writes a CSV report. Nothing under the scanned path is modified.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			m, err := buildMatcher(cmd.Context(), cfg, store, false, logger)
			if err != nil {
				return err
			}

			opts := scanner.Options{Band: cfg.Matching.Band, PadChars: cfg.Scanning.PadChars}
			if cmd.Flags().Changed("band") {
				opts.Band = band
			}
			if cmd.Flags().Changed("pad") {
				opts.PadChars = padChars
			}

			s := scanner.New(store, compare.NewEngine(m), opts, logger)
			report, err := s.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			output := strings.TrimSpace(outputPath)
			if output == "" {
				output = cfg.Paths.ReportPath
			}
			if err := report.WriteCSV(output); err != nil {
				return err
			}

			if jsonOut {
				return writeScanReportJSON(cmd, report, output)
			}
			printScanSummary(cmd, report, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report CSV path (default from config)")
	cmd.Flags().IntVar(&band, "band", 1, "Act selector for catalog queries (1 primary, 0 side project)")
	cmd.Flags().IntVar(&padChars, "pad", 2, "Prefix characters before the date in folder names")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the summary as JSON")
	return cmd
}

func printScanSummary(cmd *cobra.Command, report *scanner.Report, output string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Folders scanned:            %d\n", report.FoldersScanned)
	fmt.Fprintf(out, "Folders with discrepancies: %d\n", report.FoldersWithIssues)
	fmt.Fprintf(out, "Total discrepancies:        %d\n", len(report.Rows))
	fmt.Fprintf(out, "Report written to:          %s\n", output)

	counts := report.TypeCounts()
	if len(counts) == 0 {
		return
	}
	types := make([]string, 0, len(counts))
	for discType := range counts {
		types = append(types, string(discType))
	}
	sort.Strings(types)

	rows := make([][]string, 0, len(types))
	for _, discType := range types {
		rows = append(rows, []string{discType, strconv.Itoa(counts[compare.Type(discType)])})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(out,
		[]string{"TYPE", "COUNT"}, rows,
		[]columnAlignment{alignLeft, alignRight}))
}

func writeScanReportJSON(cmd *cobra.Command, report *scanner.Report, output string) error {
	type jsonRow struct {
		Folder   string `json:"folder"`
		Date     string `json:"date"`
		TxtFiles string `json:"txt_files_found"`
		Type     string `json:"type"`
		SourceA  string `json:"source_a"`
		SourceB  string `json:"source_b"`
		Details  string `json:"details"`
	}
	rows := make([]jsonRow, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, jsonRow{
			Folder:   row.FolderName,
			Date:     row.Date,
			TxtFiles: row.TxtFilesFound,
			Type:     string(row.Discrepancy.Type),
			SourceA:  row.Discrepancy.SourceA,
			SourceB:  row.Discrepancy.SourceB,
			Details:  row.Discrepancy.Details,
		})
	}
	return writeJSON(cmd, map[string]any{
		"run_id":              report.RunID,
		"folders_scanned":     report.FoldersScanned,
		"folders_with_issues": report.FoldersWithIssues,
		"report_path":         output,
		"discrepancies":       rows,
	})
}
