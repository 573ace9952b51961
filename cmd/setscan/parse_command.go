package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"setscan/internal/setlist"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "parse <file>",
		Short:       "Parse a setlist text file and show its structure",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			doc, err := setlist.Parse(filepath.Base(args[0]), string(content))
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			if jsonOut {
				return writeDocumentJSON(cmd, doc)
			}

			out := cmd.OutOrStdout()
			if doc.VenueText != "" {
				fmt.Fprintf(out, "Venue: %s\n\n", doc.VenueText)
			}
			rows := make([][]string, 0, len(doc.Entries))
			for _, entry := range doc.Entries {
				setLabel := strconv.Itoa(entry.SetNumber)
				if entry.SetIsEncore {
					setLabel += " (encore)"
				}
				rows = append(rows, []string{
					setLabel,
					strconv.Itoa(entry.Position),
					entry.Title,
					yesNo(entry.HasSegue),
					yesNo(entry.IsExtra),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"SET", "POS", "TITLE", "SEGUE", "EXTRA"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the parsed document as JSON")
	return cmd
}

func writeDocumentJSON(cmd *cobra.Command, doc *setlist.Document) error {
	type jsonEntry struct {
		Title    string `json:"title"`
		Set      int    `json:"set"`
		Encore   bool   `json:"encore"`
		Position int    `json:"position"`
		HasSegue bool   `json:"has_segue"`
		IsExtra  bool   `json:"is_extra"`
	}
	entries := make([]jsonEntry, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		entries = append(entries, jsonEntry{
			Title:    entry.Title,
			Set:      entry.SetNumber,
			Encore:   entry.SetIsEncore,
			Position: entry.Position,
			HasSegue: entry.HasSegue,
			IsExtra:  entry.IsExtra,
		})
	}
	return writeJSON(cmd, map[string]any{
		"source":  doc.SourceID,
		"venue":   doc.VenueText,
		"entries": entries,
	})
}
