package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"setscan/internal/catalog"
	"setscan/internal/discplan"
	"setscan/internal/showid"
)

func newDiscsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var padChars int

	cmd := &cobra.Command{
		Use:   "discs <folder>",
		Short: "Preview disc and track assignment for a show folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			folderPath := filepath.Clean(args[0])
			folderName := filepath.Base(folderPath)

			pad := cfg.Scanning.PadChars
			if cmd.Flags().Changed("pad") {
				pad = padChars
			}
			date, ok := showid.ParseDate(folderName, pad)
			if !ok {
				return fmt.Errorf("no show date in folder name %q", folderName)
			}

			tracks, err := collectTracks(folderPath)
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				return fmt.Errorf("no FLAC files in %s", folderPath)
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

			key := catalog.ShowKey{
				Year:      date.Year,
				Month:     date.Month,
				Day:       date.Day,
				Band:      cfg.Matching.Band,
				EarlyLate: showid.DetectEarlyLate(folderName),
			}
			entries, err := store.Setlist(cmd.Context(), key)
			if err != nil {
				return fmt.Errorf("catalog setlist for %s: %w", date, err)
			}
			sets, err := store.SetInfo(cmd.Context(), key)
			if err != nil {
				return fmt.Errorf("catalog sets for %s: %w", date, err)
			}

			assignments := discplan.NewEngine(m).Assign(tracks, entries, sets)

			if jsonOut {
				return writeAssignmentsJSON(cmd, date.String(), assignments)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(assignments))
			for _, a := range assignments {
				rows = append(rows, []string{
					a.Name,
					strconv.Itoa(a.Disc),
					strconv.Itoa(a.TrackNumber),
					a.Title,
					yesNo(a.IsExtra),
					yesNo(a.Inferred),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"FILE", "DISC", "TRACK", "TITLE", "EXTRA", "INFERRED"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft}))

			discTotal, perDisc := discplan.Totals(assignments)
			discs := make([]int, 0, len(perDisc))
			for disc := range perDisc {
				discs = append(discs, disc)
			}
			sort.Ints(discs)
			parts := make([]string, 0, len(discs))
			for _, disc := range discs {
				parts = append(parts, fmt.Sprintf("disc %d: %d", disc, perDisc[disc]))
			}
			fmt.Fprintf(out, "\n%d discs (%s)\n", discTotal, strings.Join(parts, ", "))
			return nil
		},
	}

	cmd.Flags().IntVar(&padChars, "pad", 2, "Prefix characters before the date in the folder name")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit assignments as JSON")
	return cmd
}

// Filename numbering prefixes ("d1t01 - ", "01. ") carry no title
// information and would defeat matching.
var trackPrefixRE = regexp.MustCompile(`(?i)^(?:d\d+t\d+|t?\d{1,2})\s*[-–—.)]*\s+`)

// collectTracks lists the folder's FLAC files in name order; the title
// fed to the matcher is the file stem with the numbering prefix removed.
func collectTracks(folderPath string) ([]discplan.Track, error) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folderPath, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".flac") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	tracks := make([]discplan.Track, 0, len(names))
	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		title := trackPrefixRE.ReplaceAllString(stem, "")
		if title == "" {
			title = stem
		}
		tracks = append(tracks, discplan.Track{Name: name, RawTitle: title})
	}
	return tracks, nil
}

func writeAssignmentsJSON(cmd *cobra.Command, date string, assignments []discplan.Assignment) error {
	type jsonAssignment struct {
		File     string `json:"file"`
		Disc     int    `json:"disc"`
		Track    int    `json:"track"`
		Title    string `json:"title"`
		Matched  string `json:"matched,omitempty"`
		IsExtra  bool   `json:"is_extra"`
		Inferred bool   `json:"inferred"`
	}
	out := make([]jsonAssignment, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, jsonAssignment{
			File:     a.Name,
			Disc:     a.Disc,
			Track:    a.TrackNumber,
			Title:    a.Title,
			Matched:  a.MatchedSong,
			IsExtra:  a.IsExtra,
			Inferred: a.Inferred,
		})
	}
	discTotal, _ := discplan.Totals(assignments)
	return writeJSON(cmd, map[string]any{
		"date":        date,
		"disc_total":  discTotal,
		"assignments": out,
	})
}
