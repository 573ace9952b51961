package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"setscan/internal/matcher"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var learn bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "match <title>...",
		Short: "Resolve raw track titles to canonical song names",
		Args:  cobra.MinimumNArgs(1),
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

			m, err := buildMatcher(cmd.Context(), cfg, store, learn, logger)
			if err != nil {
				return err
			}

			results := make([]matcher.Result, 0, len(args))
			for _, title := range args {
				results = append(results, m.Match(title))
			}

			if jsonOut {
				return writeMatchResultsJSON(cmd, results)
			}

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				rows = append(rows, []string{
					result.OriginalTitle,
					result.MatchedTitle,
					strconv.Itoa(result.Confidence),
					string(result.Source),
					yesNo(result.HasSegue),
					yesNo(result.NeedsReview),
					result.FinalTitle(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
				[]string{"TITLE", "MATCHED", "CONF", "SOURCE", "SEGUE", "REVIEW", "FINAL"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&learn, "learn", false, "Persist auto-applied fuzzy matches to the corrections map")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}

func writeMatchResultsJSON(cmd *cobra.Command, results []matcher.Result) error {
	type jsonResult struct {
		Title       string `json:"title"`
		Cleaned     string `json:"cleaned"`
		Matched     string `json:"matched,omitempty"`
		Confidence  int    `json:"confidence"`
		Source      string `json:"source"`
		HasSegue    bool   `json:"has_segue"`
		NeedsReview bool   `json:"needs_review"`
		Final       string `json:"final"`
	}
	out := make([]jsonResult, 0, len(results))
	for _, result := range results {
		out = append(out, jsonResult{
			Title:       result.OriginalTitle,
			Cleaned:     result.CleanedTitle,
			Matched:     result.MatchedTitle,
			Confidence:  result.Confidence,
			Source:      string(result.Source),
			HasSegue:    result.HasSegue,
			NeedsReview: result.NeedsReview,
			Final:       result.FinalTitle(),
		})
	}
	return writeJSON(cmd, map[string]any{"results": out})
}
