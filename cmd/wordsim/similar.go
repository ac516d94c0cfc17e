package main

import (
	"errors"
	"fmt"

	"github.com/arakotom/lectures-labs/internal/config"
	"github.com/arakotom/lectures-labs/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	similarLimit        int
	similarExcludeQuery bool
)

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().IntVarP(&similarLimit, "limit", "l", 0, "Maximum number of results (default from config)")
	similarCmd.Flags().BoolVar(&similarExcludeQuery, "exclude-query", false, "Exclude the query words from results")
}

// SimilarResponse is the response for the similar command.
type SimilarResponse struct {
	Query    []string          `json:"query"`
	Resolved []string          `json:"resolved"`
	Skipped  []string          `json:"skipped,omitempty"`
	Results  []semantic.Result `json:"results"`
	Total    int               `json:"total"`
}

var similarCmd = &cobra.Command{
	Use:   "similar <word>...",
	Short: "Find the nearest words by cosine similarity",
	Long: `Find the vocabulary words nearest to the query by cosine similarity.

With several words, their normalized vectors are averaged before the
search; words absent from the vocabulary are skipped. Query words appear
in their own results (a word is most similar to itself) unless
--exclude-query is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimilar,
}

func runSimilar(cmd *cobra.Command, args []string) error {
	limit := similarLimit
	if limit == 0 {
		limit = config.Limit()
	}
	if limit <= 0 {
		exitWithError(ExitError, "limit must be positive, got %d", limit)
	}

	idx := mustLoadIndex()

	stats := idx.ResolveTerms(args)
	results, err := idx.MostSimilar(args, limit, similarExcludeQuery)
	if err != nil {
		if errors.Is(err, semantic.ErrNoQueryTerms) {
			exitWithError(ExitNoQueryTerms, "no resolvable query terms: none of %v is in the vocabulary", args)
		}
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		fmt.Printf("Words similar to: %v\n", stats.Resolved)
		if len(stats.Skipped) > 0 {
			fmt.Printf("Skipped (not in vocabulary): %v\n", stats.Skipped)
		}
		fmt.Println()
		printNeighborsHuman(results)
	} else {
		outputJSON(SimilarResponse{
			Query:    args,
			Resolved: stats.Resolved,
			Skipped:  stats.Skipped,
			Results:  results,
			Total:    len(results),
		})
	}

	return nil
}
