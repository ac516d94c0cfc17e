package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var vectorNormalized bool

func init() {
	rootCmd.AddCommand(vectorCmd)

	vectorCmd.Flags().BoolVar(&vectorNormalized, "normalized", false, "Print the unit-normalized vector")
}

// VectorResponse is the response for the vector command.
type VectorResponse struct {
	Word       string    `json:"word"`
	ID         int       `json:"id"`
	Dimension  int       `json:"dimension"`
	Normalized bool      `json:"normalized"`
	Vector     []float32 `json:"vector"`
}

var vectorCmd = &cobra.Command{
	Use:   "vector <word>",
	Short: "Print the embedding vector for a word",
	Long: `Print the raw embedding vector for a word, or its unit-normalized form
with --normalized. Lookups retry with a lowercased, NFC-normalized form
of the word when the verbatim form is absent.`,
	Args: cobra.ExactArgs(1),
	RunE: runVector,
}

func runVector(cmd *cobra.Command, args []string) error {
	word := args[0]
	idx := mustLoadIndex()

	var (
		vec []float32
		ok  bool
	)
	if vectorNormalized {
		vec, ok = idx.NormalizedVector(word)
	} else {
		vec, ok = idx.Vector(word)
	}
	if !ok {
		exitWithError(ExitWordNotFound, "word %q not found in vocabulary", word)
	}

	id, _ := idx.Table().Lookup(word)

	if humanOutput {
		fmt.Printf("%s (id %d, dimension %d)\n", idx.Table().Word(id), id, idx.Dim())
		for i, v := range vec {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Printf("%.5f", v)
		}
		fmt.Println()
	} else {
		outputJSON(VectorResponse{
			Word:       idx.Table().Word(id),
			ID:         id,
			Dimension:  idx.Dim(),
			Normalized: vectorNormalized,
			Vector:     vec,
		})
	}

	return nil
}
