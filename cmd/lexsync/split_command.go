package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gsatvocab/lexedge/internal/pipeline/split"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var input string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split the combined vocabulary file into per-word assets",
		Long: `Split reads the combined enrichment output and produces the published
asset set: one detail document per lemma under vocab_details/, the
vocabulary index, and the part-of-speech search index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := split.Config{
				InputPath:       input,
				DetailsDir:      filepath.Join(outputDir, "vocab_details"),
				IndexPath:       filepath.Join(outputDir, "vocab_index.json"),
				SearchIndexPath: filepath.Join(outputDir, "search_index.json"),
			}

			res, err := split.Run(cfg, ctx.ensureLogger())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Output", "Count"},
				[][]string{
					{"detail files", fmt.Sprintf("%d", res.Details)},
					{"skipped entries", fmt.Sprintf("%d", res.Skipped)},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "data/output/vocab_data.json", "Combined vocabulary JSON file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "data/output", "Directory for the generated assets")

	return cmd
}
