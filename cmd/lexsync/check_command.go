package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pipesync "github.com/gsatvocab/lexedge/internal/pipeline/sync"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var bucket string
	var prefix string
	var listOrphans bool

	cmd := &cobra.Command{
		Use:   "check <dir>",
		Short: "Verify that the bucket matches the local assets",
		Long: `Check heads each object that a local file under <dir> maps to and
lists the ones the bucket is missing or holds at a different size.
Exits non-zero on any divergence, for use in publish pipelines.
With --orphans it also lists remote objects under the prefix that no
local file maps to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := pipesync.Scan(args[0], prefix)
			if err != nil {
				return err
			}

			objects, err := ctx.objectStore(cmd)
			if err != nil {
				return err
			}

			report, err := pipesync.Verify(cmd.Context(), objects, bucket, files)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, key := range report.Missing {
				rows = append(rows, []string{key, "missing"})
			}
			for _, key := range report.Mismatched {
				rows = append(rows, []string{key, "size mismatch"})
			}

			if listOrphans {
				orphans, err := pipesync.Orphans(cmd.Context(), objects, bucket, prefix, files)
				if err != nil {
					return err
				}
				for _, key := range orphans {
					rows = append(rows, []string{key, "orphaned remote object"})
				}
			}

			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "all %d assets present in %s\n", len(files), bucket)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Object", "Problem"}, rows,
				[]columnAlignment{alignLeft, alignLeft},
			))

			if report.Clean() {
				// Only orphans: informational, not a publish failure.
				return nil
			}
			return fmt.Errorf("%d of %d assets missing or mismatched in %s",
				len(report.Missing)+len(report.Mismatched), len(files), bucket)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "vocab-data", "Bucket to verify against")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Key prefix prepended to every object")
	cmd.Flags().BoolVar(&listOrphans, "orphans", false, "Also list remote objects with no local counterpart")

	return cmd
}
