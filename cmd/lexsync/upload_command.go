package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pipesync "github.com/gsatvocab/lexedge/internal/pipeline/sync"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var bucket string
	var prefix string
	var workers int
	var attempts int

	cmd := &cobra.Command{
		Use:   "upload <dir>",
		Short: "Upload a directory of assets to an R2 bucket",
		Long: `Upload pushes every file under <dir> to the bucket, preserving the
relative directory layout in the object keys. Uploads run concurrently
and each file is retried before it counts as failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := pipesync.Scan(args[0], prefix)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to upload")
				return nil
			}

			objects, err := ctx.objectStore(cmd)
			if err != nil {
				return err
			}

			res := pipesync.NewUploader(objects, bucket, ctx.ensureLogger()).
				WithWorkers(workers).
				WithAttempts(attempts).
				Upload(cmd.Context(), files)

			rows := [][]string{
				{"uploaded", fmt.Sprintf("%d", res.Uploaded)},
				{"failed", fmt.Sprintf("%d", len(res.Failed))},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Result", "Files"}, rows,
				[]columnAlignment{alignLeft, alignRight},
			))

			if len(res.Failed) > 0 {
				for _, f := range res.Failed {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %v\n", f.Key, f.Err)
				}
				return fmt.Errorf("%d of %d uploads failed", len(res.Failed), len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "vocab-data", "Destination bucket")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Key prefix prepended to every object")
	cmd.Flags().IntVarP(&workers, "workers", "w", 8, "Concurrent uploads")
	cmd.Flags().IntVar(&attempts, "attempts", 3, "Tries per file before giving up")

	return cmd
}
