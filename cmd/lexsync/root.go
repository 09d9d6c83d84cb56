package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/gsatvocab/lexedge/internal/logger"
	"github.com/gsatvocab/lexedge/internal/storage/r2"
	"github.com/gsatvocab/lexedge/internal/version"
)

// commandContext carries the flags and lazily built clients shared by
// the subcommands.
type commandContext struct {
	accountID       string
	accessKeyID     string
	secretAccessKey string
	endpoint        string
	verbose         bool

	logger *zap.Logger
}

// ensureLogger builds the CLI logger once.
func (c *commandContext) ensureLogger() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	logger, err := logpkg.New("local", level)
	if err != nil {
		logger = zap.NewNop()
	}
	c.logger = logger
	return logger
}

// objectStore builds an R2 client from flags, falling back to the
// R2_* environment variables.
func (c *commandContext) objectStore(cmd *cobra.Command) (*r2.Client, error) {
	cfg := r2.Config{
		AccountID:       firstNonEmpty(c.accountID, os.Getenv("R2_ACCOUNT_ID")),
		AccessKeyID:     firstNonEmpty(c.accessKeyID, os.Getenv("R2_ACCESS_KEY_ID")),
		SecretAccessKey: firstNonEmpty(c.secretAccessKey, os.Getenv("R2_SECRET_ACCESS_KEY")),
		Endpoint:        c.endpoint,
	}
	client, err := r2.New(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to object store: %w", err)
	}
	return client, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "lexsync",
		Short:         "Prepare and publish vocabulary site assets",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Local convenience: credentials usually live in .env.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.accountID, "account-id", "", "Cloudflare account ID (default: $R2_ACCOUNT_ID)")
	rootCmd.PersistentFlags().StringVar(&ctx.accessKeyID, "access-key-id", "", "R2 access key ID (default: $R2_ACCESS_KEY_ID)")
	rootCmd.PersistentFlags().StringVar(&ctx.secretAccessKey, "secret-access-key", "", "R2 secret access key (default: $R2_SECRET_ACCESS_KEY)")
	rootCmd.PersistentFlags().StringVar(&ctx.endpoint, "endpoint", "", "Override the object store endpoint (S3/MinIO)")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newSplitCommand(ctx))
	rootCmd.AddCommand(newUploadCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
