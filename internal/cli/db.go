package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/urolinq-questionnaire-engine/internal/database"
)

func newDBCommand(opts *globalOptions) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Maintain the PostgreSQL result archive",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (default: archive.database_url)")

	resolveURL := func(rt *runtime) (string, error) {
		url := databaseURL
		if url == "" {
			url = rt.cfg.Archive.DatabaseURL
		}
		if url == "" {
			return "", fmt.Errorf("no database URL: set archive.database_url or pass --database-url")
		}
		return url, nil
	}

	cmd.AddCommand(newMigrateCommand(opts, resolveURL))
	cmd.AddCommand(newPingCommand(opts, resolveURL))

	return cmd
}

func newMigrateCommand(opts *globalOptions, resolveURL func(*runtime) (string, error)) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back schema migrations",
		Long:      `Apply all pending migrations (up) or roll back the most recent one (down).`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			url, err := resolveURL(rt)
			if err != nil {
				return err
			}

			var runner *database.MigrationRunner
			if path != "" {
				runner, err = database.NewMigrationRunnerFromPath(url, path, rt.logger)
			} else {
				runner, err = database.NewMigrationRunner(url, rt.logger)
			}
			if err != nil {
				return err
			}
			defer runner.Close()

			if args[0] == "up" {
				err = runner.Up(cmd.Context())
			} else {
				err = runner.Down(cmd.Context())
			}
			if err != nil {
				return err
			}

			version, dirty, err := runner.Version()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations applied")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Read migrations from this directory instead of the embedded set")

	return cmd
}

func newPingCommand(opts *globalOptions, resolveURL func(*runtime) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the archive database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			url, err := resolveURL(rt)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := database.NewConnection(ctx, url, database.DefaultPoolConfig(), rt.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Health(ctx); err != nil {
				return fmt.Errorf("database health check failed: %w", err)
			}

			out := cmd.OutOrStdout()
			stats := db.Stats()
			fmt.Fprintf(out, "Database reachable (connections: %d total, %d idle)\n", stats.TotalConns(), stats.IdleConns())

			count, err := db.ResultCount(ctx)
			if err != nil {
				fmt.Fprintln(out, "Result table not found; run 'urolinq db migrate up'")
				return nil
			}
			fmt.Fprintf(out, "Archived results: %d\n", count)
			return nil
		},
	}
}
