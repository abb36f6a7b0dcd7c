package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

func newResultsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Manage archived questionnaire results",
	}

	cmd.AddCommand(newResultsListCommand(opts))
	cmd.AddCommand(newResultsShowCommand(opts))
	cmd.AddCommand(newResultsDeleteCommand(opts))
	cmd.AddCommand(newResultsExportCommand(opts))
	cmd.AddCommand(newResultsImportCommand(opts))

	return cmd
}

func newResultsListCommand(opts *globalOptions) *cobra.Command {
	var questionnaire string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived results, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var q domain.Questionnaire
			if questionnaire != "" {
				parsed, err := domain.ParseQuestionnaire(questionnaire)
				if err != nil {
					return err
				}
				q = parsed
			}

			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			store, err := rt.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			list, err := store.List(ctx, q, limit, offset)
			if err != nil {
				return err
			}
			total, err := store.Count(ctx, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No results archived.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tQUESTIONNAIRE\tSCORE\tRISK\tFLAGS\tSUBMITTED")
			for _, r := range list {
				flags := strings.Join(r.Flags.Strings(), ",")
				if flags == "" {
					flags = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
					r.ID, r.Questionnaire, r.Score, r.RiskTier, flags, r.SubmittedAt.Format(time.RFC3339))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d of %d results\n", len(list), total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&questionnaire, "questionnaire", "q", "", "Only list results of this questionnaire")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of results to skip")

	return cmd
}

func newResultsShowCommand(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one archived result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			store, err := rt.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}
			rt.renderer(cmd).Result(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func newResultsDeleteCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an archived result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			store, err := rt.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted result %s\n", args[0])
			return nil
		},
	}
}

func newResultsExportCommand(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the archive as JSON",
		Long: `Export every archived result as a versioned JSON document.

Examples:
  urolinq results export > backup.json
  urolinq results export --output backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			store, err := rt.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			if output == "" {
				return store.ExportJSON(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()

			if err := store.ExportJSON(cmd.Context(), f); err != nil {
				return err
			}
			rt.logger.WithField("path", output).Info("Results exported")
			fmt.Fprintf(cmd.OutOrStdout(), "Exported results to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (stdout if not specified)")

	return cmd
}

func newResultsImportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import results from a JSON export",
		Long:  `Import results from a JSON export. Results whose id is already archived are skipped.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			store, err := rt.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer f.Close()

			imported, skipped, err := store.ImportJSON(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d results (%d already archived)\n", imported, skipped)
			return nil
		},
	}
}
