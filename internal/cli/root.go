// Package cli implements the urolinq command line: interactive questionnaire
// runs, answer-file scoring and archive maintenance.
package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/urolinq-questionnaire-engine/internal/config"
	"github.com/urolinq-questionnaire-engine/internal/logging"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configFile string
	logLevel   string
	color      string
}

// NewRootCommand creates and returns the root cobra command for urolinq
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "urolinq",
		Short: "Urology patient questionnaires with deterministic scoring",
		Long: `urolinq walks patients through the IPSS, MIPRO and Enuresis questionnaires,
scores the answers and keeps an archive of the results.

Questionnaires: ` + strings.Join(questionnaireNames(), ", "),
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default: ./config.yaml or ~/.urolinq/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")
	cmd.PersistentFlags().StringVar(&opts.color, "color", "", "Color output (auto|always|never)")

	cmd.AddCommand(newCatalogCommand(opts))
	cmd.AddCommand(newTakeCommand(opts))
	cmd.AddCommand(newScoreCommand(opts))
	cmd.AddCommand(newResultsCommand(opts))
	cmd.AddCommand(newDBCommand(opts))

	return cmd
}

// runtime is the configuration and logger resolved for one command run.
type runtime struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// load resolves configuration, applies flag overrides and builds the logger.
// Logs go to the command's error stream so stdout stays clean for output.
func (o *globalOptions) load(cmd *cobra.Command) (*runtime, error) {
	manager, err := config.NewManager(o.configFile)
	if err != nil {
		return nil, err
	}
	cfg := manager.Config()

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.color != "" {
		cfg.Output.Color = o.color
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if used := manager.ConfigFileUsed(); used != "" {
		logger.WithField("config_file", used).Debug("Configuration loaded")
	}

	return &runtime{cfg: cfg, logger: logger}, nil
}
