// Package commands implements the formstate command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/telemetry"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg       config.Config
	log       zerolog.Logger
	logCloser io.Closer

	// driver replaces the interactive survey prompts, for tests.
	driver tui.PromptDriver
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	a := &app{}
	defer a.close()
	return newRootCommand(version, a).ExecuteContext(ctx)
}

func newRootCommand(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formstate",
		Short: "Practice form engine with web and terminal front ends",
		Long: `formstate drives a fixed practice form: it keeps the field values of a
session, validates them on submit and hands valid records to a collaborator.

The same engine backs the HTTP server (serve), the interactive terminal
prompts (fill) and the offline checks (validate, schema).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (console, json)")

	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newFillCommand(a))
	rootCmd.AddCommand(newValidateCommand(a))
	rootCmd.AddCommand(newSchemaCommand())

	return rootCmd
}

// load layers the config file, the environment and the global flags, then
// builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}

	log, closer, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	a.cfg = cfg
	a.log = log
	a.logCloser = closer
	return nil
}

// close releases the log output opened by load.
func (a *app) close() {
	if a.logCloser == nil {
		return
	}
	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "formstate: close log output: %v\n", err)
	}
	a.logCloser = nil
}
