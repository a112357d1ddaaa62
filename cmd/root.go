package cmd

import (
	"fmt"

	"ctxpack/pkg/logging"
	"ctxpack/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions carries persistent flags and the logger to subcommands.
type globalOptions struct {
	debug      bool
	logFile    string
	configFile string
	logger     *zap.Logger
}

// NewRootCommand builds the command tree. logger is used until the
// persistent flags have been parsed and a configured logger replaces it.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &globalOptions{logger: logger}

	rootCmd := &cobra.Command{
		Use:   "ctxpack",
		Short: "ctxpack bundles a project into one file for AI chats and restores it",
		Long: `ctxpack collects the text and binary files of a project into a single
portable bundle that can be pasted into an AI chat, and reconstructs the
original file tree from such a bundle.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !g.debug && g.logFile == "" {
				return nil
			}
			logger, err := logging.Setup(logging.Options{
				Debug:      g.debug,
				AppName:    "ctxpack",
				AppVersion: version.Short(),
				LogFile:    g.logFile,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			g.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Also write logs to this rotating file")
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", "Config file (default ./.ctxpack.yaml if present)")

	rootCmd.AddCommand(newPackCommand(g))
	rootCmd.AddCommand(newUnpackCommand(g))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute(logger *zap.Logger) error {
	return NewRootCommand(logger).Execute()
}
