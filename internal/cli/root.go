package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"docmatch/internal/config"
	"docmatch/internal/logger"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	appConfig *config.AppConfig
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docmatch",
		Short: "Match documents to a reference corpus by TF-IDF similarity",
		Long: `docmatch indexes a directory of reference documents (PDF or plain text)
and ranks query documents against it by TF-IDF cosine similarity.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Logging.Format = logFormat
			}
			logger.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
			appConfig = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ./docmatch.yaml or ~/.config/docmatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(newMatchCommand())
	rootCmd.AddCommand(newBrowseCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit))

	return rootCmd
}

func loadConfig() (*config.AppConfig, error) {
	if cfgFile == "" {
		cfg, _, err := config.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newVersionCommand(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version == "" {
				version = "development"
			}
			if commit == "" {
				commit = "local-build"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "docmatch %s (%s)\n", version, commit)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}
