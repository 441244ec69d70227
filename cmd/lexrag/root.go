package main

import (
	"github.com/spf13/cobra"

	"lexrag/internal/config"
	"lexrag/internal/logger"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "lexrag",
	Short: "Citation-grounded question answering over legal documents",
	Long: `lexrag indexes legal texts split along article and clause
boundaries, retrieves the most relevant passages for a question and
reports them with article citations and a calibrated confidence score.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: ./config.yaml, then ~/.config/lexrag/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages to stderr")
	rootCmd.AddCommand(indexCmd, queryCmd, tuiCmd)
}

func loadConfig() (*config.AppConfig, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	logger.Debug("using config %s", path)
	return cfg, nil
}
