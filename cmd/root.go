// Package cmd implements the portfolio command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/notion"
)

var (
	cfgFile string
	debug   bool

	appConfig *config.Config
	appLogger logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio backend serving Notion content and the contact form",
	Long: `portfolio serves projects, blog posts, certificates and the about page
from Notion as JSON, and relays contact form submissions by email.`,
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return initialize()
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yml", "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and gin debug mode")
}

func initialize() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if debug {
		cfg.Server.Debug = true
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	appConfig = cfg
	appLogger = log
	return nil
}

func newAdapter(cfg *config.Config, log logger.Logger, m *metrics.Metrics) *content.Adapter {
	client := notion.NewClient(notion.Config{
		APIKey:  cfg.Notion.APIKey,
		BaseURL: cfg.Notion.BaseURL,
		Version: cfg.Notion.Version,
		Timeout: cfg.Notion.Timeout,
	})
	return content.NewAdapter(client, content.Collections{
		Projects:     cfg.Notion.ProjectsDatabase,
		Blogs:        cfg.Notion.BlogsDatabase,
		Certificates: cfg.Notion.CertificatesDatabase,
		About:        cfg.Notion.AboutPage,
	}, log, m)
}
