// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the newssumirizer CLI: digest prints
// summaries for one topic, serve runs the web UI.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nkprajapati01/newssumirizer/internal/logging"
	"github.com/nkprajapati01/newssumirizer/internal/secrets"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ and .env at startup.
var loadedSecrets secrets.Set

// logger is configured in PersistentPreRunE once flags and config are read.
var logger = logging.Discard()

// rootCmd is the base command for the newssumirizer CLI.
var rootCmd = &cobra.Command{
	Use:   "newssumirizer",
	Short: "Summarize the latest news and research papers on a topic",
	Long: `newssumirizer searches current news (SerpApi) and research papers (arXiv)
for a topic and summarizes every result with a hosted model.

Use digest for a one-shot terminal report and serve for the web UI. API keys
come from .secrets/<key-name> files, a .env file, or the environment
(SERPAPI_API_KEY, HUGGINGFACE_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, viper.GetString("log.level"))

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		if err := s.MergeDotenv(".env"); err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", slog.Any("keys", keys))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(types.DefaultConfig())

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./newssumirizer.yaml or ~/.config/newssumirizer/newssumirizer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, or error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("newssumirizer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "newssumirizer"))
		}
	}

	viper.SetEnvPrefix("NEWSSUMIRIZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.New(os.Stderr, viper.GetString("log.level")).Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
