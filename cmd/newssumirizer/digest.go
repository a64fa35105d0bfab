// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nkprajapati01/newssumirizer/internal/render"
)

var digestCmd = &cobra.Command{
	Use:   "digest [topic words...]",
	Short: "Print summaries of news and papers for a topic",
	Long: `Digest searches news and arXiv for the topic, summarizes every result,
and prints them grouped as News then Papers. A failing source or summary is
reported inline; the command still prints everything that succeeded.

The topic comes from --topic or, if unset, from the positional arguments.`,
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().String("topic", "", "topic to search for")
	digestCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	digestCmd.Flags().Int("max-news", 0, "maximum news results (default from config, 5)")
	digestCmd.Flags().Int("max-papers", 0, "maximum papers (default from config, 3)")
	digestCmd.Flags().String("backend", "", "summarizer backend: huggingface, claude, gemini, or lead")
	_ = viper.BindPFlag("summarizer.backend", digestCmd.Flags().Lookup("backend"))

	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		topic = strings.Join(args, " ")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("provide a topic with --topic or as arguments")
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := render.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt("max-news"); n > 0 {
		cfg.News.MaxResults = n
	}
	if n, _ := cmd.Flags().GetInt("max-papers"); n > 0 {
		cfg.Papers.MaxResults = n
	}

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	results, err := p.Run(cmd.Context(), topic)
	if err != nil {
		return err
	}
	if err := render.Write(os.Stdout, format, topic, results); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if ok, failed := render.Count(results); ok == 0 && failed > 0 {
		return fmt.Errorf("all %d result(s) failed", failed)
	}
	return nil
}
