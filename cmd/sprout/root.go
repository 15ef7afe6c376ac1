package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/content"
	"github.com/phanxgames/sprout/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "sprout",
	Short:         "Sprout grows circuit, organic and skyline animations around page elements",
	Long:          `Sprout shows the portfolio pages and grows animated traces around the element under the pointer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "sprout.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config")
	rootCmd.PersistentFlags().String("content", "", "Content directory; overrides the config")
}

// env is what every command loads before doing its work.
type env struct {
	cfg   sprout.Config
	log   *slog.Logger
	store *content.Store
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := sprout.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if dir, _ := cmd.Flags().GetString("content"); dir != "" {
		cfg.ContentDir = dir
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logging.New(level)

	store, err := content.Load(cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	log.Debug("content loaded", "dir", cfg.ContentDir,
		"projects", len(store.Projects), "labs", len(store.Labs), "cv", len(store.CVs))
	return &env{cfg: cfg, log: log, store: store}, nil
}
