/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package cmd provides the CLI commands for the dictionary store.
package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/suparena/dictstore"
	"github.com/suparena/dictstore/config"
	_ "github.com/suparena/dictstore/engine/bleveengine"
	"github.com/suparena/dictstore/logging"
)

var (
	cfgFile  string
	logLevel string
	jsonLogs bool
)

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd creates the root command for the dictstore CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictstore",
		Short: "Entity-dictionary store on an embedded search engine",
		Long: `dictstore maintains entity dictionaries (canonical values and their
textual variants) and an optional CRF training corpus inside a pluggable
search-engine backend.

Configuration comes from DICTSTORE_* environment variables, a .env file,
or a YAML file passed with --config.`,
		Version:       dictstore.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetVersionTemplate("dictstore version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit JSON logs instead of console output")

	cmd.AddCommand(
		newCreateCmd(),
		newDeleteCmd(),
		newExistsCmd(),
		newSetupCmd(),
		newPopulateCmd(),
		newRepopulateCmd(),
		newEntityCmd(),
		newCRFCmd(),
		newSyncCmd(),
		newTransferCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return cmd
}

func loadConfig() (*config.StoreConfig, error) {
	if cfgFile != "" {
		return config.FromFile(cfgFile)
	}
	return config.Load()
}

// newStore builds the logger and the DataStore the subcommands operate on.
func newStore() (*dictstore.DataStore, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	logger := logging.Setup(logging.Options{Level: level, JSON: jsonLogs})

	store, err := dictstore.New(cfg, dictstore.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return store, logger, nil
}
