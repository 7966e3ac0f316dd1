/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Provision the dictionary index (and CRF index when configured)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Create(cmd.Context(), nil); err != nil {
				return err
			}
			logger.Info("indexes ready")
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Drop the dictionary index and all its documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), nil); err != nil {
				return err
			}
			logger.Info("dictionary index deleted")
			return nil
		},
	}
}

func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists",
		Short: "Report whether the dictionary index is present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if store.Exists(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), "exists")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "missing")
			return nil
		},
	}
}

func newSetupCmd() *cobra.Command {
	var (
		dataDir string
		files   []string
	)
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Initial setup: delete, create and populate in sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Repopulate(cmd.Context(), dataDir, files, nil); err != nil {
				return err
			}
			logger.Info("setup complete", "dir", dataDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of entity CSV files")
	cmd.Flags().StringSliceVar(&files, "file", nil, "explicit entity CSV file (repeatable)")
	return cmd
}
