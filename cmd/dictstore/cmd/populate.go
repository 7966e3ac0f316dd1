/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"github.com/spf13/cobra"

	storeerrors "github.com/suparena/dictstore/errors"
)

func newPopulateCmd() *cobra.Command {
	var (
		dataDir string
		files   []string
	)
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Bulk-load entity CSV files into the dictionary index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			err = store.Populate(cmd.Context(), dataDir, files, nil)
			if be, ok := storeerrors.AsBulkError(err); ok {
				// Partial failure: the rest of the data landed.
				logger.Warn("populate finished with failures",
					"attempted", be.Attempted, "failed", len(be.Failures))
				for _, f := range be.Failures {
					logger.Warn("document failed", "entity", f.EntityName, "value", f.Value, "error", f.Err)
				}
				return err
			}
			if err != nil {
				return err
			}
			logger.Info("populate complete", "dir", dataDir, "files", len(files))
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of entity CSV files")
	cmd.Flags().StringSliceVar(&files, "file", nil, "explicit entity CSV file (repeatable)")
	return cmd
}

func newRepopulateCmd() *cobra.Command {
	var (
		dataDir string
		files   []string
	)
	cmd := &cobra.Command{
		Use:   "repopulate",
		Short: "Rebuild the dictionary index from scratch: delete, create, populate",
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
			logger.Info("repopulate complete", "dir", dataDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of entity CSV files")
	cmd.Flags().StringSliceVar(&files, "file", nil, "explicit entity CSV file (repeatable)")
	return cmd
}
