/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newCRFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crf",
		Short: "CRF training corpus operations",
	}
	cmd.AddCommand(newCRFGetCmd(), newCRFAddCmd())
	return cmd
}

func newCRFGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print the labeled training corpus of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := store.GetCRFDataForEntityName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}
}

func newCRFAddCmd() *cobra.Command {
	var (
		sentence string
		entities []string
		language string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Append one labeled training sentence for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			err = store.UpdateEntityCRFData(cmd.Context(), args[0],
				[][]string{entities}, language, []string{sentence})
			if err != nil {
				return err
			}
			logger.Info("training sentence added",
				"entity", args[0], "spans", strings.Join(entities, ","))
			return nil
		},
	}
	cmd.Flags().StringVar(&sentence, "sentence", "", "training sentence (required)")
	cmd.Flags().StringSliceVar(&entities, "span", nil, "entity span occurring in the sentence (repeatable)")
	cmd.Flags().StringVar(&language, "language", "en", "language script")
	_ = cmd.MarkFlagRequired("sentence")
	return cmd
}
