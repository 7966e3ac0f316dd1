/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/dictstore/storagemodels"
)

func newEntityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entity",
		Short: "Entity-level reads and mutations",
	}
	cmd.AddCommand(
		newEntityDictionaryCmd(),
		newEntitySimilarCmd(),
		newEntityValuesCmd(),
		newEntityLanguagesCmd(),
		newEntityDataCmd(),
		newEntityAddCmd(),
		newEntityUpdateCmd(),
		newEntityDeleteCmd(),
	)
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newEntityDictionaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dictionary <name>",
		Short: "Print the value to variants mapping of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			dict, err := store.GetEntityDictionary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, dict)
		},
	}
}

func newEntitySimilarCmd() *cobra.Command {
	var (
		fuzziness string
		language  string
	)
	cmd := &cobra.Command{
		Use:   "similar <name> <text>",
		Short: "Fuzzy-search variants of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := storagemodels.ParseFuzziness(fuzziness)
			if err != nil {
				return err
			}
			store, _, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			matches, err := store.GetSimilarDictionary(cmd.Context(), args[0], args[1], policy, language)
			if err != nil {
				return err
			}
			return printJSON(cmd, matches)
		},
	}
	cmd.Flags().StringVar(&fuzziness, "fuzziness", "", `edit distance: "2", "auto" or "auto:4,7"`)
	cmd.Flags().StringVar(&language, "language", "", "language script filter (English always included)")
	return cmd
}

func newEntityValuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "values <name>",
		Short: "Print the canonical values of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			values, err := store.GetEntityUniqueValues(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

func newEntityLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages <name>",
		Short: "Print the language scripts present for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			langs, err := store.GetEntitySupportedLanguages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, l := range langs {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
}

func newEntityDataCmd() *cobra.Command {
	var values []string
	cmd := &cobra.Command{
		Use:   "data <name>",
		Short: "Print full records of an entity, optionally filtered by value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.GetEntityData(cmd.Context(), args[0], values)
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		},
	}
	cmd.Flags().StringSliceVar(&values, "value", nil, "canonical value filter (repeatable)")
	return cmd
}

func newEntityAddCmd() *cobra.Command {
	var (
		value    string
		variants []string
		language string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Append one dictionary record to an entity (live index)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rec := storagemodels.EntityRecord{
				Value:          value,
				Variants:       variants,
				LanguageScript: language,
			}
			if err := store.AddEntityData(cmd.Context(), args[0], []storagemodels.EntityRecord{rec}); err != nil {
				return err
			}
			logger.Info("record added", "entity", args[0], "value", value)
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "canonical value (required)")
	cmd.Flags().StringSliceVar(&variants, "variant", nil, "variant spelling (repeatable)")
	cmd.Flags().StringVar(&language, "language", "en", "language script")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newEntityUpdateCmd() *cobra.Command {
	var (
		value    string
		variants []string
		language string
	)
	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Upsert one dictionary record by canonical value (live index)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rec := storagemodels.EntityRecord{Value: value, Variants: variants}
			if err := store.UpdateEntityData(cmd.Context(), args[0], []storagemodels.EntityRecord{rec}, language); err != nil {
				return err
			}
			logger.Info("record updated", "entity", args[0], "value", value)
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "canonical value (required)")
	cmd.Flags().StringSliceVar(&variants, "variant", nil, "replacement variant (repeatable)")
	cmd.Flags().StringVar(&language, "language", "en", "language script of the upsert")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newEntityDeleteCmd() *cobra.Command {
	var values []string
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an entity's records, or only selected values (live index)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if len(values) == 0 {
				if err := store.DeleteEntity(cmd.Context(), args[0]); err != nil {
					return err
				}
				logger.Info("entity deleted", "entity", args[0])
				return nil
			}
			if err := store.DeleteEntityDataByValues(cmd.Context(), args[0], values); err != nil {
				return err
			}
			logger.Info("values deleted", "entity", args[0], "values", len(values))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&values, "value", nil, "canonical value to delete (repeatable; none deletes the entity)")
	return cmd
}
