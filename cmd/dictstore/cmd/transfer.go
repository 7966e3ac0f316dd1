/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <entity> [entity...]",
		Short: "Copy entities from the source cluster to the destination cluster",
		Long: `Copies the named entities' dictionary records between engine roots.
Source and destination come from the configuration (DICTSTORE_SOURCE_URL,
DICTSTORE_DESTINATION_URL). Entities succeed or fail independently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, logger, err := newStore()
			if err != nil {
				return err
			}
			defer store.Close()

			results, err := store.TransferEntities(cmd.Context(), args)
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					logger.Error("transfer failed", "entity", res.EntityName, "error", res.Err)
					continue
				}
				logger.Info("transferred", "entity", res.EntityName, "records", res.Records)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d entities failed to transfer", failed, len(results))
			}
			return nil
		},
	}
}
