/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/suparena/dictstore/datasync"
	"github.com/suparena/dictstore/logging"
)

func newSyncCmd() *cobra.Command {
	var (
		bucket    string
		prefix    string
		region    string
		accessKey string
		secretKey string
		destDir   string
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror entity CSV files from an S3 bucket prefix to a local directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(logging.Options{Level: logLevel, JSON: jsonLogs})

			client, err := datasync.NewS3Client(cmd.Context(), accessKey, secretKey, region)
			if err != nil {
				return err
			}
			mirror := datasync.NewMirror(client, bucket, prefix, logger)
			written, err := mirror.Sync(cmd.Context(), destDir)
			if err != nil {
				return err
			}
			logger.Info("sync complete", "bucket", bucket, "prefix", prefix, "files", written)
			return nil
		},
	}
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (required)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix to mirror")
	cmd.Flags().StringVar(&region, "region", "us-east-1", "AWS region")
	cmd.Flags().StringVar(&accessKey, "access-key", "", "AWS access key (default: ambient credentials)")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "AWS secret key")
	cmd.Flags().StringVar(&destDir, "dest", "", "destination directory (required)")
	_ = cmd.MarkFlagRequired("bucket")
	_ = cmd.MarkFlagRequired("dest")
	return cmd
}
