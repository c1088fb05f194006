package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarryml/db2source/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all definitions as a JSONL snapshot",
	Long: `Export writes every registered definition as JSON Lines, one record
per line with a leading header. The snapshot goes to stdout by default,
to a file with --out, or to S3 with --s3 (bucket and key from config).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		toS3, _ := cmd.Flags().GetBool("s3")

		store, err := openRegistry()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()

		if toS3 {
			if cfg.SnapshotS3Bucket == "" {
				return fmt.Errorf("no snapshot bucket: set DB2SRC_SNAPSHOT_S3_BUCKET")
			}
			var buf bytes.Buffer
			if err := snapshot.ExportJSONL(ctx, store, &buf); err != nil {
				return err
			}
			dest, err := snapshot.NewS3Destination(ctx,
				cfg.SnapshotS3Bucket, cfg.SnapshotS3Key,
				cfg.SnapshotS3Region, cfg.SnapshotS3Endpoint)
			if err != nil {
				return err
			}
			if err := dest.Write(ctx, buf.Bytes()); err != nil {
				return err
			}
			fmt.Printf("exported to s3://%s/%s\n", cfg.SnapshotS3Bucket, cfg.SnapshotS3Key)
			return nil
		}

		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := snapshot.ExportJSONL(ctx, store, f); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", outPath)
			return nil
		}

		return snapshot.ExportJSONL(ctx, store, os.Stdout)
	},
}

func init() {
	exportCmd.Flags().String("out", "", "write the snapshot to a file")
	exportCmd.Flags().Bool("s3", false, "upload the snapshot to S3")
}
