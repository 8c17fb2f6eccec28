package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/saileshbalu94/ecommerce-ai/internal/services"
)

func init() {
	rootCmd.AddCommand(createBucketCmd)
}

var createBucketCmd = &cobra.Command{
	Use:   "create-bucket",
	Short: "Ensure the public product image bucket exists",
	Long: `Create the storage bucket named by STORAGE_BUCKET with public read
access. Running it again when the bucket exists is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runCreateBucket,
}

func runCreateBucket(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	storage, err := services.NewStorageService(cfg.Storage, logger)
	if err != nil {
		return err
	}
	if !storage.Remote() {
		return errors.New("object storage is not configured (set STORAGE_ACCESS_KEY_ID and STORAGE_SECRET_ACCESS_KEY)")
	}

	created, err := storage.EnsureBucket(cmd.Context())
	if err != nil {
		return err
	}
	if created {
		cmd.Printf("Bucket %q created\n", cfg.Storage.Bucket)
	} else {
		cmd.Printf("Bucket %q already exists\n", cfg.Storage.Bucket)
	}
	return nil
}
