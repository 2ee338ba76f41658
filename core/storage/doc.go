// Package storage wraps the MinIO client for the inventory tables and reports.
//
// Input tables can be read from a bucket instead of the local directory, and
// generated reports can be published to the same bucket under a prefix. Both
// AWS S3 and self-hosted MinIO are supported.
//
// The Client interface keeps the rest of the code testable; see
// core/storage/mocks for the testify mock.
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
