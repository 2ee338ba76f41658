package tables

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"inventory-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

const reportContentType = "text/plain; charset=utf-8"

// StorageSource reads tables from objects under a bucket prefix.
type StorageSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageSource creates a source reading bucket/prefix/<file>.
func NewStorageSource(client storage.Client, bucket, prefix string) *StorageSource {
	return &StorageSource{client: client, bucket: bucket, prefix: prefix}
}

// Name implements Source.
func (s *StorageSource) Name() string {
	return "s3://" + storage.ObjectKey(s.bucket, s.prefix)
}

// Rows implements Source.
func (s *StorageSource) Rows(ctx context.Context, t Table) ([][]string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	key := storage.ObjectKey(s.prefix, t.File)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	rows, err := ParseRows(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return rows, nil
}

// StorageSink publishes reports as objects under a bucket prefix.
type StorageSink struct {
	client    storage.Client
	bucket    string
	prefix    string
	protected map[string]struct{}
}

// NewStorageSink creates a sink writing bucket/prefix/<name>.
func NewStorageSink(client storage.Client, bucket, prefix string) *StorageSink {
	return &StorageSink{client: client, bucket: bucket, prefix: prefix}
}

// Protect marks object names Prune must never remove, such as the input
// tables when they share the report prefix.
func (s *StorageSink) Protect(names ...string) *StorageSink {
	if s.protected == nil {
		s.protected = make(map[string]struct{}, len(names))
	}
	for _, name := range names {
		s.protected[name] = struct{}{}
	}
	return s
}

// Name implements Sink.
func (s *StorageSink) Name() string {
	return "s3://" + storage.ObjectKey(s.bucket, s.prefix)
}

// EnsureBucket creates the bucket when it does not exist.
func (s *StorageSink) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Write implements Sink.
func (s *StorageSink) Write(ctx context.Context, name string, lines []string) error {
	if err := checkName(name); err != nil {
		return err
	}
	data := Render(lines)
	key := storage.ObjectKey(s.prefix, name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: reportContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

// Prune removes report objects under the prefix whose names are not in keep,
// e.g. the per-type report of an item type that no longer exists. Protected
// names are never removed. It returns the removed object keys.
func (s *StorageSink) Prune(ctx context.Context, keep []string) ([]string, error) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		keepSet[storage.ObjectKey(s.prefix, name)] = struct{}{}
	}

	listPrefix := ""
	if s.prefix != "" {
		listPrefix = storage.ObjectKey(s.prefix, "")
	}
	opts := minio.ListObjectsOptions{Prefix: listPrefix, Recursive: false}

	var stale []string
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", listPrefix, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".txt") {
			continue
		}
		if _, ok := s.protected[path.Base(obj.Key)]; ok {
			continue
		}
		if _, ok := keepSet[obj.Key]; !ok {
			stale = append(stale, obj.Key)
		}
	}

	removed := make([]string, 0, len(stale))
	for _, key := range stale {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", key, err)
		}
		removed = append(removed, key)
	}
	return removed, nil
}
