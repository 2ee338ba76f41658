package checks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"inventory-manager/core/database"
	"inventory-manager/core/storage"
	"inventory-manager/core/tables"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Files returns the file names of the tables in set.
func Files(set tables.Set) []string {
	return []string{set.Manufacturers.File, set.Prices.File, set.ServiceDates.File}
}

// CheckFileInputs returns the files missing from dir.
func CheckFileInputs(dir string, files []string) ([]string, error) {
	var missing []string
	for _, name := range files {
		info, err := os.Stat(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", name)
		}
	}
	return missing, nil
}

// CheckStorageInputs returns the files missing under prefix in bucket.
func CheckStorageInputs(ctx context.Context, client storage.Client, bucket, prefix string, files []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var missing []string
	for _, name := range files {
		key := storage.ObjectKey(prefix, name)
		opts := minio.ListObjectsOptions{
			Prefix:    key,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err == nil && obj.Key == key {
				found = true
			}
			break
		}

		if !found {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// CheckDatabaseInputs returns, per table name, the required columns it lacks.
// Tables that are complete are left out.
func CheckDatabaseInputs(db *gorm.DB, set tables.Set) (map[string][]string, error) {
	result := make(map[string][]string)
	for _, t := range []tables.Table{set.Manufacturers, set.Prices, set.ServiceDates} {
		missing, err := database.MissingColumns(db, t.DBTable, t.Kind.Required())
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			result[t.DBTable] = missing
		}
	}
	return result, nil
}

// UploadInputs copies the named files from dir to bucket/prefix.
func UploadInputs(ctx context.Context, client storage.Client, bucket, prefix, dir string, logger *zap.Logger, files []string) error {
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		key := storage.ObjectKey(prefix, name)
		_, err = client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "text/plain; charset=utf-8",
		})
		if err != nil {
			logger.Error("Failed to upload input table", zap.String("key", key), zap.Error(err))
			return err
		}
		logger.Info("Uploaded input table", zap.String("key", key))
	}
	return nil
}
