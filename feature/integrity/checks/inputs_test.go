package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"inventory-manager/core/database"
	"inventory-manager/core/storage/mocks"
	"inventory-manager/core/tables"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var files = []string{tables.ManufacturerListFile, tables.PriceListFile, tables.ServiceDatesListFile}

func TestCheckFileInputs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, tables.PriceListFile), []byte("1, 2\n"), 0o644))

	missing, err := CheckFileInputs(dir, files)
	require.NoError(t, err)
	assert.Equal(t, []string{tables.ManufacturerListFile, tables.ServiceDatesListFile}, missing)

	require.NoError(t, os.Mkdir(filepath.Join(dir, tables.ManufacturerListFile), 0o755))
	_, err = CheckFileInputs(dir, files)
	assert.ErrorContains(t, err, "is a directory")
}

func TestCheckStorageInputs(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
	found := make(chan minio.ObjectInfo, 1)
	found <- minio.ObjectInfo{Key: "input/PriceList.txt"}
	close(found)
	empty := make(chan minio.ObjectInfo)
	close(empty)
	mockClient.On("ListObjects", mock.Anything, "inventory", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "input/PriceList.txt"
	})).Return((<-chan minio.ObjectInfo)(found))
	mockClient.On("ListObjects", mock.Anything, "inventory", mock.Anything).Return((<-chan minio.ObjectInfo)(empty))

	missing, err := CheckStorageInputs(context.Background(), mockClient, "inventory", "input", files)
	require.NoError(t, err)
	assert.Equal(t, []string{tables.ManufacturerListFile, tables.ServiceDatesListFile}, missing)
}

func TestCheckStorageInputs_NoBucket(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "inventory").Return(false, nil)

	_, err := CheckStorageInputs(context.Background(), mockClient, "inventory", "input", files)
	assert.ErrorContains(t, err, "does not exist")
}

func TestCheckDatabaseInputs(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE manufacturer_list (id TEXT, manufacturer TEXT, item_type TEXT)").Error)
	require.NoError(t, db.Exec("CREATE TABLE price_list (id TEXT)").Error)

	set := tables.NewSet(tables.Config{}, database.Config{
		ManufacturerTable: "manufacturer_list",
		PriceTable:        "price_list",
		ServiceDateTable:  "service_dates_list",
	})

	missing, err := CheckDatabaseInputs(db, set)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"price_list":         {"price"},
		"service_dates_list": {"id", "service_date"},
	}, missing)
}

func TestUploadInputs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, tables.PriceListFile), []byte("1, 2\n"), 0o644))

	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "inventory", "input/PriceList.txt", mock.Anything, int64(5), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := UploadInputs(context.Background(), mockClient, "inventory", "input", dir, zap.NewNop(), []string{tables.PriceListFile})
	require.NoError(t, err)
	mockClient.AssertExpectations(t)

	err = UploadInputs(context.Background(), mockClient, "inventory", "input", dir, zap.NewNop(), []string{tables.ManufacturerListFile})
	assert.Error(t, err)
}
