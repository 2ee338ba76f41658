package integrity

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"inventory-manager/core/database"
	"inventory-manager/core/storage"
	"inventory-manager/core/storage/mocks"
	"inventory-manager/core/tables"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func inventoryConfig(source, dir string) tables.Config {
	return tables.Config{
		Source:           source,
		SourceDir:        dir,
		ManufacturerFile: tables.ManufacturerListFile,
		PriceFile:        tables.PriceListFile,
		ServiceDatesFile: tables.ServiceDatesListFile,
	}
}

var dbConfig = database.Config{
	ManufacturerTable: "manufacturer_list",
	PriceTable:        "price_list",
	ServiceDateTable:  "service_dates_list",
}

var storageConfig = storage.Config{Bucket: "test-bucket", InputPrefix: "input"}

func TestService_CheckFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := inventoryConfig(tables.SourceFile, dir)
	svc := NewService(cfg, tables.NewSet(cfg, dbConfig), nil, storageConfig, nil, zap.NewNop())

	report, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Len(t, report.Missing, 3)

	for _, name := range []string{tables.ManufacturerListFile, tables.PriceListFile, tables.ServiceDatesListFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	report, err = svc.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK)

	assert.ErrorIs(t, svc.Fix(context.Background(), report), ErrNotFixable)
}

func TestService_CheckAndFixStorage(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{tables.ManufacturerListFile, tables.PriceListFile, tables.ServiceDatesListFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644))
	}

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	ch := make(chan minio.ObjectInfo)
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(2), mock.Anything).Return(minio.UploadInfo{}, nil)

	cfg := inventoryConfig(tables.SourceStorage, dir)
	svc := NewService(cfg, tables.NewSet(cfg, dbConfig), mockClient, storageConfig, nil, zap.NewNop())

	report, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Len(t, report.Missing, 3)

	require.NoError(t, svc.Fix(context.Background(), report))
	mockClient.AssertNumberOfCalls(t, "PutObject", 3)
}

func TestService_CheckDatabase(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	columns := []string{"Field", "Type", "Null", "Key", "Default", "Extra"}
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `manufacturer_list`").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("id", "varchar(32)", "NO", "PRI", nil, "").
			AddRow("manufacturer", "varchar(64)", "NO", "", nil, "").
			AddRow("item_type", "varchar(64)", "NO", "", nil, ""))
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `price_list`").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("id", "varchar(32)", "NO", "PRI", nil, "").
			AddRow("price", "int", "YES", "", nil, ""))
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `service_dates_list`").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("id", "varchar(32)", "NO", "PRI", nil, ""))

	cfg := inventoryConfig(tables.SourceDatabase, "")
	svc := NewService(cfg, tables.NewSet(cfg, dbConfig), nil, storageConfig, db, zap.NewNop())

	report, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Equal(t, map[string][]string{"service_dates_list": {"service_date"}}, report.MissingColumns)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestHandleIntegrityCheck(t *testing.T) {
	cfg := inventoryConfig(tables.SourceFile, t.TempDir())
	svc := NewService(cfg, tables.NewSet(cfg, dbConfig), nil, storageConfig, nil, zap.NewNop())

	feature := NewFeature(svc)
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandleIntegrityCheck_Error(t *testing.T) {
	cfg := inventoryConfig(tables.SourceStorage, "")
	svc := NewService(cfg, tables.NewSet(cfg, dbConfig), nil, storageConfig, nil, zap.NewNop())

	app := fiber.New()
	require.NoError(t, NewFeature(svc).Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
