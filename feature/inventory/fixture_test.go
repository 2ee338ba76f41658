package inventory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"inventory-manager/core/database"
	"inventory-manager/core/tables"
	"inventory-manager/feature/inventory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	manufacturerFixture = `1167234, Apple, phone
2390112, Dell, laptop
9034210, Dell, tower, damaged
7346234, Lenovo, laptop
3001265, Samsung, phone
`
	priceFixture = `2390112, 799
9034210, 345
1167234, 534
7346234, 999
3001265, 1200
9999999, 10
`
	serviceDateFixture = `1167234, 7/1/2030
2390112, 7/2/2020
9034210, 5/27/2030
7346234, 9/1/2030
3001265, 12/1/2030
`
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		tables.ManufacturerListFile: manufacturerFixture,
		tables.PriceListFile:        priceFixture,
		tables.ServiceDatesListFile: serviceDateFixture,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func defaultSet() tables.Set {
	return tables.NewSet(tables.Config{
		ManufacturerFile: tables.ManufacturerListFile,
		PriceFile:        tables.PriceListFile,
		ServiceDatesFile: tables.ServiceDatesListFile,
	}, database.Config{})
}

func newTestService(t *testing.T, opts ...inventory.Option) (*inventory.Service, string) {
	t.Helper()
	dir := writeFixture(t)
	opts = append([]inventory.Option{inventory.WithClock(func() time.Time { return fixedNow })}, opts...)
	return inventory.NewService(tables.NewFileSource(dir), defaultSet(), zap.NewNop(), opts...), dir
}

// gatedSource counts Rows calls and optionally blocks them until released.
type gatedSource struct {
	inner   tables.Source
	calls   atomic.Int32
	release chan struct{}
	fail    atomic.Bool
}

func (s *gatedSource) Name() string { return "gated" }

func (s *gatedSource) Rows(ctx context.Context, t tables.Table) ([][]string, error) {
	s.calls.Add(1)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.fail.Load() {
		return nil, errors.New("source unavailable")
	}
	return s.inner.Rows(ctx, t)
}
