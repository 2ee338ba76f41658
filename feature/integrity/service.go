package integrity

import (
	"context"
	"errors"
	"fmt"

	"inventory-manager/core/storage"
	"inventory-manager/core/tables"
	"inventory-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFixable is returned by Fix for sources it cannot repair.
var ErrNotFixable = errors.New("only the storage source can be fixed")

// Report is the outcome of one check.
type Report struct {
	Source         string              `json:"source"`
	OK             bool                `json:"ok"`
	Missing        []string            `json:"missing,omitempty"`
	MissingColumns map[string][]string `json:"missing_columns,omitempty"`
}

// Service checks the configured table source.
type Service struct {
	cfg    tables.Config
	set    tables.Set
	client storage.Client
	bucket string
	prefix string
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil when
// the configured source does not use them.
func NewService(cfg tables.Config, set tables.Set, client storage.Client, storageCfg storage.Config, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		cfg:    cfg,
		set:    set,
		client: client,
		bucket: storageCfg.Bucket,
		prefix: storageCfg.InputPrefix,
		db:     db,
		logger: logger,
	}
}

// Check inspects the configured source.
func (s *Service) Check(ctx context.Context) (*Report, error) {
	report := &Report{Source: s.cfg.Source}
	files := checks.Files(s.set)

	switch s.cfg.Source {
	case tables.SourceStorage:
		if s.client == nil {
			return nil, fmt.Errorf("storage client not configured")
		}
		missing, err := checks.CheckStorageInputs(ctx, s.client, s.bucket, s.prefix, files)
		if err != nil {
			return nil, err
		}
		report.Missing = missing
	case tables.SourceDatabase:
		if s.db == nil {
			return nil, fmt.Errorf("database not configured")
		}
		columns, err := checks.CheckDatabaseInputs(s.db.WithContext(ctx), s.set)
		if err != nil {
			return nil, err
		}
		report.MissingColumns = columns
	default:
		missing, err := checks.CheckFileInputs(s.cfg.SourceDir, files)
		if err != nil {
			return nil, err
		}
		report.Missing = missing
	}

	report.OK = len(report.Missing) == 0 && len(report.MissingColumns) == 0
	return report, nil
}

// Fix uploads the tables the report found missing from the local source
// directory to object storage.
func (s *Service) Fix(ctx context.Context, report *Report) error {
	if s.cfg.Source != tables.SourceStorage || s.client == nil {
		return ErrNotFixable
	}
	return checks.UploadInputs(ctx, s.client, s.bucket, s.prefix, s.cfg.SourceDir, s.logger, report.Missing)
}
