package tables

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventory-manager/core/database"
	"inventory-manager/core/utils"

	"gorm.io/gorm"
)

// dateLayout renders DATE/DATETIME columns the way the flat files spell them.
const dateLayout = "01/02/2006"

// DatabaseSource reads tables from SQL through GORM. Rows are ordered by id
// so repeated loads produce the same store.
type DatabaseSource struct {
	db *gorm.DB
}

// NewDatabaseSource creates a source over db.
func NewDatabaseSource(db *gorm.DB) *DatabaseSource {
	return &DatabaseSource{db: db}
}

// Name implements Source.
func (s *DatabaseSource) Name() string {
	return "database:" + s.db.Dialector.Name()
}

// Rows implements Source. The table must carry the required columns of its kind.
func (s *DatabaseSource) Rows(ctx context.Context, t Table) ([][]string, error) {
	columns, err := s.selectColumns(t)
	if err != nil {
		return nil, err
	}

	sqlRows, err := s.db.WithContext(ctx).Table(t.DBTable).Select(columns).Order("id").Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.DBTable, err)
	}
	defer sqlRows.Close()

	var rows [][]string
	for sqlRows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := sqlRows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.DBTable, err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cell(v)
		}
		rows = append(rows, row)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.DBTable, err)
	}
	return rows, nil
}

// selectColumns returns the columns to select, dropping optional ones the
// table does not have.
func (s *DatabaseSource) selectColumns(t Table) ([]string, error) {
	missing, err := database.MissingColumns(s.db, t.DBTable, t.Kind.Columns())
	if err != nil {
		return nil, err
	}
	missingSet := make(map[string]struct{}, len(missing))
	for _, name := range missing {
		missingSet[name] = struct{}{}
	}

	var absentRequired []string
	for _, name := range t.Kind.Required() {
		if _, ok := missingSet[name]; ok {
			absentRequired = append(absentRequired, name)
		}
	}
	if len(absentRequired) > 0 {
		return nil, fmt.Errorf("table %s is missing columns: %s", t.DBTable, strings.Join(absentRequired, ", "))
	}

	var columns []string
	for _, name := range t.Kind.Columns() {
		if _, ok := missingSet[name]; !ok {
			columns = append(columns, name)
		}
	}
	return columns, nil
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(dateLayout)
	default:
		return strings.TrimSpace(utils.ToString(val))
	}
}
