package tables

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidName is returned by sinks for report names that are not a single
// path element.
var ErrInvalidName = errors.New("invalid report name")

// Kind identifies one of the three input tables.
type Kind string

const (
	KindManufacturers Kind = "manufacturers"
	KindPrices        Kind = "prices"
	KindServiceDates  Kind = "service_dates"
)

// Default file names of the input tables.
const (
	ManufacturerListFile = "ManufacturerList.txt"
	PriceListFile        = "PriceList.txt"
	ServiceDatesListFile = "ServiceDatesList.txt"
)

// Columns returns the field layout of the table.
func (k Kind) Columns() []string {
	switch k {
	case KindManufacturers:
		return []string{"id", "manufacturer", "item_type", "damaged"}
	case KindPrices:
		return []string{"id", "price"}
	case KindServiceDates:
		return []string{"id", "service_date"}
	}
	return nil
}

// Required returns the columns a database table must have. The damaged
// column is optional, matching the optional fourth field of the file format.
func (k Kind) Required() []string {
	if k == KindManufacturers {
		return k.Columns()[:3]
	}
	return k.Columns()
}

// Table locates one logical table in every kind of source.
type Table struct {
	Kind Kind
	// File is the file or object name, e.g. "PriceList.txt".
	File string
	// DBTable is the SQL table name.
	DBTable string
}

// Source loads the rows of a table.
type Source interface {
	// Name describes the source for logs.
	Name() string
	// Rows returns every row of the table in source order.
	Rows(ctx context.Context, t Table) ([][]string, error)
}

// ParseRows splits r into rows. Each non-blank line is one row, split on ","
// with every field trimmed.
func ParseRows(r io.Reader) ([][]string, error) {
	var rows [][]string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rows, nil
}

// Render joins lines with a trailing newline after each.
func Render(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func checkName(name string) error {
	if name == "" || name == "." || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
