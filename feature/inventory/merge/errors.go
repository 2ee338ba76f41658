package merge

import "fmt"

// Table names used in error reports.
const (
	TableManufacturers = "manufacturers"
	TablePrices        = "prices"
	TableServiceDates  = "service_dates"
)

// ParseError reports a field value that could not be converted.
type ParseError struct {
	Table string
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s row %d: invalid %s %q: %v", e.Table, e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RowError reports a row that lacks required columns.
type RowError struct {
	Table string
	Row   int
	Want  int
	Got   int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: expected at least %d fields, got %d", e.Table, e.Row, e.Want, e.Got)
}
