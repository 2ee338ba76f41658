// Package merge joins the manufacturer, price and service date tables into a
// single frozen inventory store.
//
// The manufacturer table creates records. The price and service date tables
// only augment identifiers that already exist; their rows for unknown
// identifiers are counted and dropped.
package merge

import (
	"strconv"
	"strings"
	"time"

	"inventory-manager/feature/inventory/models"
)

// Stats describes one merge run.
type Stats struct {
	Records             int `json:"records"`
	PricesApplied       int `json:"prices_applied"`
	PricesDropped       int `json:"prices_dropped"`
	ServiceDatesApplied int `json:"service_dates_applied"`
	ServiceDatesDropped int `json:"service_dates_dropped"`
}

// Merge builds a frozen store from the three tables. Rows are already split
// into fields. Price and date values are parsed before the identifier lookup,
// so a malformed value is fatal even on a row that would be dropped.
func Merge(manufacturerRows, priceRows, serviceDateRows [][]string) (*models.Store, Stats, error) {
	var stats Stats
	store := models.NewStore()

	for i, row := range manufacturerRows {
		if len(row) < 3 {
			return nil, stats, &RowError{Table: TableManufacturers, Row: i + 1, Want: 3, Got: len(row)}
		}
		rec := models.Record{
			ID:           field(row, 0),
			Manufacturer: field(row, 1),
			ItemType:     field(row, 2),
			Damaged:      field(row, 3),
		}
		if err := store.Put(rec); err != nil {
			return nil, stats, err
		}
	}

	for i, row := range priceRows {
		if len(row) < 1 {
			return nil, stats, &RowError{Table: TablePrices, Row: i + 1, Want: 2, Got: len(row)}
		}
		raw := field(row, 1)
		price, err := strconv.Atoi(raw)
		if err != nil {
			return nil, stats, &ParseError{Table: TablePrices, Row: i + 1, Field: "price", Value: raw, Err: err}
		}
		ok, err := store.Update(field(row, 0), func(r *models.Record) {
			r.Price = models.IntPtr(price)
		})
		if err != nil {
			return nil, stats, err
		}
		if ok {
			stats.PricesApplied++
		} else {
			stats.PricesDropped++
		}
	}

	for i, row := range serviceDateRows {
		if len(row) < 1 {
			return nil, stats, &RowError{Table: TableServiceDates, Row: i + 1, Want: 2, Got: len(row)}
		}
		date, err := ParseDate(field(row, 1))
		if err != nil {
			return nil, stats, &ParseError{Table: TableServiceDates, Row: i + 1, Field: "service date", Value: field(row, 1), Err: err}
		}
		ok, err := store.Update(field(row, 0), func(r *models.Record) {
			r.ServiceDate = date
		})
		if err != nil {
			return nil, stats, err
		}
		if ok {
			stats.ServiceDatesApplied++
		} else {
			stats.ServiceDatesDropped++
		}
	}

	store.Freeze()
	stats.Records = store.Len()
	return store, stats, nil
}

// inputDateLayout accepts one- or two-digit month and day.
const inputDateLayout = "1/2/2006"

// ParseDate parses MM/DD/YYYY in local time. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(inputDateLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// field returns the trimmed field at i, or "" when the row is shorter.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
