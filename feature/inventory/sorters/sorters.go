// Package sorters provides the stable orderings used by every inventory report.
//
// Each function returns a new slice and leaves its input untouched. Records
// that compare equal keep their input order.
package sorters

import (
	"sort"

	"inventory-manager/feature/inventory/models"
)

// ByManufacturer orders records by manufacturer name, ascending.
func ByManufacturer(records []models.Record) []models.Record {
	return stable(records, func(a, b models.Record) bool {
		return a.Manufacturer < b.Manufacturer
	})
}

// ByID orders records by item identifier, ascending.
func ByID(records []models.Record) []models.Record {
	return stable(records, func(a, b models.Record) bool {
		return a.ID < b.ID
	})
}

// ByServiceDate orders records oldest service date first.
// Every record must have a service date; callers filter first.
func ByServiceDate(records []models.Record) []models.Record {
	return stable(records, func(a, b models.Record) bool {
		return a.ServiceDate.Before(*b.ServiceDate)
	})
}

// ByPriceDesc orders records by price, highest first. A missing price
// compares as 0 without changing the record.
func ByPriceDesc(records []models.Record) []models.Record {
	return stable(records, func(a, b models.Record) bool {
		return a.PriceOrZero() > b.PriceOrZero()
	})
}

func stable(records []models.Record, less func(a, b models.Record) bool) []models.Record {
	out := make([]models.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}
