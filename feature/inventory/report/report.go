// Package report projects a frozen inventory store into the flat-file reports.
//
// Every generator reads the store without mutating it and returns the lines of
// one output file. Fields are separated by ", " and absent values render "N/A".
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"inventory-manager/feature/inventory/models"
	"inventory-manager/feature/inventory/sorters"
)

// Fixed report file names.
const (
	FullInventoryName        = "FullInventory.txt"
	PastServiceInventoryName = "PastServiceDateInventory.txt"
	DamagedInventoryName     = "DamagedInventory.txt"
	typeInventorySuffix      = "Inventory.txt"
)

// Kind identifies which generator produced a report.
type Kind string

const (
	KindFull        Kind = "full"
	KindItemType    Kind = "item_type"
	KindPastService Kind = "past_service"
	KindDamaged     Kind = "damaged"
)

// Report is the formatted content of one output file.
type Report struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	ItemType string   `json:"item_type,omitempty"`
	Lines    []string `json:"lines"`
}

// FullInventory lists every record ordered by manufacturer.
func FullInventory(store *models.Store) Report {
	sorted := sorters.ByManufacturer(store.Records())
	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, withDamage(join(r.ID, r.Manufacturer, r.ItemType, r.PriceString(), r.ServiceDateString()), r))
	}
	return Report{Name: FullInventoryName, Kind: KindFull, Lines: lines}
}

// ItemTypeInventories returns one report per distinct item type, in the order
// types are first seen. Records inside a report are ordered by identifier.
func ItemTypeInventories(store *models.Store) ([]Report, error) {
	var order []string
	partitions := make(map[string][]models.Record)
	for _, r := range store.Records() {
		if _, ok := partitions[r.ItemType]; !ok {
			order = append(order, r.ItemType)
		}
		partitions[r.ItemType] = append(partitions[r.ItemType], r)
	}

	owners := make(map[string]string, len(order))
	reports := make([]Report, 0, len(order))
	for _, itemType := range order {
		if !safeFileName(itemType) {
			return nil, fmt.Errorf("item type %q cannot be used in a report file name", itemType)
		}
		name := TypeFileName(itemType)
		if other, taken := owners[name]; taken {
			return nil, fmt.Errorf("item types %q and %q both map to %s", other, itemType, name)
		}
		owners[name] = itemType

		sorted := sorters.ByID(partitions[itemType])
		lines := make([]string, 0, len(sorted))
		for _, r := range sorted {
			lines = append(lines, withDamage(join(r.ID, r.Manufacturer, r.PriceString(), r.ServiceDateString()), r))
		}
		reports = append(reports, Report{Name: name, Kind: KindItemType, ItemType: itemType, Lines: lines})
	}
	return reports, nil
}

// PastServiceInventory lists records whose service date is strictly before
// now, oldest first. Records without a date are left out.
func PastServiceInventory(store *models.Store, now time.Time) Report {
	var past []models.Record
	for _, r := range store.Records() {
		if r.HasServiceDate() && r.ServiceDate.Before(now) {
			past = append(past, r)
		}
	}

	sorted := sorters.ByServiceDate(past)
	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, join(r.ID, r.Manufacturer, r.ItemType, r.PriceString(), r.ServiceDateString()))
	}
	return Report{Name: PastServiceInventoryName, Kind: KindPastService, Lines: lines}
}

// DamagedInventory lists damaged records, most expensive first.
func DamagedInventory(store *models.Store) Report {
	var damaged []models.Record
	for _, r := range store.Records() {
		if r.IsDamaged() {
			damaged = append(damaged, r)
		}
	}

	sorted := sorters.ByPriceDesc(damaged)
	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, join(r.ID, r.Manufacturer, r.ItemType, r.PriceString(), r.ServiceDateString()))
	}
	return Report{Name: DamagedInventoryName, Kind: KindDamaged, Lines: lines}
}

// Generate runs every generator: full, per-type, past service, damaged.
func Generate(store *models.Store, now time.Time) ([]Report, error) {
	byType, err := ItemTypeInventories(store)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(byType)+3)
	reports = append(reports, FullInventory(store))
	reports = append(reports, byType...)
	reports = append(reports, PastServiceInventory(store, now), DamagedInventory(store))
	return reports, nil
}

// TypeFileName derives the per-type file name: first letter upper case, the
// rest lower case, followed by "Inventory.txt".
func TypeFileName(itemType string) string {
	return capitalize(itemType) + typeInventorySuffix
}

// safeFileName reports whether s stays a single path element once used as a
// file or object name.
func safeFileName(s string) bool {
	return !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

func join(fields ...string) string {
	return strings.Join(fields, ", ")
}

func withDamage(line string, r models.Record) string {
	if !r.IsDamaged() {
		return line
	}
	return line + ", " + r.Damaged
}
