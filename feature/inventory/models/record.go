package models

import (
	"strconv"
	"time"
)

// DateLayout is the month/day/4-digit-year layout used by inputs and reports.
const DateLayout = "01/02/2006"

// NotAvailable is rendered for an absent price or service date.
const NotAvailable = "N/A"

// Record is a single merged inventory item.
type Record struct {
	ID           string     `json:"id"`
	Manufacturer string     `json:"manufacturer"`
	ItemType     string     `json:"item_type"`
	Damaged      string     `json:"damaged,omitempty"`
	Price        *int       `json:"price,omitempty"`
	ServiceDate  *time.Time `json:"service_date,omitempty"`
}

// IsDamaged reports whether the record carries a damage note.
func (r Record) IsDamaged() bool {
	return r.Damaged != ""
}

// HasPrice reports whether a price entry was merged for the record.
func (r Record) HasPrice() bool {
	return r.Price != nil
}

// HasServiceDate reports whether a non-empty service date was merged.
func (r Record) HasServiceDate() bool {
	return r.ServiceDate != nil
}

// PriceOrZero returns the price, treating absence as 0. Only for ordering.
func (r Record) PriceOrZero() int {
	if r.Price == nil {
		return 0
	}
	return *r.Price
}

// PriceString renders the price or "N/A".
func (r Record) PriceString() string {
	if r.Price == nil {
		return NotAvailable
	}
	return strconv.Itoa(*r.Price)
}

// ServiceDateString renders the service date as MM/DD/YYYY or "N/A".
func (r Record) ServiceDateString() string {
	if r.ServiceDate == nil {
		return NotAvailable
	}
	return r.ServiceDate.Format(DateLayout)
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
