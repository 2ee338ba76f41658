// Package matcher answers free-text "manufacturer + item type" queries against
// a frozen inventory store.
//
// A query resolves to exactly one known manufacturer and one known item type.
// The best match is the most expensive eligible item of that manufacturer and
// type; the alternative is the eligible item of the same type, from any other
// identifier, whose price is closest to the best match. Eligible means not
// damaged, priced, and with a service date strictly after now.
package matcher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-manager/feature/inventory/models"
)

// NoSuchItemMessage is shown for every failed query.
const NoSuchItemMessage = "No such item in inventory"

var (
	// ErrUnknownItem means the query named no known manufacturer or no known item type.
	ErrUnknownItem = errors.New("query names no known manufacturer or item type")
	// ErrAmbiguousQuery means the query named more than one manufacturer or item type.
	ErrAmbiguousQuery = errors.New("query names more than one manufacturer or item type")
	// ErrNoEligibleItem means nothing in stock satisfies a well-formed query.
	ErrNoEligibleItem = errors.New("no eligible item for query")
)

// Query is a parsed request. Both fields are lower case.
type Query struct {
	Manufacturer string `json:"manufacturer"`
	ItemType     string `json:"item_type"`
}

// Result holds the best match and the optional alternative.
type Result struct {
	Query       Query          `json:"query"`
	Best        models.Record  `json:"best"`
	Alternative *models.Record `json:"alternative,omitempty"`
}

// Lines renders the result the way the prompt prints it.
func (r Result) Lines() []string {
	lines := []string{"Your item is: " + describe(r.Best)}
	if r.Alternative != nil {
		lines = append(lines, "You may, also, consider: "+describe(*r.Alternative))
	}
	return lines
}

func describe(r models.Record) string {
	return fmt.Sprintf("%s, %s, %s, %s", r.ID, r.Manufacturer, r.ItemType, r.PriceString())
}

// ParseQuery lowercases and tokenizes text on whitespace and checks every
// token against the distinct manufacturers and item types in store.
func ParseQuery(text string, store *models.Store) (Query, error) {
	manufacturers := toSet(store.Manufacturers())
	itemTypes := toSet(store.ItemTypes())

	var foundManufacturers, foundTypes []string
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if _, ok := manufacturers[token]; ok && !contains(foundManufacturers, token) {
			foundManufacturers = append(foundManufacturers, token)
		}
		if _, ok := itemTypes[token]; ok && !contains(foundTypes, token) {
			foundTypes = append(foundTypes, token)
		}
	}

	switch {
	case len(foundManufacturers) > 1 || len(foundTypes) > 1:
		return Query{}, ErrAmbiguousQuery
	case len(foundManufacturers) == 0 || len(foundTypes) == 0:
		return Query{}, ErrUnknownItem
	}
	return Query{Manufacturer: foundManufacturers[0], ItemType: foundTypes[0]}, nil
}

// FindBestMatch returns the highest priced eligible record of the given
// manufacturer and type. The first record seen wins a tie.
func FindBestMatch(manufacturer, itemType string, store *models.Store, now time.Time) (models.Record, bool) {
	var best models.Record
	found := false
	for _, r := range store.Records() {
		if !strings.EqualFold(r.Manufacturer, manufacturer) || !strings.EqualFold(r.ItemType, itemType) {
			continue
		}
		if !Eligible(r, now) {
			continue
		}
		if !found || *r.Price > *best.Price {
			best = r
			found = true
		}
	}
	return best, found
}

// FindClosestAlternative returns the eligible record of the given type, other
// than excludeID and from any manufacturer, whose price is nearest to
// referencePrice. The first record seen wins a tie.
func FindClosestAlternative(excludeID, itemType string, referencePrice int, store *models.Store, now time.Time) (models.Record, bool) {
	var closest models.Record
	minDiff := 0
	found := false
	for _, r := range store.Records() {
		if r.ID == excludeID || !strings.EqualFold(r.ItemType, itemType) {
			continue
		}
		if !Eligible(r, now) {
			continue
		}
		diff := abs(*r.Price - referencePrice)
		if !found || diff < minDiff {
			closest = r
			minDiff = diff
			found = true
		}
	}
	return closest, found
}

// Eligible reports whether r can be offered: not damaged, priced, and with a
// service date strictly after now.
func Eligible(r models.Record, now time.Time) bool {
	return !r.IsDamaged() && r.HasPrice() && r.HasServiceDate() && r.ServiceDate.After(now)
}

// Process parses text and runs both searches.
func Process(text string, store *models.Store, now time.Time) (Result, error) {
	q, err := ParseQuery(text, store)
	if err != nil {
		return Result{}, err
	}

	best, ok := FindBestMatch(q.Manufacturer, q.ItemType, store, now)
	if !ok {
		return Result{Query: q}, ErrNoEligibleItem
	}

	res := Result{Query: q, Best: best}
	if alt, ok := FindClosestAlternative(best.ID, q.ItemType, *best.Price, store, now); ok {
		res.Alternative = &alt
	}
	return res, nil
}

// IsNoSuchItem reports whether err is one of the user-facing query failures.
func IsNoSuchItem(err error) bool {
	return errors.Is(err, ErrUnknownItem) || errors.Is(err, ErrAmbiguousQuery) || errors.Is(err, ErrNoEligibleItem)
}

// Outcome labels a query result for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "match"
	case errors.Is(err, ErrUnknownItem):
		return "unknown"
	case errors.Is(err, ErrAmbiguousQuery):
		return "ambiguous"
	case errors.Is(err, ErrNoEligibleItem):
		return "no_eligible"
	default:
		return "error"
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
