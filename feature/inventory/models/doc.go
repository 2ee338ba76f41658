// Package models defines the merged inventory record and the in-memory store
// that holds one record per item identifier.
//
// # Record
//
// A Record joins three partial sources: the manufacturer list (identity,
// manufacturer, item type, damage note), the price list and the service date
// list. Price and ServiceDate are optional and absence is distinct from zero.
//
// # Store
//
// The Store keeps records keyed by identifier and remembers the order in which
// identifiers were first inserted. Every report and query iterates in that
// order, which makes tie-breaking deterministic. A Store is built once and
// frozen; after Freeze any mutation returns ErrFrozen.
package models
