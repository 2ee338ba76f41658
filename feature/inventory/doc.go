// Package inventory serves the merged inventory over HTTP and the CLI.
//
// The Service loads the three input tables from a tables.Source, merges them
// into a frozen store and keeps the result as the current Snapshot. Reports
// and queries always read one complete snapshot; a reload builds a new one
// off to the side and swaps it in.
//
// # Routes
//
//	GET  /inventory/items
//	GET  /inventory/items/:id
//	GET  /inventory/reports
//	GET  /inventory/reports/:name
//	GET  /inventory/query?q=
//	POST /inventory/reload
package inventory
