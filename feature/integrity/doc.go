// Package integrity verifies that the configured source holds the three input
// tables before a build is attempted.
//
// For the file source it looks for the table files in the source directory,
// for object storage it looks for the objects under the input prefix, and for
// the database it checks that each table carries its required columns.
//
// # Fixes
//
// Missing storage objects can be seeded from the local source directory with
// Fix, which uploads the table files the check reported missing.
package integrity
