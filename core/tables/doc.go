// Package tables reads the comma-delimited input tables and writes the
// line-oriented report files.
//
// # Sources
//
// A Source returns the rows of one logical table, each row already split on
// commas with every field trimmed:
//   - FileSource reads ManufacturerList.txt and friends from a directory.
//   - StorageSource reads the same objects from a MinIO/S3 bucket.
//   - DatabaseSource selects the columns of a SQL table through GORM.
//
// # Sinks
//
// A Sink stores one named report. DirSink writes files, StorageSink publishes
// objects, MultiSink fans a write out to several sinks.
package tables
