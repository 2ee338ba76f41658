// Package server holds the HTTP server configuration.
//
// The start command owns the fiber application; this package only defines the
// listen port, the API key, the metrics path and the shutdown bound.
package server
