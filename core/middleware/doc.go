// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting the inventory routes.
//   - rayid: a unique request id (RayID) for every request, stored in the
//     context and echoed in the X-Ray-ID response header for tracing.
package middleware
