// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from it: listen port, the
// API key checked by the auth middleware, the bucket listing cache TTL and
// the graceful shutdown bound.
package server
