// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: Implements X-API-Key validation to protect endpoints.
//   - rayid: Assigns every request a unique Request ID (RayID), injecting it
//     into the context and the X-Ray-ID response header for tracing.
//
// These middleware components are registered globally in the start command.
package middleware
