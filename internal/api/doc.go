// Package api provides HTTP handlers for the API. Handlers decode and
// validate requests, delegate to the application services, and translate
// service errors into sanitized JSON error responses.
package api
