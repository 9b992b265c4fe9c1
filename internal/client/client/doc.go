// Package client is the HTTP client of the AY-Code API used by the CLI.
//
// # Overview
//
// HTTPClient wraps net/http with JSON encoding, presents a stored session
// token as a bearer credential and maps error responses to sentinel errors
// that callers match with errors.Is:
//
//   - ErrUnauthorized: missing, invalid or expired session, or bad credentials
//   - ErrForbidden: the caller's role does not allow the operation
//   - ErrNotFound, ErrConflict, ErrBadRequest
//   - ErrUnavailable: the server could not be reached
//
// Every other failure is an *APIError carrying status, message and the
// server's correlation id.
package client
