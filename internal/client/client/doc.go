// Package client talks to the alumni network HTTP API.
//
// The Client interface is the contract the session manager and the services
// depend on; HTTPClient is its JSON-over-HTTP implementation. The bearer
// token is not stored on the client itself: every request reads it from a
// shared *Credential, which the session manager sets and clears.
//
// # Error Handling
//
// Failures are reported as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrValidation, ErrNotFound. When the API
// answered with an error body, the returned error is an *APIError carrying
// the HTTP status and the server's message, and it unwraps to the sentinel.
package client
