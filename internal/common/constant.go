// Package common contains shared constants and sentinel errors used across
// alumnet components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// Keys of the client-side persistent credential store.
const (
	TokenKey        = "token"
	PendingEmailKey = "pending_email"
)
