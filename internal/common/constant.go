// Package common contains shared constants and helpers used across
// the ozo client packages.
package common

const (
	// AuthorizationHeaderName is the HTTP header that carries the bearer
	// credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// TokenStorageKey is the fixed key under which the session token is persisted.
	TokenStorageKey = "token"

	// ContentTypeJSON is the only body encoding spoken to the backend.
	ContentTypeJSON = "application/json"
)
