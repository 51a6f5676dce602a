// Package api is the client side of the recipe service REST contract.
//
// # Overview
//
// Client describes every endpoint the stores consume. HTTPClient implements
// it over net/http: JSON bodies for most calls, multipart for profile and
// recipe uploads. The session credential travels as the session_id cookie and
// is read from a CredentialSource on every request. Each request carries a
// fresh X-Request-ID header.
//
// # Error Handling
//
// Responses are mapped to sentinels callers match with errors.Is:
// ErrUnavailable (transport failure or 5xx), ErrUnauthorized (401/403),
// ErrNotFound (404), ErrConflict (409) and ErrBadRequest (other 4xx).
// Status errors are *StatusError and carry the server's {"error": "..."}
// message.
package api
