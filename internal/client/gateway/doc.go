// Package gateway is the only way the ozo CLI talks to the identity API.
//
// A Client is built once from the configured base URL. Every request it
// sends goes through an http.RoundTripper that sets JSON headers and a
// fresh X-Request-ID, and attaches "Authorization: Bearer <token>" when the
// credential store holds a token. Login and signup are sent without it.
//
// Failures come back as errors, never swallowed:
//
//   - *APIError for any non-2xx response; errors.Is(err, ErrUnauthorized)
//     holds for 401 and errors.Is(err, ErrNotFound) for 404,
//   - ErrUnavailable when the server could not be reached,
//   - ErrMalformedResponse when a 2xx body cannot be decoded.
//
// When a request that carried a bearer token is rejected with 401 the
// stored token is cleared before the error is returned. The gateway does
// not navigate anywhere; the next guarded view sees an anonymous session.
package gateway
