// Package session owns the authenticated session of the ozo CLI.
//
// Accessor answers "is someone logged in" straight from the credential
// store on every call. Controller drives login, signup, logout and the
// one-off session restore on start, and exposes its progress as a
// Snapshot the UI can render. Controller is the only writer of the stored
// token apart from the gateway's 401 handler.
package session
