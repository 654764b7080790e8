// Package cli provides the interactive OZO command-line client.
//
// It wires configuration, the credential store, the API gateway, the
// session controller and the route guard into a REPL. Every view is opened
// through the guard, so protected views (dashboard, profile, items) send
// anonymous users to the login prompt instead.
//
// The REPL is started via App.Run(ctx), which restores a stored session,
// starts a background connectivity watcher and blocks until the user
// exits.
package cli
