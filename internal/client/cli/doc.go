// Package cli provides the interactive recipes command-line client.
//
// It wires configuration, the local sqlite state, the HTTP API client and the
// session, profile and catalog stores behind a small REPL. The REPL plays the
// part of the presentation layer: it renders store state after each command
// and follows the navigation requests the stores make.
//
// Key features:
//   - Sign up / Sign in / Logout, integration token
//   - View and edit profiles, subscribe, change password
//   - Search, browse and page through recipes
//   - Create, update, delete, like recipes with photos from disk or S3
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
