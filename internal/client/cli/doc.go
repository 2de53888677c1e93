// Package cli provides the interactive gophsocial command-line client.
//
// It wires configuration, the REST API client and an interactive REPL.
// A background watcher pings the server and flips the prompt between
// online and offline.
//
// Key features:
//   - Register / Login / Logout
//   - WhoAmI for the logged-in account
//   - Show a user profile with its followers
//   - Follow / Unfollow another user
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
