// Package cli provides the interactive CliniVault command-line client.
//
// It wires configuration, the local credential store, API services, and an
// interactive REPL. Typical flow: prompt for credentials, start a background
// token refresh watcher, and execute user commands.
//
// Key features:
//   - Register / Login (with a per-session "remember me" choice) / Logout
//   - List and create patients; clinical notes are decrypted locally
//   - List appointments and payments
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL, and the services package for details.
package cli
