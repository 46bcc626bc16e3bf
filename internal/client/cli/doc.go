// Package cli provides the interactive taskkeeper command-line client.
//
// It wires configuration, the HTTP API client, the local item cache, and an
// interactive REPL. Typical flow: restore a saved session, refresh the item
// list, and execute user commands.
//
// Key features:
//   - Register / Login / Logout with a persisted session
//   - List, add, complete, rename, and remove items
//   - Mutations apply to the local list immediately and roll back if the
//     server rejects them
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
