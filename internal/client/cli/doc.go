// Package cli provides the interactive AutoTrader terminal client.
//
// It wires configuration, the local state database, the REST API client, the
// session store, and an interactive REPL. Typical flow: hydrate the session
// from local storage, then execute user commands until exit.
//
// Commands:
//   - register / login / logout — account and session management
//   - whoami / refresh          — inspect and re-fetch the current user
//   - status / dashboard        — trading bot activity and results
//   - transactions / logs       — trading journal and activity log
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
