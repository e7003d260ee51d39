// Package session implements the client's session store: the single source
// of truth for who is logged in.
//
// # Overview
//
// The Store holds the current session in memory, mirrors its durable subset
// (user, token, authenticated flag) into the local key-value store, and
// mediates every session-changing operation: Initialize (hydration from
// storage), Login, Register, Logout, RefreshUser, ClearError. UI code reads
// state through Snapshot and reacts to changes through Subscribe.
//
// # Invariants
//
//   - A session is authenticated exactly when both user and token are
//     present. State where only one is present is treated as corrupt and
//     discarded.
//   - IsLoading is true only while a login/register/refresh call is in
//     flight, and is always cleared when the call settles, on success and
//     failure alike.
//   - A failed re-login attempt never clears an existing valid session.
//
// # Failure semantics
//
// Local precondition failures (ValidationError) never reach the network.
// Request failures are captured and surfaced as the session's LastError plus
// a Result value; they are never panics and never escape as raised errors to
// UI consumers. Persistence failures are logged and swallowed: losing the
// mirror only costs a re-login on the next start.
//
// Forced invalidation — the server rejecting the token on any authenticated
// request — arrives on the session event bus and resets the store the same
// way Logout does. Handling is idempotent.
package session
