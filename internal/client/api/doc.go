// Package api contains the AutoTrader client's view of the backend REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     authentication (Login, Register, Logout, CurrentUser) and the
//     trading-data reads the terminal UI shows (ActivityStatus,
//     DashboardMetrics, Transactions, Logs).
//  2. A concrete REST implementation (see RESTClient) that sends JSON over
//     HTTP, attaches the bearer token to authenticated requests, tags each
//     request with an X-Request-ID, and maps response statuses to sentinel
//     errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrServer,
// ErrInvalidResponse.
//
// An unauthorized response on any request made with a bearer token is also
// published to the session event bus so the session store can invalidate
// itself; unauthorized responses to Login and Register are plain failed
// attempts and are not published.
//
// All operations accept context.Context and honor cancellation/timeouts.
package api
