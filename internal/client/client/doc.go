// Package client talks to the LMS REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): login,
//     token verification, logout, category and content CRUD.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that reads the
//     bearer token from a TokenSource on every call, tags each request with an
//     X-Request-Id and maps HTTP statuses to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. Other non-2xx
// responses become *APIError carrying the server's "error" message.
//
// A 401 response additionally fires the OnUnauthorized hook, which the
// application wires to clearing the stored session.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and timeouts.
package client
