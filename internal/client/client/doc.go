// Package client is the typed API of the exam platform backend.
//
// # Overview
//
// The package provides:
//  1. The API interface: one method per backend endpoint used by the CLI
//     (authentication, profile, questions, catalog, analytics).
//  2. HTTPClient, an API implementation on top of a transport Requester.
//     Every backend payload is wrapped as {"data": ...}; HTTPClient strips
//     that wrapper and decodes the payload into models types.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite file that holds the encrypted credentials.
//
// # Error Handling
//
// Errors come from the transport layer unchanged, so callers match them
// with errors.Is against transport.ErrSessionExpired, transport.ErrAPI and
// the other kinds. ErrIncompleteResponse reports a 2xx answer that lacks
// fields the client needs.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor its cancellation.
package client
