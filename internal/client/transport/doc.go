// Package transport is the session-aware HTTP client used to talk to the
// backend.
//
// Every call goes through an ordered interceptor pipeline (request id,
// credential attachment, logging, caller-supplied interceptors) before it
// is sent. Responses are classified into one of the normalized error kinds
// or returned as the raw body with the HTTP envelope stripped.
//
// A 401 on a request that was not retried yet starts the refresh protocol
// run by Session: the first request to fail becomes the driver and calls
// the refresh endpoint, requests failing while that refresh is in flight
// queue behind it and are released in FIFO order with the outcome. Each
// request is resent at most once.
package transport
