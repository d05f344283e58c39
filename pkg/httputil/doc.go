// Package httputil provides the shared HTTP plumbing for remote
// diagram sources: a client with default headers and status mapping,
// and retry with exponential backoff for transient failures.
//
// [Client] wraps net/http with JSON and text GET helpers. Responses
// map to errors uniformly: 404 becomes [ErrNotFound], 5xx becomes a
// [RetryableError] wrapping [ErrNetwork], and other non-200 statuses
// fail without retry.
//
// [Retry] re-runs an operation only when its error is wrapped in
// [RetryableError], doubling the delay after each failed attempt and
// honoring context cancellation between attempts.
package httputil
