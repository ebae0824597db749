// Package gateway is the authenticated request gateway of the clubhub client.
//
// # Overview
//
// Every call to the backend goes through (*Gateway).Do, which:
//  1. builds the URL from the configured base URL and the endpoint path;
//  2. injects "Content-Type: application/json" for JSON bodies (not for
//     multipart bodies flagged with Request.IsFormData);
//  3. attaches "Authorization: Bearer <token>" when a fresh access token is
//     stored;
//  4. on 401 from any endpoint other than the refresh endpoint, refreshes the
//     token once and re-issues the request with the new token;
//  5. normalises the body into a Response, or fails with *APIError.
//
// # Refresh coordination
//
// Refreshes are single-flight: concurrent callers that hit 401 share one
// refresh network call and all retry with its result. A caller whose 401
// arrives after another caller already refreshed reuses the new token without
// a network call.
//
// # Session expiry
//
// When the refresh itself fails the stored token is purged, the
// session-expired notice is shown through the Notifier (once per session),
// the Navigator is asked to go to the login entry point, and the call fails
// with ErrSessionExpired. Callers that started before the expiry fail with
// ErrSessionExpired as well, without a second redirect.
//
// # Errors
//
//   - *APIError with Status 0: transport failure (no response).
//   - *APIError with Status N: non-2xx response; Message comes from the
//     response envelope or the fixed status mapping (see StatusMessage).
//   - ErrSessionExpired: authentication could not be recovered.
//
// The gateway is safe for concurrent use.
package gateway
