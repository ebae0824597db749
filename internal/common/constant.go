// Package common contains shared constants and sentinel errors used across
// clubhub components.
package common

// Header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"

	BearerPrefix    = "Bearer "
	JSONContentType = "application/json"
)

// Client storage keys. AccessTokenKey and TokenStoredAtKey live in persistent
// storage, LogoutNoticeShownKey in the session store.
const (
	AccessTokenKey       = "accessToken"
	TokenStoredAtKey     = "tokenStoredAt"
	LogoutNoticeShownKey = "logoutAlertShown"
)

// RefreshCookieName is the httpOnly cookie carrying the refresh credential.
// The client never reads it; the cookie jar replays it.
const RefreshCookieName = "refreshToken"
