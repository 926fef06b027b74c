// Package common contains shared constants and sentinel errors used across
// the LMS client packages.
package common

// Session storage keys. They match the browser storage keys used by the web
// front-end so that both clients describe the same session.
const (
	AccessTokenKey = "access_token"
	UserEmailKey   = "user_email"
)

// HTTP header names attached to outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-Id"
)

// DefaultUserLabel is shown when no email is stored for the session.
const DefaultUserLabel = "User"
