// Package common contains shared constants and sentinel errors used across
// AY-Code server and client components.
package common

// SessionCookieName is the cookie that carries the session token. The same
// name is used when the token is presented as a bearer credential.
const SessionCookieName = "token"

// CorrelationIDHeaderName is echoed on every response so a client report can
// be matched against server logs.
const CorrelationIDHeaderName = "X-Correlation-ID"
