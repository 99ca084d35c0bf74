// Package common contains shared constants and sentinel errors used across
// the workshop portal components.
package common

// AuthorizationHeaderName carries the bearer access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the JWT in the Authorization header.
const BearerPrefix = "Bearer "
