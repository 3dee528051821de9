// Package auth supplies outbound credentials for the REST catalog store.
//
// A TokenSource yields bearer tokens: StaticToken for a fixed key and
// ServiceTokenSource for short-lived HS256 service tokens signed with a
// shared secret. Transport attaches them, together with the project API key,
// to every outgoing request.
package auth
