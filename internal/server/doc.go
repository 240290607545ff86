// Package server exposes the scanning pipeline over HTTP.
//
// The API lives under /api/v1 and mirrors the CLI operations: scan,
// clean, detect, and compare, plus a health endpoint and read-only
// access to the experiment results artifact. Responses use the same
// JSON shapes as the report package, so API consumers and CLI JSON
// output see identical structures.
//
// Design decision: We use chi for routing because it stays close to
// net/http (handlers are plain http.HandlerFunc) while providing
// subrouters and middleware chaining. The server holds no mutable
// state; all request handling is safe for concurrent use.
package server
