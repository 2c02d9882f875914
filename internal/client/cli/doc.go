// Package cli implements the interactive TripKeeper client: a line-oriented
// REPL over the auth session and the trip API. Command handlers prompt for
// input, call the session or API with a per-request timeout, and print
// user-facing messages mapped from the client error taxonomy.
package cli
