// Package migrations embeds the server's SQL schema migrations so goose can
// run them without shipping files alongside the binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
