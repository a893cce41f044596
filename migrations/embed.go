// migrations/embed.go

// Package migrations embeds the schema migrations so binaries can migrate
// without the SQL files on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
