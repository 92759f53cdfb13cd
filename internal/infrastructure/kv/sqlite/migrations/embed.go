// Package migrations embeds the schema of the SQLite key-value store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
