// Package migrations embeds the SQL schema migrations for the statistics database.
package migrations

import "embed"

// FS exposes the embedded migration files to the migrate source driver.
//
//go:embed *.sql
var FS embed.FS
