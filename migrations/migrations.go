// Package migrations embeds the SQL schema so both the server boot path and
// the repository integration tests apply the exact same DDL.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
