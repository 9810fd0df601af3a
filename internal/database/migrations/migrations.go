// Package migrations embeds the SQL schema files so the binary can migrate
// the database on start without shipping files alongside it.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
