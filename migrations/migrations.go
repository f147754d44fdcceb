// Package migrations embeds the SQL schema migrations consumed by the
// db:migrate command through golang-migrate's iofs source.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
