// Package migrations embeds the sqlite migrations for the local credential
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
