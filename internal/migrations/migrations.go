// Package migrations содержит встроенные SQL-миграции схемы.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
