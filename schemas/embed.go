// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the golang-migrate up/down files, applied in version order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
