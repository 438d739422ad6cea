// Package db holds the SQL schema applied at startup.
package db

import "embed"

// MigrationsDir is the directory of Migrations containing goose files.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS
