package moneymigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the money module's schema history. It depends on the round tables.
var Migrations = migrate.NewMigrations()
