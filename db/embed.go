// Package db embeds the database schema applied on startup.
package db

import _ "embed"

// Schema holds the DDL for every table the service owns. It is idempotent
// (CREATE IF NOT EXISTS) and re-applied on every boot.
//
//go:embed migrations/001_schema.sql
var Schema string
