package migrations

import "embed"

// SQLite contains the embedded SQLite migrations for match history.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

// Postgres contains the embedded Postgres migrations for match history.
//
//go:embed postgres/*.sql
var Postgres embed.FS
