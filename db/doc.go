// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Two dialects are supported, selected by cliparse.Config.DatabaseType:

  - sqlite (default): modernc.org/sqlite, pure Go, single connection
  - postgres: github.com/lib/pq

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Queries are written with "?" placeholders; call conn.Rebind(query) before
executing them so postgres receives "$1, $2, ...".

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Partitions

The tables are split so that no record can link an elector to a ballot:

	identity:   electeurs, administrateurs
	gate:       eligibilites (electeur_id, vote_id), no jeton, no timestamp
	registry:   votes 1──* options
	anonymous:  jetons, bulletins, decomptes 1──* resultats

Nothing in the anonymous partition references electeurs. In sqlite the gate
and the jeton/bulletin tables are WITHOUT ROWID, so insertion order can't be
recovered from an implicit rowid.

# Constraint Errors

IsUniqueViolation recognizes unique/primary key violations from both
drivers (SQLSTATE 23505 for postgres, SQLITE_CONSTRAINT_UNIQUE and
SQLITE_CONSTRAINT_PRIMARYKEY for sqlite).
*/
package db
