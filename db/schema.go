// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/isoloir/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(d *DB) error {
	_, err := d.Exec(schemaFor(d.Dialect))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes every table. Only used by tests and resets.
func DropSchema(d *DB) error {
	_, err := d.Exec(dropSchema)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

func schemaFor(dialect string) string {
	r := strings.NewReplacer(
		"{{serial}}", serialFor(dialect),
		"{{timestamp}}", timestampFor(dialect),
		"{{without_rowid}}", withoutRowIDFor(dialect),
	)
	return r.Replace(schema)
}

func serialFor(dialect string) string {
	if dialect == cliparse.DatabasePostgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func timestampFor(dialect string) string {
	if dialect == cliparse.DatabasePostgres {
		return "TIMESTAMPTZ"
	}
	return "TIMESTAMP"
}

func withoutRowIDFor(dialect string) string {
	if dialect == cliparse.DatabasePostgres {
		return ""
	}
	return " WITHOUT ROWID"
}

const schema = `
-- Identity partition

CREATE TABLE IF NOT EXISTS electeurs (
    id {{serial}},
    nom TEXT NOT NULL,
    prenom TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    mot_de_passe TEXT NOT NULL,
    date_inscription {{timestamp}} NOT NULL
);

CREATE TABLE IF NOT EXISTS administrateurs (
    id {{serial}},
    username TEXT NOT NULL UNIQUE,
    mot_de_passe TEXT NOT NULL,
    date_creation {{timestamp}} NOT NULL
);

-- Registry

CREATE TABLE IF NOT EXISTS votes (
    id {{serial}},
    titre TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    statut TEXT NOT NULL DEFAULT 'en_attente' CHECK (statut IN ('en_attente', 'active', 'terminee')),
    date_creation {{timestamp}} NOT NULL,
    date_ouverture {{timestamp}},
    date_cloture {{timestamp}}
);

CREATE INDEX IF NOT EXISTS idx_votes_statut ON votes(statut);

CREATE TABLE IF NOT EXISTS options (
    id {{serial}},
    vote_id BIGINT NOT NULL REFERENCES votes(id),
    libelle TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    photo TEXT NOT NULL DEFAULT '',
    date_ajout {{timestamp}} NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_options_vote_id ON options(vote_id);

-- Gate between the partitions: who already received a jeton.
-- Deliberately no timestamp and no reference to the jeton.
CREATE TABLE IF NOT EXISTS eligibilites (
    electeur_id BIGINT NOT NULL REFERENCES electeurs(id),
    vote_id BIGINT NOT NULL REFERENCES votes(id),
    PRIMARY KEY (electeur_id, vote_id)
){{without_rowid}};

-- Anonymous partition: nothing below references electeurs

CREATE TABLE IF NOT EXISTS jetons (
    jeton_hash TEXT PRIMARY KEY,
    vote_id BIGINT NOT NULL REFERENCES votes(id),
    utilise BOOLEAN NOT NULL DEFAULT FALSE
){{without_rowid}};

CREATE INDEX IF NOT EXISTS idx_jetons_vote_id ON jetons(vote_id);

CREATE TABLE IF NOT EXISTS bulletins (
    id TEXT PRIMARY KEY,
    vote_id BIGINT NOT NULL REFERENCES votes(id),
    option_id BIGINT NOT NULL REFERENCES options(id),
    date_bulletin {{timestamp}} NOT NULL
){{without_rowid}};

CREATE INDEX IF NOT EXISTS idx_bulletins_vote_id ON bulletins(vote_id);
CREATE INDEX IF NOT EXISTS idx_bulletins_option_id ON bulletins(option_id);

CREATE TABLE IF NOT EXISTS decomptes (
    vote_id BIGINT PRIMARY KEY REFERENCES votes(id),
    date_decompte {{timestamp}} NOT NULL
);

CREATE TABLE IF NOT EXISTS resultats (
    vote_id BIGINT NOT NULL REFERENCES decomptes(vote_id),
    option_id BIGINT NOT NULL REFERENCES options(id),
    nombre_bulletins BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (vote_id, option_id)
);
`

const dropSchema = `
DROP TABLE IF EXISTS resultats;
DROP TABLE IF EXISTS decomptes;
DROP TABLE IF EXISTS bulletins;
DROP TABLE IF EXISTS jetons;
DROP TABLE IF EXISTS eligibilites;
DROP TABLE IF EXISTS options;
DROP TABLE IF EXISTS votes;
DROP TABLE IF EXISTS administrateurs;
DROP TABLE IF EXISTS electeurs;
`
