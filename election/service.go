// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/isoloir/db"
)

// Electorate answers eligibility questions from the identity partition.
// It is the only view the election core has on electors.
type Electorate interface {
	ElecteurExists(ctx context.Context, id int64) (bool, error)
}

// Service implements the vote registry, token issuer, ballot box and tally engine
// on top of one database. All atomicity comes from database transactions, so
// several Service instances may share the same database.
type Service struct {
	db        *db.DB
	electeurs Electorate
	now       func() time.Time
}

func NewService(conn *db.DB, electeurs Electorate) *Service {
	return &Service{
		db:        conn,
		electeurs: electeurs,
		now: func() time.Time {
			// postgres keeps microseconds; truncate so cached rows compare equal
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

func (s *Service) q(query string) string {
	return s.db.Rebind(query)
}

// lockVoteStatut reads the status of a vote and, on postgres, holds a share
// lock on the row until the transaction ends so a concurrent transition waits.
func (s *Service) lockVoteStatut(ctx context.Context, tx *sql.Tx, voteID int64) (string, error) {
	var statut string
	err := tx.QueryRowContext(ctx,
		s.q("SELECT statut FROM votes WHERE id = ?"+s.db.ForShare()), voteID,
	).Scan(&statut)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrVoteNotFound
	}
	if err != nil {
		return "", db.Wrap("read vote status", err)
	}
	return statut, nil
}

func (s *Service) begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, db.Wrap("begin transaction", err)
	}
	return tx, nil
}

func commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return db.Wrap("commit", err)
	}
	return nil
}

func rowsAffected(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, db.Wrap(op, fmt.Errorf("rows affected: %w", err))
	}
	return n, nil
}
