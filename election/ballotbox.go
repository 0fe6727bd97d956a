// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/isoloir/auth"
	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/models"
)

// ballotTimeResolution coarsens bulletin timestamps so they can't be lined up
// with request logs or the order in which jetons were issued.
const ballotTimeResolution = time.Minute

// CastBallot consumes a jeton and records one anonymous bulletin for the chosen
// option. The jeton flip and the bulletin insert commit together or not at all.
func (s *Service) CastBallot(ctx context.Context, jeton string, optionID int64) (string, error) {
	if jeton == "" {
		return "", ErrUnknownToken
	}
	jetonHash := auth.HashJeton(jeton)

	tx, err := s.begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var (
		voteID  int64
		utilise bool
	)
	err = tx.QueryRowContext(ctx, s.q(`
		SELECT vote_id, utilise FROM jetons WHERE jeton_hash = ?
	`), jetonHash).Scan(&voteID, &utilise)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUnknownToken
	}
	if err != nil {
		return "", db.Wrap("read jeton", err)
	}
	if utilise {
		return "", ErrTokenAlreadyUsed
	}

	var optionVoteID int64
	err = tx.QueryRowContext(ctx, s.q("SELECT vote_id FROM options WHERE id = ?"), optionID).Scan(&optionVoteID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidOption
	}
	if err != nil {
		return "", db.Wrap("read option", err)
	}
	if optionVoteID != voteID {
		return "", ErrInvalidOption
	}

	statut, err := s.lockVoteStatut(ctx, tx, voteID)
	if err != nil {
		return "", err
	}
	if statut != models.StatutActive {
		return "", fmt.Errorf("%w: vote is %s", ErrVoteNotActive, statut)
	}

	// Compare-and-swap: of two concurrent casts only one sees utilise = FALSE
	res, err := tx.ExecContext(ctx, s.q(`
		UPDATE jetons SET utilise = TRUE
		WHERE jeton_hash = ? AND utilise = FALSE
	`), jetonHash)
	if err != nil {
		return "", db.Wrap("consume jeton", err)
	}
	n, err := rowsAffected(res, "consume jeton")
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrTokenAlreadyUsed
	}

	bulletinID := uuid.NewString()
	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO bulletins (id, vote_id, option_id, date_bulletin)
		VALUES (?, ?, ?, ?)
	`), bulletinID, voteID, optionID, s.now().Truncate(ballotTimeResolution))
	if err != nil {
		return "", db.Wrap("insert bulletin", err)
	}

	if err := commit(tx); err != nil {
		return "", err
	}

	slog.Info("bulletin cast", "vote_id", voteID)
	return bulletinID, nil
}

// ListBulletins returns the public view of cast bulletins: no option, no jeton.
// A zero voteID lists every vote.
func (s *Service) ListBulletins(ctx context.Context, voteID int64) ([]models.Bulletin, error) {
	query := "SELECT id, vote_id, date_bulletin FROM bulletins"
	var args []any
	if voteID != 0 {
		query += " WHERE vote_id = ?"
		args = append(args, voteID)
	}
	query += " ORDER BY date_bulletin DESC, id"

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, db.Wrap("list bulletins", err)
	}
	defer rows.Close()

	bulletins := []models.Bulletin{}
	for rows.Next() {
		var b models.Bulletin
		if err := rows.Scan(&b.ID, &b.VoteID, &b.DateBulletin); err != nil {
			return nil, db.Wrap("scan bulletin", err)
		}
		bulletins = append(bulletins, b)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("list bulletins", err)
	}
	return bulletins, nil
}

// CountBulletins counts cast bulletins, for one vote or for all when voteID is 0
func (s *Service) CountBulletins(ctx context.Context, voteID int64) (int64, error) {
	query := "SELECT COUNT(*) FROM bulletins"
	var args []any
	if voteID != 0 {
		query += " WHERE vote_id = ?"
		args = append(args, voteID)
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, s.q(query), args...).Scan(&count); err != nil {
		return 0, db.Wrap("count bulletins", err)
	}
	return count, nil
}
