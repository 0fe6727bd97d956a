// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/isoloir/auth"
	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/models"
)

// IssueToken hands an elector the single jeton they may use on an active vote.
//
// The plaintext jeton is returned exactly once and never stored. The only
// trace left on the identity side is the (electeur_id, vote_id) pair in
// eligibilites, which carries no timestamp and no link to the jeton row.
func (s *Service) IssueToken(ctx context.Context, electeurID, voteID int64) (string, error) {
	// Electors are never deleted, so this can run before the transaction.
	// sqlite has a single connection and the pool is busy once tx is open.
	known, err := s.electeurs.ElecteurExists(ctx, electeurID)
	if err != nil {
		return "", err
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	statut, err := s.lockVoteStatut(ctx, tx, voteID)
	if err != nil {
		return "", err
	}
	if statut != models.StatutActive {
		return "", fmt.Errorf("%w: vote is %s", ErrVoteNotActive, statut)
	}

	if !known {
		return "", ErrUnknownElecteur
	}

	// The primary key is the at-most-once gate
	res, err := tx.ExecContext(ctx, s.q(`
		INSERT INTO eligibilites (electeur_id, vote_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`), electeurID, voteID)
	if err != nil {
		return "", db.Wrap("insert eligibilite", err)
	}
	n, err := rowsAffected(res, "insert eligibilite")
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrAlreadyIssued
	}

	jeton, err := auth.GenerateJeton()
	if err != nil {
		return "", fmt.Errorf("failed to generate jeton: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO jetons (jeton_hash, vote_id, utilise)
		VALUES (?, ?, FALSE)
	`), auth.HashJeton(jeton), voteID)
	if err != nil {
		return "", db.Wrap("insert jeton", err)
	}

	if err := commit(tx); err != nil {
		return "", err
	}

	// No electeur_id here: the log must not pair an elector with a jeton
	slog.Info("jeton issued", "vote_id", voteID)
	return jeton, nil
}
