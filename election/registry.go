// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/models"
)

const voteColumns = "id, titre, description, statut, date_creation, date_ouverture, date_cloture"

// transitions maps each reachable status to the only status it may come from
var transitions = map[string]struct {
	from   string
	column string
}{
	models.StatutActive:   {from: models.StatutEnAttente, column: "date_ouverture"},
	models.StatutTerminee: {from: models.StatutActive, column: "date_cloture"},
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVote(row rowScanner) (models.Vote, error) {
	var v models.Vote
	var ouverture, cloture sql.NullTime
	if err := row.Scan(&v.ID, &v.Titre, &v.Description, &v.Statut, &v.DateCreation, &ouverture, &cloture); err != nil {
		return models.Vote{}, err
	}
	if ouverture.Valid {
		t := ouverture.Time
		v.DateOuverture = &t
	}
	if cloture.Valid {
		t := cloture.Time
		v.DateCloture = &t
	}
	return v, nil
}

// CreateVote registers a new vote in status en_attente
func (s *Service) CreateVote(ctx context.Context, titre, description string) (models.Vote, error) {
	titre = strings.TrimSpace(titre)
	if titre == "" {
		return models.Vote{}, fmt.Errorf("%w: titre", ErrEmptyField)
	}

	v := models.Vote{
		Titre:        titre,
		Description:  description,
		Statut:       models.StatutEnAttente,
		DateCreation: s.now(),
	}

	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO votes (titre, description, statut, date_creation)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), v.Titre, v.Description, v.Statut, v.DateCreation).Scan(&v.ID)
	if err != nil {
		return models.Vote{}, db.Wrap("insert vote", err)
	}

	slog.Info("vote created", "vote_id", v.ID)
	return v, nil
}

// GetVote returns a vote by id
func (s *Service) GetVote(ctx context.Context, voteID int64) (models.Vote, error) {
	v, err := scanVote(s.db.QueryRowContext(ctx,
		s.q("SELECT "+voteColumns+" FROM votes WHERE id = ?"), voteID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, ErrVoteNotFound
	}
	if err != nil {
		return models.Vote{}, db.Wrap("read vote", err)
	}
	return v, nil
}

// ListVotes returns every vote, newest first
func (s *Service) ListVotes(ctx context.Context) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+voteColumns+" FROM votes ORDER BY id DESC")
	if err != nil {
		return nil, db.Wrap("list votes", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, db.Wrap("scan vote", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("list votes", err)
	}
	return votes, nil
}

// GetActiveVote returns the most recent active vote, or nil when none is active.
// Nothing prevents several active votes; that is left to the admin workflow.
func (s *Service) GetActiveVote(ctx context.Context) (*models.Vote, error) {
	v, err := scanVote(s.db.QueryRowContext(ctx, s.q(
		"SELECT "+voteColumns+" FROM votes WHERE statut = ? ORDER BY id DESC LIMIT 1"),
		models.StatutActive))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, db.Wrap("read active vote", err)
	}
	return &v, nil
}

// TransitionStatus moves a vote one step forward: en_attente → active → terminee.
// Any other request, including a no-op, fails with ErrIllegalTransition.
func (s *Service) TransitionStatus(ctx context.Context, voteID int64, target string) (models.Vote, error) {
	step, ok := transitions[target]
	if !ok {
		current, err := s.GetVote(ctx, voteID)
		if err != nil {
			return models.Vote{}, err
		}
		return models.Vote{}, fmt.Errorf("%w: %s -> %q", ErrIllegalTransition, current.Statut, target)
	}

	// Compare-and-swap on the predecessor status
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE votes SET statut = ?, `+step.column+` = ?
		WHERE id = ? AND statut = ?
	`), target, s.now(), voteID, step.from)
	if err != nil {
		return models.Vote{}, db.Wrap("update vote status", err)
	}
	n, err := rowsAffected(res, "update vote status")
	if err != nil {
		return models.Vote{}, err
	}

	current, err := s.GetVote(ctx, voteID)
	if err != nil {
		return models.Vote{}, err
	}
	if n == 0 {
		return models.Vote{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Statut, target)
	}

	slog.Info("vote status changed", "vote_id", voteID, "from", step.from, "to", target)
	return current, nil
}

// AddOption adds a choice to a vote that is still en_attente.
// photo is an optional image URL shown next to the libelle.
func (s *Service) AddOption(ctx context.Context, voteID int64, libelle, description, photo string) (models.Option, error) {
	libelle = strings.TrimSpace(libelle)
	if libelle == "" {
		return models.Option{}, fmt.Errorf("%w: libelle", ErrEmptyField)
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return models.Option{}, err
	}
	defer tx.Rollback()

	statut, err := s.lockVoteStatut(ctx, tx, voteID)
	if err != nil {
		return models.Option{}, err
	}
	if statut != models.StatutEnAttente {
		return models.Option{}, fmt.Errorf("%w: vote is %s", ErrInvalidState, statut)
	}

	opt := models.Option{
		VoteID:      voteID,
		Libelle:     libelle,
		Description: description,
		Photo:       strings.TrimSpace(photo),
		DateAjout:   s.now(),
	}
	err = tx.QueryRowContext(ctx, s.q(`
		INSERT INTO options (vote_id, libelle, description, photo, date_ajout)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), opt.VoteID, opt.Libelle, opt.Description, opt.Photo, opt.DateAjout).Scan(&opt.ID)
	if err != nil {
		return models.Option{}, db.Wrap("insert option", err)
	}

	if err := commit(tx); err != nil {
		return models.Option{}, err
	}

	slog.Info("option added", "vote_id", voteID, "option_id", opt.ID)
	return opt, nil
}

// DeleteOption removes a choice from a vote that is still en_attente
func (s *Service) DeleteOption(ctx context.Context, optionID int64) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var voteID int64
	err = tx.QueryRowContext(ctx, s.q("SELECT vote_id FROM options WHERE id = ?"), optionID).Scan(&voteID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOptionNotFound
	}
	if err != nil {
		return db.Wrap("read option", err)
	}

	statut, err := s.lockVoteStatut(ctx, tx, voteID)
	if err != nil {
		return err
	}
	if statut != models.StatutEnAttente {
		return fmt.Errorf("%w: vote is %s", ErrInvalidState, statut)
	}

	if _, err := tx.ExecContext(ctx, s.q("DELETE FROM options WHERE id = ?"), optionID); err != nil {
		return db.Wrap("delete option", err)
	}

	if err := commit(tx); err != nil {
		return err
	}

	slog.Info("option deleted", "vote_id", voteID, "option_id", optionID)
	return nil
}

// ListOptions returns the options of one vote ordered by libelle.
// An unknown vote has no options.
func (s *Service) ListOptions(ctx context.Context, voteID int64) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, vote_id, libelle, description, photo, date_ajout
		FROM options
		WHERE vote_id = ?
		ORDER BY libelle, id
	`), voteID)
	if err != nil {
		return nil, db.Wrap("list options", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.VoteID, &opt.Libelle, &opt.Description, &opt.Photo, &opt.DateAjout); err != nil {
			return nil, db.Wrap("scan option", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("list options", err)
	}
	return options, nil
}

// ListAllOptions returns the options of every vote with the vote title
func (s *Service) ListAllOptions(ctx context.Context) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.vote_id, o.libelle, o.description, o.photo, o.date_ajout, v.titre
		FROM options o
		JOIN votes v ON v.id = o.vote_id
		ORDER BY o.libelle, o.id
	`)
	if err != nil {
		return nil, db.Wrap("list all options", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.VoteID, &opt.Libelle, &opt.Description, &opt.Photo, &opt.DateAjout, &opt.VoteTitre); err != nil {
			return nil, db.Wrap("scan option", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("list all options", err)
	}
	return options, nil
}
