// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/models"
)

// ComputeOrFetchResults tallies a terminated vote the first time it is called
// and returns the stored counts afterwards. The decomptes primary key makes the
// tally happen once even when two admins ask at the same moment; the second
// bool reports whether the rows came from that stored tally.
func (s *Service) ComputeOrFetchResults(ctx context.Context, voteID int64) ([]models.Resultat, bool, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	statut, err := s.lockVoteStatut(ctx, tx, voteID)
	if err != nil {
		return nil, false, err
	}
	if statut != models.StatutTerminee {
		return nil, false, fmt.Errorf("%w: vote is %s", ErrNotYetTerminated, statut)
	}

	computedAt := s.now()
	res, err := tx.ExecContext(ctx, s.q(`
		INSERT INTO decomptes (vote_id, date_decompte)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`), voteID, computedAt)
	if err != nil {
		return nil, false, db.Wrap("insert decompte", err)
	}
	n, err := rowsAffected(res, "insert decompte")
	if err != nil {
		return nil, false, err
	}

	if n == 0 {
		resultats, err := s.storedResults(ctx, tx, voteID)
		if err != nil {
			return nil, false, err
		}
		if err := commit(tx); err != nil {
			return nil, false, err
		}
		return resultats, true, nil
	}

	resultats, err := s.countBulletins(ctx, tx, voteID)
	if err != nil {
		return nil, false, err
	}

	var total int64
	for i := range resultats {
		resultats[i].DateDecompte = computedAt
		total += resultats[i].NombreBulletins

		_, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO resultats (vote_id, option_id, nombre_bulletins)
			VALUES (?, ?, ?)
		`), voteID, resultats[i].OptionID, resultats[i].NombreBulletins)
		if err != nil {
			return nil, false, db.Wrap("insert resultat", err)
		}
	}

	if err := commit(tx); err != nil {
		return nil, false, err
	}

	slog.Info("vote tallied",
		"vote_id", voteID,
		"options", len(resultats),
		"bulletins", humanize.Comma(total))
	return resultats, false, nil
}

// countBulletins counts the bulletins of every option of a vote, zero included.
// Rows are fully read and closed before the caller reuses tx.
func (s *Service) countBulletins(ctx context.Context, tx *sql.Tx, voteID int64) ([]models.Resultat, error) {
	rows, err := tx.QueryContext(ctx, s.q(`
		SELECT o.id, o.libelle, COUNT(b.id)
		FROM options o
		LEFT JOIN bulletins b ON b.option_id = o.id AND b.vote_id = o.vote_id
		WHERE o.vote_id = ?
		GROUP BY o.id, o.libelle
		ORDER BY o.id
	`), voteID)
	if err != nil {
		return nil, db.Wrap("count bulletins", err)
	}
	defer rows.Close()

	resultats := []models.Resultat{}
	for rows.Next() {
		r := models.Resultat{VoteID: voteID}
		if err := rows.Scan(&r.OptionID, &r.Libelle, &r.NombreBulletins); err != nil {
			return nil, db.Wrap("scan count", err)
		}
		resultats = append(resultats, r)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("count bulletins", err)
	}
	return resultats, nil
}

func (s *Service) storedResults(ctx context.Context, tx *sql.Tx, voteID int64) ([]models.Resultat, error) {
	rows, err := tx.QueryContext(ctx, s.q(`
		SELECT r.option_id, o.libelle, r.nombre_bulletins, d.date_decompte
		FROM resultats r
		JOIN options o ON o.id = r.option_id
		JOIN decomptes d ON d.vote_id = r.vote_id
		WHERE r.vote_id = ?
		ORDER BY r.option_id
	`), voteID)
	if err != nil {
		return nil, db.Wrap("read resultats", err)
	}
	defer rows.Close()

	resultats := []models.Resultat{}
	for rows.Next() {
		r := models.Resultat{VoteID: voteID}
		if err := rows.Scan(&r.OptionID, &r.Libelle, &r.NombreBulletins, &r.DateDecompte); err != nil {
			return nil, db.Wrap("scan resultat", err)
		}
		resultats = append(resultats, r)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("read resultats", err)
	}
	return resultats, nil
}

// Winners returns every option holding the highest count, in input order.
// A tie returns all tied options; no bulletin at all returns none.
func Winners(resultats []models.Resultat) []int64 {
	var best int64
	for _, r := range resultats {
		if r.NombreBulletins > best {
			best = r.NombreBulletins
		}
	}

	winners := []int64{}
	if best == 0 {
		return winners
	}
	for _, r := range resultats {
		if r.NombreBulletins == best {
			winners = append(winners, r.OptionID)
		}
	}
	return winners
}

// TotalBulletins sums the counts of a tally
func TotalBulletins(resultats []models.Resultat) int64 {
	var total int64
	for _, r := range resultats {
		total += r.NombreBulletins
	}
	return total
}

// ListResults returns every stored tally, newest vote first and highest count first
func (s *Service) ListResults(ctx context.Context) ([]models.Resultat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.vote_id, r.option_id, o.libelle, r.nombre_bulletins, d.date_decompte
		FROM resultats r
		JOIN options o ON o.id = r.option_id
		JOIN decomptes d ON d.vote_id = r.vote_id
		ORDER BY r.vote_id DESC, r.nombre_bulletins DESC, r.option_id
	`)
	if err != nil {
		return nil, db.Wrap("list resultats", err)
	}
	defer rows.Close()

	resultats := []models.Resultat{}
	for rows.Next() {
		var r models.Resultat
		if err := rows.Scan(&r.VoteID, &r.OptionID, &r.Libelle, &r.NombreBulletins, &r.DateDecompte); err != nil {
			return nil, db.Wrap("scan resultat", err)
		}
		resultats = append(resultats, r)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("list resultats", err)
	}
	return resultats, nil
}

// Statistics reports participation figures. With a non-zero voteID the jeton,
// option and bulletin counts are restricted to that vote; the electorate is
// always the whole electeurs table.
func (s *Service) Statistics(ctx context.Context, voteID int64) (models.Statistiques, error) {
	var st models.Statistiques

	scope, args := "", []any{}
	if voteID != 0 {
		if _, err := s.GetVote(ctx, voteID); err != nil {
			return models.Statistiques{}, err
		}
		scope, args = " WHERE vote_id = ?", []any{voteID}
	}

	counts := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&st.TotalElecteurs, "SELECT COUNT(*) FROM electeurs", nil},
		{&st.JetonsDistribues, "SELECT COUNT(*) FROM jetons" + scope, args},
		{&st.JetonsUtilises, "SELECT COUNT(*) FROM jetons WHERE utilise = TRUE" + andScope(scope), args},
		{&st.TotalOptions, "SELECT COUNT(*) FROM options" + scope, args},
		{&st.TotalBulletins, "SELECT COUNT(*) FROM bulletins" + scope, args},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, s.q(c.query), c.args...).Scan(c.dest); err != nil {
			return models.Statistiques{}, db.Wrap("read statistics", err)
		}
	}

	if voteID != 0 {
		st.TotalVotes = 1
	} else if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM votes").Scan(&st.TotalVotes); err != nil {
		return models.Statistiques{}, db.Wrap("read statistics", err)
	}

	st.TauxParticipation = ParticipationRate(st.JetonsUtilises, st.TotalElecteurs)
	return st, nil
}

// ParticipationRate is used/electeurs as a percentage rounded to two decimals
func ParticipationRate(used, electeurs int64) float64 {
	if electeurs <= 0 {
		return 0
	}
	return math.Round(float64(used)/float64(electeurs)*100*100) / 100
}

func andScope(scope string) string {
	if scope == "" {
		return ""
	}
	return " AND vote_id = ?"
}
