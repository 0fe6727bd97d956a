// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/isoloir/auth"
	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrElecteurNotFound   = errors.New("electeur not found")
	ErrMissingField       = errors.New("required field is missing")
)

// Store owns the identity partition: electeurs and administrateurs.
type Store struct {
	db *db.DB
}

func NewStore(conn *db.DB) *Store {
	return &Store{db: conn}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Register creates an elector account. The email is matched case-insensitively.
func (s *Store) Register(ctx context.Context, nom, prenom, email, password string) (models.Electeur, error) {
	e := models.Electeur{
		Nom:             strings.TrimSpace(nom),
		Prenom:          strings.TrimSpace(prenom),
		Email:           normalizeEmail(email),
		DateInscription: now(),
	}
	if e.Nom == "" || e.Prenom == "" || e.Email == "" || password == "" {
		return models.Electeur{}, fmt.Errorf("%w: nom, prenom, email and mot_de_passe are required", ErrMissingField)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Electeur{}, err
	}
	e.MotDePasse = hash

	err = s.db.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO electeurs (nom, prenom, email, mot_de_passe, date_inscription)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), e.Nom, e.Prenom, e.Email, e.MotDePasse, e.DateInscription).Scan(&e.ID)
	if db.IsUniqueViolation(err) {
		return models.Electeur{}, ErrEmailTaken
	}
	if err != nil {
		return models.Electeur{}, db.Wrap("insert electeur", err)
	}

	slog.Info("electeur registered", "electeur_id", e.ID)
	return e, nil
}

// AuthenticateElecteur checks an elector's email and password.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *Store) AuthenticateElecteur(ctx context.Context, email, password string) (models.Electeur, error) {
	e, err := scanElecteur(s.db.QueryRowContext(ctx, s.db.Rebind(
		"SELECT "+electeurColumns+" FROM electeurs WHERE email = ?"), normalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Electeur{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Electeur{}, db.Wrap("read electeur", err)
	}

	if err := auth.CheckPassword(e.MotDePasse, password); err != nil {
		return models.Electeur{}, ErrInvalidCredentials
	}
	return e, nil
}

// AuthenticateAdmin checks an administrator's username and password
func (s *Store) AuthenticateAdmin(ctx context.Context, username, password string) (models.Admin, error) {
	var a models.Admin
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT id, username, mot_de_passe, date_creation
		FROM administrateurs WHERE username = ?
	`), username).Scan(&a.ID, &a.Username, &a.MotDePasse, &a.DateCreation)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Admin{}, db.Wrap("read admin", err)
	}

	if err := auth.CheckPassword(a.MotDePasse, password); err != nil {
		return models.Admin{}, ErrInvalidCredentials
	}
	return a, nil
}

// EnsureAdmin creates the bootstrap administrator if the username is free.
// An existing account keeps its password.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrMissingField)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO administrateurs (username, mot_de_passe, date_creation)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`), username, hash, now())
	if err != nil {
		return db.Wrap("insert admin", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		slog.Info("admin account created", "username", username)
	}
	return nil
}

const electeurColumns = "id, nom, prenom, email, mot_de_passe, date_inscription"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElecteur(row rowScanner) (models.Electeur, error) {
	var e models.Electeur
	err := row.Scan(&e.ID, &e.Nom, &e.Prenom, &e.Email, &e.MotDePasse, &e.DateInscription)
	return e, err
}

// GetElecteur returns one elector by id
func (s *Store) GetElecteur(ctx context.Context, id int64) (models.Electeur, error) {
	e, err := scanElecteur(s.db.QueryRowContext(ctx, s.db.Rebind(
		"SELECT "+electeurColumns+" FROM electeurs WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Electeur{}, ErrElecteurNotFound
	}
	if err != nil {
		return models.Electeur{}, db.Wrap("read electeur", err)
	}
	return e, nil
}

// ElecteurExists reports whether an elector account exists
func (s *Store) ElecteurExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.db.Rebind(
		"SELECT EXISTS(SELECT 1 FROM electeurs WHERE id = ?)"), id).Scan(&exists)
	if err != nil {
		return false, db.Wrap("check electeur", err)
	}
	return exists, nil
}

// ListElecteurs returns every elector ordered by name
func (s *Store) ListElecteurs(ctx context.Context) ([]models.Electeur, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+electeurColumns+" FROM electeurs ORDER BY nom, prenom, id")
	if err != nil {
		return nil, db.Wrap("list electeurs", err)
	}
	defer rows.Close()

	electeurs := []models.Electeur{}
	for rows.Next() {
		e, err := scanElecteur(rows)
		if err != nil {
			return nil, db.Wrap("scan electeur", err)
		}
		electeurs = append(electeurs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Wrap("list electeurs", err)
	}
	return electeurs, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
