// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/isoloir/auth"
	"github.com/danielhkuo/isoloir/cliparse"
	"github.com/danielhkuo/isoloir/db"
	"github.com/danielhkuo/isoloir/models"
)

// TestPassword is the password of every account created by this package
const TestPassword = "motdepasse-test"

// testSessionSalt signs the session keys handed out by GetTestConfig
const testSessionSalt = "test-session-salt"

// SetupTestDB creates a fresh database with the full schema.
// It uses a throwaway sqlite file unless TEST_DATABASE_URL points at postgres,
// in which case every table is dropped and recreated.
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbType, url := cliparse.DatabaseSQLite, filepath.Join(t.TempDir(), "test.db")
	if pg := os.Getenv("TEST_DATABASE_URL"); pg != "" {
		dbType, url = cliparse.DatabasePostgres, pg
	}

	conn, err := db.Open(dbType, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if dbType == cliparse.DatabasePostgres {
		if err := db.DropSchema(conn); err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   cliparse.DatabaseSQLite,
		DatabaseURL:    ":memory:",
		SessionKeySalt: testSessionSalt,
	}
}

var (
	passwordHashOnce sync.Once
	passwordHash     string
	passwordHashErr  error
)

// hashTestPassword hashes TestPassword once; bcrypt is slow on purpose.
// The error is kept so every caller sees it, not only the first.
func hashTestPassword() (string, error) {
	passwordHashOnce.Do(func() {
		var h []byte
		h, passwordHashErr = bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
		passwordHash = string(h)
	})
	return passwordHash, passwordHashErr
}

func testPasswordHash(t *testing.T) string {
	t.Helper()
	hash, err := hashTestPassword()
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	return hash
}

// CreateTestVote inserts a vote with the given status and returns its ID.
// status should be "en_attente", "active", or "terminee".
func CreateTestVote(t *testing.T, conn *db.DB, titre, status string) int64 {
	t.Helper()

	now := time.Now().UTC()
	var ouverture, cloture any
	if status == models.StatutActive || status == models.StatutTerminee {
		ouverture = now
	}
	if status == models.StatutTerminee {
		cloture = now
	}

	var id int64
	err := conn.QueryRow(conn.Rebind(`
		INSERT INTO votes (titre, description, statut, date_creation, date_ouverture, date_cloture)
		VALUES (?, 'A test vote', ?, ?, ?, ?)
		RETURNING id
	`), titre, status, now, ouverture, cloture).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return id
}

// SetVoteStatus forces a vote into a status, bypassing the transition rules
func SetVoteStatus(t *testing.T, conn *db.DB, voteID int64, status string) {
	t.Helper()
	if _, err := conn.Exec(conn.Rebind("UPDATE votes SET statut = ? WHERE id = ?"), status, voteID); err != nil {
		t.Fatalf("Failed to set vote status: %v", err)
	}
}

// AddTestOption adds an option to a vote and returns the option ID
func AddTestOption(t *testing.T, conn *db.DB, voteID int64, libelle string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(conn.Rebind(`
		INSERT INTO options (vote_id, libelle, description, date_ajout)
		VALUES (?, ?, '', ?)
		RETURNING id
	`), voteID, libelle, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}
	return id
}

// CreateTestElecteur registers an elector with TestPassword and returns its ID
func CreateTestElecteur(t *testing.T, conn *db.DB, email string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(conn.Rebind(`
		INSERT INTO electeurs (nom, prenom, email, mot_de_passe, date_inscription)
		VALUES ('Test', 'Electeur', ?, ?, ?)
		RETURNING id
	`), email, testPasswordHash(t), time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test electeur: %v", err)
	}
	return id
}

// CreateTestElecteurs registers n electors with generated emails
func CreateTestElecteurs(t *testing.T, conn *db.DB, n int) []int64 {
	t.Helper()

	ids := make([]int64, n)
	for i := range ids {
		ids[i] = CreateTestElecteur(t, conn, fmt.Sprintf("electeur%d@example.org", i))
	}
	return ids
}

// CreateTestAdmin creates an administrator with TestPassword and returns its ID
func CreateTestAdmin(t *testing.T, conn *db.DB, username string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(conn.Rebind(`
		INSERT INTO administrateurs (username, mot_de_passe, date_creation)
		VALUES (?, ?, ?)
		RETURNING id
	`), username, testPasswordHash(t), time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return id
}

// AdminKey returns a valid X-Admin-Key for the given admin under cfg
func AdminKey(cfg cliparse.Config, adminID int64) string {
	return auth.GenerateSessionKey(auth.RoleAdmin, adminID, cfg.SessionKeySalt)
}

// ElecteurKey returns a valid X-Electeur-Key for the given elector under cfg
func ElecteurKey(cfg cliparse.Config, electeurID int64) string {
	return auth.GenerateSessionKey(auth.RoleElecteur, electeurID, cfg.SessionKeySalt)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
