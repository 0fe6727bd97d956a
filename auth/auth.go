// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Session roles
const (
	RoleAdmin    = "admin"
	RoleElecteur = "electeur"
)

var (
	ErrInvalidSessionKey = errors.New("invalid session key")
	ErrInvalidPassword   = errors.New("invalid password")
)

// jetonBytes is 192 bits of entropy
const jetonBytes = 24

// GenerateJeton creates a random single-use ballot token.
// The raw value is handed to the elector and never stored.
func GenerateJeton() (string, error) {
	b := make([]byte, jetonBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate jeton: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashJeton returns the hex sha256 of a raw token, the only form that is persisted
func HashJeton(jeton string) string {
	sum := sha256.Sum256([]byte(jeton))
	return hex.EncodeToString(sum[:])
}

// GenerateSessionKey creates an HMAC-based key binding a role to an account id.
// Format: "<id>.<mac>". Deterministic, so nothing needs to be stored.
func GenerateSessionKey(role string, id int64, salt string) string {
	idStr := strconv.FormatInt(id, 10)
	return idStr + "." + sessionMAC(role, idStr, salt)
}

// ValidateSessionKey checks a key for the given role and returns the account id it carries
func ValidateSessionKey(role, key, salt string) (int64, error) {
	idStr, mac, ok := strings.Cut(key, ".")
	if !ok || idStr == "" || mac == "" {
		return 0, ErrInvalidSessionKey
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, ErrInvalidSessionKey
	}
	expected := sessionMAC(role, idStr, salt)
	if !hmac.Equal([]byte(mac), []byte(expected)) {
		return 0, ErrInvalidSessionKey
	}
	return id, nil
}

func sessionMAC(role, id, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(role + ":" + id))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// HashPassword hashes a credential with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a candidate password
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
