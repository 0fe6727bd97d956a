// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation, session keys and credential hashing.

# Jetons

A jeton is a random 24-byte (192-bit) secret, URL-safe base64 encoded:

	jeton, err := auth.GenerateJeton()
	hash := auth.HashJeton(jeton)

Only the sha256 hash is stored. The raw value lives in the elector's client
and is presented once, when the ballot is cast.

# Session Keys

Admin and elector sessions use HMAC-SHA256 keys of the form "<id>.<mac>":

	key := auth.GenerateSessionKey(auth.RoleAdmin, adminID, salt)
	id, err := auth.ValidateSessionKey(auth.RoleAdmin, key, salt)

The role is part of the MAC input, so an elector key never validates as an
admin key. Keys are deterministic and need no storage.

# Passwords

Credentials are hashed with bcrypt:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)
*/
package auth
