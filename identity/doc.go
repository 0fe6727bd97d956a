// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity stores elector and administrator accounts.

	store := identity.NewStore(conn)
	e, err := store.Register(ctx, "Curie", "Marie", "marie@example.org", password)
	e, err = store.AuthenticateElecteur(ctx, "marie@example.org", password)

Emails are trimmed and lowercased. Passwords are bcrypt hashed and the hash is
never serialized. Failed logins return ErrInvalidCredentials whether the
account is unknown or the password is wrong.

Store satisfies election.Electorate, which is all the election core knows
about electors.
*/
package identity
