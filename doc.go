// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the isoloir API server.

isoloir runs anonymous single-choice elections. An elector proves who
they are once to obtain a single-use jeton, then casts a ballot with that
jeton alone. Identity and ballot are never stored together.

# Starting the Server

	SESSION_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - SESSION_KEY_SALT (--session-salt): Secret for session key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): file path for sqlite, connection string for postgres
  - ADMIN_USERNAME / ADMIN_PASSWORD: bootstrap administrator
  - --env: dotenv file to load (default .env)

# Architecture

  - election: vote registry, jeton issuer, ballot box, tally
  - identity: electors and administrators
  - handlers: HTTP request handlers
  - router: chi routes and middleware stack
  - middleware: logging, CORS, sessions, JSON helpers
  - models: request/response and row types
  - auth: jetons, session keys, passwords
  - db: connection, dialect helpers, schema
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
