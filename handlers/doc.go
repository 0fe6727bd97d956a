// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the isoloir API.

# Handler Types

Each handler is a thin struct around a domain service:

  - AuthHandler: elector registration, elector and admin login
  - VoteHandler: vote lifecycle and options
  - BallotHandler: jeton issuance and ballot casting
  - ResultsHandler: tally, published results, statistics

	svc := election.NewService(conn, identity.NewStore(conn))
	ballots := handlers.NewBallotHandler(svc)

Handlers decode the request, call one service operation and encode the
reply. They hold no SQL.

# Vote Lifecycle

	POST /api/votes          → CreateVote (en_attente)
	POST /api/options        → AddOption (en_attente only)
	POST /api/votes/statut   → ChangeStatut (en_attente → active → terminee)
	POST /api/decompte       → Decompte (terminee only, computed once)

# Voting Flow

	POST /api/jeton  → RequestJeton (X-Electeur-Key must match electeur_id)
	POST /api/voter  → CastBallot (jeton only, no session)

The jeton is returned exactly once. CastBallot never learns who is voting.

# Errors

Every failure goes through writeError, which maps service errors onto a
status and a stable code:

	{"success": false, "code": "TokenAlreadyUsed", "error": "..."}

Storage failures answer 503 without echoing driver messages.
*/
package handlers
