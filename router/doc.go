// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the isoloir API.

# Route Registration

NewRouter builds a chi router with every endpoint and the shared stack
(CORS, request id, recoverer, /health heartbeat, request timeout):

	handler := router.NewRouter(conn, cfg)

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /api/electeurs/inscription - Register an elector
	POST /api/auth/electeur         - Elector login, returns cle_session
	POST /api/auth/admin            - Admin login, returns cle_admin

Administration (requires X-Admin-Key):

	POST /api/votes              - Create vote
	POST /api/votes/statut       - Change status
	POST /api/options            - Add option
	POST /api/options/supprimer  - Delete option
	POST /api/decompte           - Compute or fetch the tally
	GET  /api/electeurs          - List electors

Voting:

	POST /api/jeton - Request a jeton (requires X-Electeur-Key)
	POST /api/voter - Cast a ballot with a jeton (anonymous)

Public reads:

	GET /api/votes                      - All votes
	GET /api/vote/actif                 - Current active vote
	GET /api/options                    - All options
	GET /api/options/vote?vote_id=      - Options of one vote
	GET /api/bulletins                  - Bulletins (no option)
	GET /api/bulletins/count?vote_id=   - Bulletin count
	GET /api/resultats                  - Published results
	GET /api/statistiques?vote_id=      - Participation statistics

POST /api/voter is logged with WithAnonymousLogging; every other route
uses WithLogging.
*/
package router
