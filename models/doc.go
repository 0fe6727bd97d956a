// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

Field names follow the wire format of the public API (French, snake_case).

# Envelope

Every response has a "success" boolean. Failures use ErrorResponse:

	{"success": false, "error": "jeton already issued for this vote", "code": "AlreadyIssued"}

# Domain Types

  - Electeur, Admin: identity records; password hashes are tagged json:"-"
  - Vote: statut is one of StatutEnAttente, StatutActive, StatutTerminee
  - Option: belongs to one Vote
  - Bulletin: anonymous ballot (id, vote_id, option_id, date_bulletin)
  - Resultat: cached per-option count of a terminated Vote
  - Statistiques: turnout figures

# Relationships

	Vote 1──* Option
	Vote 1──* Bulletin *──1 Option
	Vote 1──* Resultat *──1 Option

There is no relationship between Electeur and Bulletin.
*/
package models
