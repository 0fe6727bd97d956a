// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the vote lifecycle, jeton issuance, ballot casting
and tallying.

# Service

Everything hangs off one Service built on a *db.DB and an Electorate, the
narrow view of the identity store needed to check that an elector exists:

	svc := election.NewService(conn, identity.NewStore(conn))

# Vote Lifecycle

Votes move strictly forward: en_attente → active → terminee.

	vote, err := svc.CreateVote(ctx, "Best Color", "")
	opt, err := svc.AddOption(ctx, vote.ID, "Red", "", "") // en_attente only
	vote, err = svc.TransitionStatus(ctx, vote.ID, models.StatutActive)

Options can only be added or removed while the vote is en_attente.

# Jetons and Bulletins

An elector gets at most one jeton per vote. Casting consumes it:

	jeton, err := svc.IssueToken(ctx, electeurID, voteID)
	bulletinID, err := svc.CastBallot(ctx, jeton, optionID)

The eligibilites table records who received a jeton; the jetons and bulletins
tables never reference an elector. Only the sha256 of a jeton is stored and
bulletin timestamps are truncated to the minute.

# Tally

A terminated vote is counted once, on first request, and the counts are stored:

	resultats, dejaCalcule, err := svc.ComputeOrFetchResults(ctx, voteID)
	gagnants := election.Winners(resultats)

# Errors

Domain failures are sentinel errors (ErrAlreadyIssued, ErrTokenAlreadyUsed,
ErrVoteNotActive, ...). Storage failures wrap db.ErrStorage.
*/
package election
