// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

// Semantic errors. Each is terminal for the request that produced it;
// only db.ErrStorage failures may be retried.
var (
	ErrAlreadyIssued     = errors.New("jeton already issued for this vote")
	ErrUnknownToken      = errors.New("unknown jeton")
	ErrTokenAlreadyUsed  = errors.New("jeton already used")
	ErrInvalidOption     = errors.New("option does not belong to this vote")
	ErrVoteNotActive     = errors.New("vote is not active")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrInvalidState      = errors.New("options can only change while the vote is en_attente")
	ErrNotYetTerminated  = errors.New("vote is not terminated")

	ErrVoteNotFound    = errors.New("vote not found")
	ErrOptionNotFound  = errors.New("option not found")
	ErrUnknownElecteur = errors.New("electeur not found")
	ErrEmptyField      = errors.New("required field is empty")
)
