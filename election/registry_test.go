// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/isoloir/models"
	"github.com/danielhkuo/isoloir/testutil"
)

func TestCreateVote(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	vote, err := svc.CreateVote(ctx, "  Best Color  ", "pick one")
	require.NoError(t, err)
	assert.NotZero(t, vote.ID)
	assert.Equal(t, "Best Color", vote.Titre)
	assert.Equal(t, models.StatutEnAttente, vote.Statut)
	assert.Nil(t, vote.DateOuverture)
	assert.Nil(t, vote.DateCloture)

	stored, err := svc.GetVote(ctx, vote.ID)
	require.NoError(t, err)
	assert.Equal(t, vote.Titre, stored.Titre)
	assert.Equal(t, "pick one", stored.Description)
	assert.True(t, vote.DateCreation.Equal(stored.DateCreation))

	_, err = svc.CreateVote(ctx, "   ", "")
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestGetVote_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetVote(context.Background(), 999)
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

func TestListVotes(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	votes, err := svc.ListVotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, votes)
	assert.NotNil(t, votes, "empty list must encode as [] not null")

	first := testutil.CreateTestVote(t, conn, "First", models.StatutTerminee)
	second := testutil.CreateTestVote(t, conn, "Second", models.StatutEnAttente)

	votes, err = svc.ListVotes(ctx)
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, second, votes[0].ID, "newest first")
	assert.Equal(t, first, votes[1].ID)
	assert.NotNil(t, votes[1].DateCloture)
}

func TestGetActiveVote(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	active, err := svc.GetActiveVote(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	testutil.CreateTestVote(t, conn, "Pending", models.StatutEnAttente)
	older := testutil.CreateTestVote(t, conn, "Older", models.StatutActive)
	newer := testutil.CreateTestVote(t, conn, "Newer", models.StatutActive)
	testutil.CreateTestVote(t, conn, "Closed", models.StatutTerminee)

	active, err = svc.GetActiveVote(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, newer, active.ID)
	assert.NotEqual(t, older, active.ID)
}

func TestTransitionStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"open", models.StatutEnAttente, models.StatutActive, nil},
		{"close", models.StatutActive, models.StatutTerminee, nil},
		{"skip active", models.StatutEnAttente, models.StatutTerminee, ErrIllegalTransition},
		{"reopen", models.StatutTerminee, models.StatutActive, ErrIllegalTransition},
		{"back to pending", models.StatutActive, models.StatutEnAttente, ErrIllegalTransition},
		{"same status", models.StatutActive, models.StatutActive, ErrIllegalTransition},
		{"unknown status", models.StatutEnAttente, "archivee", ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, conn := newTestService(t)
			voteID := testutil.CreateTestVote(t, conn, "Vote", tt.from)

			vote, err := svc.TransitionStatus(context.Background(), voteID, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				stored, err := svc.GetVote(context.Background(), voteID)
				require.NoError(t, err)
				assert.Equal(t, tt.from, stored.Statut, "status must not change")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, vote.Statut)
			switch tt.to {
			case models.StatutActive:
				assert.NotNil(t, vote.DateOuverture)
			case models.StatutTerminee:
				assert.NotNil(t, vote.DateCloture)
			}
		})
	}
}

func TestTransitionStatus_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.TransitionStatus(ctx, 42, models.StatutActive)
	assert.ErrorIs(t, err, ErrVoteNotFound)

	_, err = svc.TransitionStatus(ctx, 42, "archivee")
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

func TestTransitionStatus_FullLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	vote, err := svc.CreateVote(ctx, "Lifecycle", "")
	require.NoError(t, err)

	vote, err = svc.TransitionStatus(ctx, vote.ID, models.StatutActive)
	require.NoError(t, err)
	require.NotNil(t, vote.DateOuverture)
	assert.Nil(t, vote.DateCloture)

	vote, err = svc.TransitionStatus(ctx, vote.ID, models.StatutTerminee)
	require.NoError(t, err)
	assert.NotNil(t, vote.DateOuverture)
	assert.NotNil(t, vote.DateCloture)

	// terminee is final
	for _, to := range []string{models.StatutEnAttente, models.StatutActive, models.StatutTerminee} {
		_, err := svc.TransitionStatus(ctx, vote.ID, to)
		assert.ErrorIs(t, err, ErrIllegalTransition, "terminee -> %s", to)
	}
}

func TestAddOption(t *testing.T) {
	tests := []struct {
		name    string
		statut  string
		libelle string
		wantErr error
	}{
		{"pending vote", models.StatutEnAttente, "Red", nil},
		{"active vote", models.StatutActive, "Red", ErrInvalidState},
		{"terminated vote", models.StatutTerminee, "Red", ErrInvalidState},
		{"blank libelle", models.StatutEnAttente, "  ", ErrEmptyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, conn := newTestService(t)
			voteID := testutil.CreateTestVote(t, conn, "Vote", tt.statut)

			opt, err := svc.AddOption(context.Background(), voteID, tt.libelle, "desc", "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, opt.ID)
			assert.Equal(t, voteID, opt.VoteID)
			assert.Equal(t, tt.libelle, opt.Libelle)
		})
	}
}

func TestAddOption_VoteNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddOption(context.Background(), 7, "Red", "", "")
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

func TestAddOption_Photo(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	voteID := testutil.CreateTestVote(t, conn, "Colors", models.StatutEnAttente)
	opt, err := svc.AddOption(ctx, voteID, "Red", "", " https://img.example.org/red.png ")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.org/red.png", opt.Photo)
	_, err = svc.AddOption(ctx, voteID, "Blue", "", "")
	require.NoError(t, err)

	options, err := svc.ListOptions(ctx, voteID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "", options[0].Photo)
	assert.Equal(t, "https://img.example.org/red.png", options[1].Photo)

	all, err := svc.ListAllOptions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "https://img.example.org/red.png", all[1].Photo)
}

func TestDeleteOption(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	pending := testutil.CreateTestVote(t, conn, "Pending", models.StatutEnAttente)
	red := testutil.AddTestOption(t, conn, pending, "Red")
	blue := testutil.AddTestOption(t, conn, pending, "Blue")

	require.NoError(t, svc.DeleteOption(ctx, red))

	options, err := svc.ListOptions(ctx, pending)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, blue, options[0].ID)

	assert.ErrorIs(t, svc.DeleteOption(ctx, red), ErrOptionNotFound)

	for _, statut := range []string{models.StatutActive, models.StatutTerminee} {
		voteID := testutil.CreateTestVote(t, conn, statut, statut)
		locked := testutil.AddTestOption(t, conn, voteID, "Green")
		assert.ErrorIs(t, svc.DeleteOption(ctx, locked), ErrInvalidState, statut)

		options, err := svc.ListOptions(ctx, voteID)
		require.NoError(t, err)
		assert.Len(t, options, 1, "option of a %s vote must survive", statut)
	}
}

func TestListOptions(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	voteID := testutil.CreateTestVote(t, conn, "Colors", models.StatutEnAttente)
	other := testutil.CreateTestVote(t, conn, "Other", models.StatutEnAttente)
	testutil.AddTestOption(t, conn, voteID, "Red")
	testutil.AddTestOption(t, conn, voteID, "Blue")
	testutil.AddTestOption(t, conn, voteID, "Green")
	testutil.AddTestOption(t, conn, other, "Alpha")

	options, err := svc.ListOptions(ctx, voteID)
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, "Blue", options[0].Libelle)
	assert.Equal(t, "Green", options[1].Libelle)
	assert.Equal(t, "Red", options[2].Libelle)

	none, err := svc.ListOptions(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.ListAllOptions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Alpha", all[0].Libelle)
	assert.Equal(t, "Other", all[0].VoteTitre)
	assert.Equal(t, "Colors", all[1].VoteTitre)
}
