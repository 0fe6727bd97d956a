// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/isoloir/models"
	"github.com/danielhkuo/isoloir/testutil"
)

// TestBestColor walks one vote through its whole life: five electors, one of
// whom never votes, three colors, one of which gets nothing.
func TestBestColor(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	vote, err := svc.CreateVote(ctx, "Best Color", "")
	require.NoError(t, err)
	red, err := svc.AddOption(ctx, vote.ID, "Red", "", "")
	require.NoError(t, err)
	blue, err := svc.AddOption(ctx, vote.ID, "Blue", "", "")
	require.NoError(t, err)
	green, err := svc.AddOption(ctx, vote.ID, "Green", "", "")
	require.NoError(t, err)

	_, err = svc.TransitionStatus(ctx, vote.ID, models.StatutActive)
	require.NoError(t, err)

	electeurs := testutil.CreateTestElecteurs(t, conn, 5)
	choices := []int64{red.ID, red.ID, blue.ID, red.ID}
	for i, choice := range choices {
		jeton, err := svc.IssueToken(ctx, electeurs[i], vote.ID)
		require.NoError(t, err)
		_, err = svc.CastBallot(ctx, jeton, choice)
		require.NoError(t, err)
	}
	// Fifth elector takes a jeton and abstains
	_, err = svc.IssueToken(ctx, electeurs[4], vote.ID)
	require.NoError(t, err)

	_, _, err = svc.ComputeOrFetchResults(ctx, vote.ID)
	assert.ErrorIs(t, err, ErrNotYetTerminated)

	_, err = svc.TransitionStatus(ctx, vote.ID, models.StatutTerminee)
	require.NoError(t, err)

	resultats, deja, err := svc.ComputeOrFetchResults(ctx, vote.ID)
	require.NoError(t, err)
	assert.False(t, deja)
	require.Len(t, resultats, 3)

	counts := map[int64]int64{}
	for _, r := range resultats {
		counts[r.OptionID] = r.NombreBulletins
		assert.Equal(t, vote.ID, r.VoteID)
	}
	assert.Equal(t, int64(3), counts[red.ID])
	assert.Equal(t, int64(1), counts[blue.ID])
	assert.Equal(t, int64(0), counts[green.ID], "options without bulletins are reported")
	assert.Equal(t, int64(4), TotalBulletins(resultats))
	assert.Equal(t, []int64{red.ID}, Winners(resultats))

	// Second call returns the stored tally unchanged
	cached, deja, err := svc.ComputeOrFetchResults(ctx, vote.ID)
	require.NoError(t, err)
	assert.True(t, deja)
	require.Len(t, cached, len(resultats))
	for i := range cached {
		assert.Equal(t, resultats[i].OptionID, cached[i].OptionID)
		assert.Equal(t, resultats[i].Libelle, cached[i].Libelle)
		assert.Equal(t, resultats[i].NombreBulletins, cached[i].NombreBulletins)
		assert.True(t, resultats[i].DateDecompte.Equal(cached[i].DateDecompte))
	}

	stats, err := svc.Statistics(ctx, vote.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalElecteurs)
	assert.Equal(t, int64(5), stats.JetonsDistribues)
	assert.Equal(t, int64(4), stats.JetonsUtilises)
	assert.Equal(t, int64(3), stats.TotalOptions)
	assert.Equal(t, int64(4), stats.TotalBulletins)
	assert.Equal(t, 80.0, stats.TauxParticipation)
}

// TestComputeOrFetchResults_StoredTallyIsFinal checks that bulletins written
// after the first tally never change the stored counts.
func TestComputeOrFetchResults_StoredTallyIsFinal(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	voteID := testutil.CreateTestVote(t, conn, "Vote", models.StatutActive)
	a := testutil.AddTestOption(t, conn, voteID, "A")
	b := testutil.AddTestOption(t, conn, voteID, "B")
	for i, id := range testutil.CreateTestElecteurs(t, conn, 2) {
		jeton, err := svc.IssueToken(ctx, id, voteID)
		require.NoError(t, err)
		_, err = svc.CastBallot(ctx, jeton, []int64{a, b}[i])
		require.NoError(t, err)
	}
	testutil.SetVoteStatus(t, conn, voteID, models.StatutTerminee)

	first, deja, err := svc.ComputeOrFetchResults(ctx, voteID)
	require.NoError(t, err)
	assert.False(t, deja)

	// Written behind the service's back, after the tally
	_, err = conn.Exec(conn.Rebind(`
		INSERT INTO bulletins (id, vote_id, option_id, date_bulletin)
		VALUES (?, ?, ?, ?)
	`), "late-bulletin", voteID, a, time.Now().UTC())
	require.NoError(t, err)

	second, deja, err := svc.ComputeOrFetchResults(ctx, voteID)
	require.NoError(t, err)
	assert.True(t, deja)

	counts := func(rs []models.Resultat) map[int64]int64 {
		m := map[int64]int64{}
		for _, r := range rs {
			m[r.OptionID] = r.NombreBulletins
		}
		return m
	}
	assert.Equal(t, map[int64]int64{a: 1, b: 1}, counts(first))
	assert.Equal(t, counts(first), counts(second))
	assert.Equal(t, int64(2), TotalBulletins(second))
}

func TestComputeOrFetchResults_Errors(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.ComputeOrFetchResults(ctx, 999)
	assert.ErrorIs(t, err, ErrVoteNotFound)

	for _, statut := range []string{models.StatutEnAttente, models.StatutActive} {
		voteID := testutil.CreateTestVote(t, conn, "Vote", statut)
		_, _, err := svc.ComputeOrFetchResults(ctx, voteID)
		assert.ErrorIs(t, err, ErrNotYetTerminated, statut)
	}
}

func TestComputeOrFetchResults_NoBallots(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	voteID := testutil.CreateTestVote(t, conn, "Empty", models.StatutTerminee)
	testutil.AddTestOption(t, conn, voteID, "A")
	testutil.AddTestOption(t, conn, voteID, "B")

	resultats, deja, err := svc.ComputeOrFetchResults(ctx, voteID)
	require.NoError(t, err)
	assert.False(t, deja)
	require.Len(t, resultats, 2)
	assert.Empty(t, Winners(resultats))
	assert.Zero(t, TotalBulletins(resultats))
}

func TestComputeOrFetchResults_Concurrent(t *testing.T) {
	svc, conn := newTestService(t)

	voteID := testutil.CreateTestVote(t, conn, "Vote", models.StatutTerminee)
	testutil.AddTestOption(t, conn, voteID, "A")
	testutil.AddTestOption(t, conn, voteID, "B")

	const callers = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		computed int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, deja, err := svc.ComputeOrFetchResults(context.Background(), voteID)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if !deja {
				mu.Lock()
				computed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, computed, "exactly one caller computes the tally")

	var rows int
	require.NoError(t, conn.QueryRow(conn.Rebind("SELECT COUNT(*) FROM resultats WHERE vote_id = ?"), voteID).Scan(&rows))
	assert.Equal(t, 2, rows)
}

func TestWinners(t *testing.T) {
	res := func(counts ...int64) []models.Resultat {
		out := make([]models.Resultat, len(counts))
		for i, c := range counts {
			out[i] = models.Resultat{OptionID: int64(i + 1), NombreBulletins: c}
		}
		return out
	}

	tests := []struct {
		name      string
		resultats []models.Resultat
		want      []int64
	}{
		{"single winner", res(3, 1, 0), []int64{1}},
		{"two-way tie", res(2, 2, 1), []int64{1, 2}},
		{"everyone tied", res(1, 1, 1), []int64{1, 2, 3}},
		{"no bulletins", res(0, 0), []int64{}},
		{"no options", nil, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Winners(tt.resultats))
		})
	}
}

func TestParticipationRate(t *testing.T) {
	tests := []struct {
		used, electeurs int64
		want            float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 10, 0},
		{4, 5, 80},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{10, 10, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParticipationRate(tt.used, tt.electeurs), "%d/%d", tt.used, tt.electeurs)
	}
}

func TestListResultsAndStatistics(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	older := testutil.CreateTestVote(t, conn, "Older", models.StatutActive)
	a := testutil.AddTestOption(t, conn, older, "A")
	b := testutil.AddTestOption(t, conn, older, "B")
	newer := testutil.CreateTestVote(t, conn, "Newer", models.StatutActive)
	c := testutil.AddTestOption(t, conn, newer, "C")

	electeurs := testutil.CreateTestElecteurs(t, conn, 4)
	cast := func(electeur, vote, option int64) {
		jeton, err := svc.IssueToken(ctx, electeur, vote)
		require.NoError(t, err)
		_, err = svc.CastBallot(ctx, jeton, option)
		require.NoError(t, err)
	}
	cast(electeurs[0], older, b)
	cast(electeurs[1], older, b)
	cast(electeurs[2], older, a)
	cast(electeurs[0], newer, c)

	empty, err := svc.ListResults(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty, "nothing is published before a tally")

	for _, id := range []int64{older, newer} {
		_, err := svc.TransitionStatus(ctx, id, models.StatutTerminee)
		require.NoError(t, err)
		_, _, err = svc.ComputeOrFetchResults(ctx, id)
		require.NoError(t, err)
	}

	resultats, err := svc.ListResults(ctx)
	require.NoError(t, err)
	require.Len(t, resultats, 3)
	assert.Equal(t, newer, resultats[0].VoteID)
	assert.Equal(t, b, resultats[1].OptionID, "highest count first within a vote")
	assert.Equal(t, int64(2), resultats[1].NombreBulletins)
	assert.Equal(t, a, resultats[2].OptionID)

	global, err := svc.Statistics(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, models.Statistiques{
		TotalElecteurs:    4,
		JetonsDistribues:  4,
		JetonsUtilises:    4,
		TotalOptions:      3,
		TotalBulletins:    4,
		TotalVotes:        2,
		TauxParticipation: 100,
	}, global)

	_, err = svc.Statistics(ctx, 999)
	assert.ErrorIs(t, err, ErrVoteNotFound)
}
