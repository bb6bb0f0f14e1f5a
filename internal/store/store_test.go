package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsehgal/adaptest/internal/assessment"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResults(sessionID string, theta float64) *assessment.Results {
	return &assessment.Results{
		SessionID:      sessionID,
		FinalTheta:     theta,
		FinalSem:       0.3,
		Accuracy:       0.8,
		QuestionsAsked: 12,
		Tier:           "Intermediate",
		Responses: []assessment.Response{
			{QuestionID: "q-1", IsCorrect: true, Difficulty: 0.2, ThetaAfter: theta},
		},
	}
}

func TestHistoryRepo_SaveAndRecent(t *testing.T) {
	repo := openTestStore(t).HistoryRepo()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, "ada", "algebra-1", sampleResults("s-1", 0.4), base))
	require.NoError(t, repo.Save(ctx, "ada", "algebra-1", sampleResults("s-2", 0.9), base.Add(time.Hour)))

	entries, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "s-2", entries[0].SessionID)
	assert.Equal(t, 0.9, entries[0].FinalTheta)
	assert.Equal(t, "algebra-1", entries[0].ItemBank)
	assert.Equal(t, "ada", entries[0].Username)
}

func TestHistoryRepo_SaveIsIdempotentPerSession(t *testing.T) {
	repo := openTestStore(t).HistoryRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, "ada", "algebra-1", sampleResults("s-1", 0.4), now))
	require.NoError(t, repo.Save(ctx, "ada", "algebra-1", sampleResults("s-1", 0.7), now))

	entries, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.7, entries[0].FinalTheta)
}

func TestHistoryRepo_ResultsRoundTrip(t *testing.T) {
	repo := openTestStore(t).HistoryRepo()
	ctx := context.Background()

	saved := sampleResults("s-1", 0.4)
	require.NoError(t, repo.Save(ctx, "ada", "algebra-1", saved, time.Now().UTC()))

	loaded, err := repo.Results(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, saved.FinalTheta, loaded.FinalTheta)
	require.Len(t, loaded.Responses, 1)
	assert.Equal(t, "q-1", loaded.Responses[0].QuestionID)
}

func TestHistoryRepo_ResultsNotFound(t *testing.T) {
	repo := openTestStore(t).HistoryRepo()

	_, err := repo.Results(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryRepo_RecentLimit(t *testing.T) {
	repo := openTestStore(t).HistoryRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		require.NoError(t, repo.Save(ctx, "ada", "algebra-1",
			sampleResults("s-"+id, float64(i)), now.Add(time.Duration(i)*time.Minute)))
	}

	entries, err := repo.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
