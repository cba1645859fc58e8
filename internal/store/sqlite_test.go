package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "calls.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLogAndRecentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &Interaction{
		Language:   "English",
		Transcript: "I want to book an appointment",
		Intent:     "APPOINTMENT",
		Response:   "Sure, what day works best for you?",
		Summary:    "User called to book or manage an appointment.",
	}
	id, err := s.Log(ctx, rec)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, id, got[0].ID)
	require.Equal(t, rec.Language, got[0].Language)
	require.Equal(t, rec.Transcript, got[0].Transcript)
	require.Equal(t, rec.Intent, got[0].Intent)
	require.Equal(t, rec.Response, got[0].Response)
	require.Equal(t, rec.Summary, got[0].Summary)
	require.False(t, got[0].Timestamp.IsZero())
}

func TestLogAssignsMonotonicIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.Log(ctx, &Interaction{
			Language: "English", Transcript: "hello", Intent: "OUT_OF_SCOPE", Response: "fallback",
		})
		require.NoError(t, err)
		require.Greater(t, id, last)
		last = id
	}
}

func TestRecentNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := s.Log(ctx, &Interaction{
			Language: "English", Transcript: text, Intent: "OUT_OF_SCOPE", Response: "fallback",
		})
		require.NoError(t, err)
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "third", got[0].Transcript)
	require.Equal(t, "second", got[1].Transcript)
}

func TestStatsAggregateConsistency(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []Interaction{
		{Language: "English", Intent: "APPOINTMENT"},
		{Language: "English", Intent: "CLINIC_INFO"},
		{Language: "Hindi", Intent: "APPOINTMENT"},
		{Language: "Marathi", Intent: "OUT_OF_SCOPE"},
		{Language: "Hindi", Intent: "OUT_OF_SCOPE"},
	}
	for i := range seed {
		seed[i].Transcript = "t"
		seed[i].Response = "r"
		_, err := s.Log(ctx, &seed[i])
		require.NoError(t, err)
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, stats.Total)
	require.Equal(t, 2, stats.ByIntent["APPOINTMENT"])
	require.Equal(t, 2, stats.ByIntent["OUT_OF_SCOPE"])
	require.Equal(t, 2, stats.ByLanguage["English"])
	require.Equal(t, 2, stats.ByLanguage["Hindi"])

	sumIntent, sumLang := 0, 0
	for _, n := range stats.ByIntent {
		sumIntent += n
	}
	for _, n := range stats.ByLanguage {
		sumLang += n
	}
	require.Equal(t, stats.Total, sumIntent)
	require.Equal(t, stats.Total, sumLang)
}

func TestStatsEmptyStore(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.Total)
	require.Empty(t, stats.ByIntent)
	require.Empty(t, stats.ByLanguage)
}
