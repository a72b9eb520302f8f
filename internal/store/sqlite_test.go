package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/interview-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testRecord(role string, readiness int, date time.Time) model.InterviewRecord {
	return model.InterviewRecord{
		Role:      role,
		Questions: []string{"Tell me about yourself.", "What is your biggest strength?"},
		Answers:   []string{"I am a " + role + ".", "Persistence."},
		Scores: []model.ScoreBreakdown{
			{Clarity: 82, Relevance: 77, Confidence: 88},
			{Clarity: 71, Relevance: 89, Confidence: 74},
		},
		Readiness: readiness,
		Date:      date,
	}
}

func TestSQLite_GetUser_LazyCreate(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	profile, err := st.GetUser(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Empty(t, profile.Name)
	assert.Empty(t, profile.Education)
	assert.Empty(t, profile.PastInterviews)
	assert.True(t, profile.Incomplete())

	// Second fetch finds the created row rather than recreating it.
	again, err := st.GetUser(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, profile.Email, again.Email)
	assert.Empty(t, again.PastInterviews)
}

func TestSQLite_UpdateProfile(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.GetUser(ctx, "ada@example.com")
	require.NoError(t, err)

	err = st.UpdateProfile(ctx, "ada@example.com", model.ProfileUpdate{Name: "Ada", Education: "BSc Mathematics"})
	require.NoError(t, err)

	profile, err := st.GetUser(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "BSc Mathematics", profile.Education)
	assert.False(t, profile.Incomplete())
}

func TestSQLite_UpdateProfile_CreatesAbsentUser(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	err := st.UpdateProfile(ctx, "new@example.com", model.ProfileUpdate{Name: "New", Education: "MSc"})
	require.NoError(t, err)

	profile, err := st.GetUser(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New", profile.Name)
	assert.Equal(t, "MSc", profile.Education)
}

func TestSQLite_AppendInterview_RoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	date := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	record := testRecord("Data Analyst", 81, date)

	require.NoError(t, st.AppendInterview(ctx, "ada@example.com", record))

	got, err := st.ListInterviews(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)

	// Submitted fields come back unchanged.
	assert.Equal(t, record.Role, got[0].Role)
	assert.Equal(t, record.Questions, got[0].Questions)
	assert.Equal(t, record.Answers, got[0].Answers)
	assert.Equal(t, record.Scores, got[0].Scores)
	assert.Equal(t, record.Readiness, got[0].Readiness)
	assert.True(t, record.Date.Equal(got[0].Date))
}

func TestSQLite_AppendInterview_CreatesUser(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	// No prior GetUser; the append upserts the profile row.
	record := testRecord("UX Designer", 65, time.Now().UTC())
	require.NoError(t, st.AppendInterview(ctx, "new@example.com", record))

	profile, err := st.GetUser(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Empty(t, profile.Name)
	require.Len(t, profile.PastInterviews, 1)
	assert.Equal(t, "UX Designer", profile.PastInterviews[0].Role)
}

func TestSQLite_AppendInterview_AssignsDate(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	record := testRecord("Data Analyst", 70, time.Time{})
	require.NoError(t, st.AppendInterview(ctx, "ada@example.com", record))

	got, err := st.ListInterviews(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Date.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), got[0].Date, time.Minute)
}

func TestSQLite_AppendInterview_RejectsMalformed(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	record := testRecord("Data Analyst", 81, time.Now().UTC())
	record.Answers = record.Answers[:1]

	err := st.AppendInterview(ctx, "ada@example.com", record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misaligned")

	// Nothing was persisted.
	got, err := st.ListInterviews(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_ListInterviews_InsertionOrder(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, role := range []string{"Data Analyst", "UX Designer", "Data Analyst"} {
		require.NoError(t, st.AppendInterview(ctx, "ada@example.com",
			testRecord(role, 60+i, base.AddDate(0, i, 0))))
	}

	got, err := st.ListInterviews(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Data Analyst", "UX Designer", "Data Analyst"},
		[]string{got[0].Role, got[1].Role, got[2].Role})
	assert.Equal(t, []int{60, 61, 62}, []int{got[0].Readiness, got[1].Readiness, got[2].Readiness})
}

func TestSQLite_ListInterviews_EmptyUser(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.ListInterviews(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_ZeroQuestionRecord(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	record := model.InterviewRecord{Role: "Other", Readiness: 0, Date: time.Now().UTC()}
	require.NoError(t, st.AppendInterview(ctx, "ada@example.com", record))

	got, err := st.ListInterviews(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Questions)
	assert.Zero(t, got[0].Readiness)
}
