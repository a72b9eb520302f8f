package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/interview-cli/internal/model"
)

func dialSession(t *testing.T, st *fakeStore, token string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(newTestServer(t, st))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/session/live"
	if token != "" {
		url += "?token=" + token
	}
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		require.NotNil(t, resp)
		t.Fatalf("dial: %v (status %d)", err, resp.StatusCode)
	}
	if resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	var msg serverMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestLiveSessionRequiresToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newTestServer(t, newFakeStore()))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/session/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLiveSessionFullRun(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	conn := dialSession(t, st, goodToken)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "start", Role: "Data Analyst"}))

	first := readMessage(t, conn)
	require.Equal(t, "question", first.Type)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, "Q1", first.Text)

	// Two finalized speech segments join into one transcript.
	require.NoError(t, conn.WriteJSON(clientMessage{Type: "segment", Text: "I used"}))
	require.NoError(t, conn.WriteJSON(clientMessage{Type: "segment", Text: "SQL daily"}))
	require.NoError(t, conn.WriteJSON(clientMessage{Type: "stop"}))

	transcript := readMessage(t, conn)
	require.Equal(t, "transcript", transcript.Type)
	assert.Equal(t, "I used SQL daily", transcript.Text)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "next"}))

	answer := readMessage(t, conn)
	require.Equal(t, "answer", answer.Type)
	assert.Equal(t, 0, answer.Index)
	require.NotNil(t, answer.Scores)
	assert.Equal(t, model.ScoreBreakdown{Clarity: 80, Relevance: 75, Confidence: 85}, *answer.Scores)
	assert.NotEmpty(t, answer.Feedback)

	second := readMessage(t, conn)
	require.Equal(t, "question", second.Type)
	assert.Equal(t, "Q2", second.Text)

	// Recognition failure: the second question goes unanswered.
	require.NoError(t, conn.WriteJSON(clientMessage{Type: "fail"}))
	require.NoError(t, conn.WriteJSON(clientMessage{Type: "next"}))

	msg := readMessage(t, conn)
	require.Equal(t, "answer", msg.Type)

	done := readMessage(t, conn)
	require.Equal(t, "complete", done.Type)
	assert.Equal(t, 77, done.Readiness)
	require.NotNil(t, done.Averages)
	assert.Equal(t, model.ScoreBreakdown{Clarity: 80, Relevance: 75, Confidence: 85}, *done.Averages)

	// The run was submitted exactly once before the complete frame went out.
	stored := st.profiles[userEmail].PastInterviews
	require.Len(t, stored, 1)
	assert.Equal(t, "Data Analyst", stored[0].Role)
	assert.Equal(t, []string{"Q1", "Q2"}, stored[0].Questions)
	assert.Equal(t, []string{"I used SQL daily", ""}, stored[0].Answers)
	assert.Equal(t, 77, stored[0].Readiness)
	assert.False(t, stored[0].Date.IsZero())
}

func TestLiveSessionEmptyQuestionList(t *testing.T) {
	t.Parallel()

	st := newFakeStore()
	conn := dialSession(t, st, goodToken)

	// The fake source has no questions for this role.
	require.NoError(t, conn.WriteJSON(clientMessage{Type: "start", Role: "Unknown Role"}))

	done := readMessage(t, conn)
	require.Equal(t, "complete", done.Type)
	assert.Equal(t, 0, done.Readiness)

	stored := st.profiles[userEmail].PastInterviews
	require.Len(t, stored, 1)
	assert.Empty(t, stored[0].Questions)
	assert.Empty(t, stored[0].Answers)
	assert.Equal(t, 0, stored[0].Readiness)
}

func TestLiveSessionRejectsMissingStart(t *testing.T) {
	t.Parallel()

	conn := dialSession(t, newFakeStore(), goodToken)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "segment", Text: "hello"}))

	msg := readMessage(t, conn)
	require.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "start")
}
