package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mockmate/interview-cli/internal/capture"
	"github.com/mockmate/interview-cli/internal/model"
	"github.com/mockmate/interview-cli/internal/scoring"
	"github.com/mockmate/interview-cli/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the router's CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is what the browser sends over the live session socket.
type clientMessage struct {
	Type string `json:"type"` // start | segment | stop | fail | next
	Role string `json:"role,omitempty"`
	Text string `json:"text,omitempty"`
}

// serverMessage is what the server sends back.
type serverMessage struct {
	Type      string                `json:"type"` // question | transcript | answer | complete | error
	Index     int                   `json:"index,omitempty"`
	Total     int                   `json:"total,omitempty"`
	Text      string                `json:"text,omitempty"`
	Scores    *model.ScoreBreakdown `json:"scores,omitempty"`
	Feedback  string                `json:"feedback,omitempty"`
	Averages  *model.ScoreBreakdown `json:"averages,omitempty"`
	Readiness int                   `json:"readiness,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// handleLiveSession drives one interview run over a websocket. The client
// streams finalized speech segments; the server owns the capture adapter and
// the state machine, so question transitions stay strictly sequential.
func (s *Server) handleLiveSession(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var start clientMessage
	if err := conn.ReadJSON(&start); err != nil || start.Type != "start" || start.Role == "" {
		conn.WriteJSON(serverMessage{Type: "error", Error: "expected start message with a role"}) //nolint:errcheck
		return
	}

	qs, err := s.source.ForRole(r.Context(), start.Role)
	if err != nil {
		s.log.Error("fetch questions failed", zap.String("role", start.Role), zap.Error(err))
		conn.WriteJSON(serverMessage{Type: "error", Error: "failed to load questions"}) //nolint:errcheck
		return
	}

	recorder := session.RecorderFunc(func(ctx context.Context, record model.InterviewRecord) error {
		return s.store.AppendInterview(ctx, id.Email, record)
	})

	machine := session.New(start.Role, s.strategy, recorder)

	adapter := capture.New(func(transcript string) {
		machine.SetTranscript(transcript)
		conn.WriteJSON(serverMessage{Type: "transcript", Text: transcript}) //nolint:errcheck
	})

	if err := machine.Begin(r.Context(), qs); err != nil {
		conn.WriteJSON(serverMessage{Type: "error", Error: "session already started"}) //nolint:errcheck
		return
	}
	if machine.State() == session.StateComplete {
		s.sendComplete(conn, machine)
		return
	}

	s.sendQuestion(conn, machine)
	adapter.Start() //nolint:errcheck

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			// Client gone. Partial progress is not persisted.
			return
		}

		switch msg.Type {
		case "segment":
			adapter.Push(msg.Text)
		case "stop":
			adapter.Stop()
		case "fail":
			// Recognition error on the client: no transcript for this try.
			adapter.Fail()
		case "next":
			index := machine.CurrentIndex()
			if err := machine.Next(r.Context()); err != nil {
				conn.WriteJSON(serverMessage{Type: "error", Error: "no question awaiting an answer"}) //nolint:errcheck
				continue
			}

			answers := machine.Answers()
			scores := answers[len(answers)-1].Scores
			conn.WriteJSON(serverMessage{ //nolint:errcheck
				Type:     "answer",
				Index:    index,
				Scores:   &scores,
				Feedback: scoring.RandomFeedback(),
			})

			if machine.State() == session.StateComplete {
				s.sendComplete(conn, machine)
				return
			}
			s.sendQuestion(conn, machine)
			adapter.Start() //nolint:errcheck
		default:
			conn.WriteJSON(serverMessage{Type: "error", Error: "unknown message type"}) //nolint:errcheck
		}
	}
}

func (s *Server) sendQuestion(conn *websocket.Conn, machine *session.Machine) {
	text, ok := machine.CurrentQuestion()
	if !ok {
		return
	}
	conn.WriteJSON(serverMessage{ //nolint:errcheck
		Type:  "question",
		Index: machine.CurrentIndex(),
		Total: len(machine.Questions()),
		Text:  text,
	})
}

func (s *Server) sendComplete(conn *websocket.Conn, machine *session.Machine) {
	averages := machine.Averages()
	conn.WriteJSON(serverMessage{ //nolint:errcheck
		Type:      "complete",
		Readiness: machine.Readiness(),
		Averages:  &averages,
	})
}
