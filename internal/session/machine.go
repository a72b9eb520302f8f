// Package session implements the interview run: one question at a time,
// answers accumulated with their scores, a single submission on completion.
package session

import (
	"context"
	"math"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/mockmate/interview-cli/internal/model"
	"github.com/mockmate/interview-cli/internal/scoring"
)

// State identifies where a session is in its lifecycle.
type State string

const (
	StateAwaitingQuestions State = "awaiting_questions"
	StateAsking            State = "asking"
	StateComplete          State = "complete"
)

// AnswerStat is one answered question with its metric percentages.
type AnswerStat struct {
	Answer string               `json:"answer"`
	Scores model.ScoreBreakdown `json:"scores"`
}

// Recorder receives the completed record. Submission is fire-and-forget from
// the machine's point of view: a failure is logged, never retried, and never
// rolls back the Complete state.
type Recorder interface {
	Record(ctx context.Context, record model.InterviewRecord) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(ctx context.Context, record model.InterviewRecord) error

func (f RecorderFunc) Record(ctx context.Context, record model.InterviewRecord) error {
	return f(ctx, record)
}

// Machine drives one interview session. It is owned by a single foreground
// driver; questions are never re-asked and there is no go-back transition.
type Machine struct {
	role      string
	questions []string
	index     int
	answers   []AnswerStat
	pending   string
	readiness int
	state     State
	record    model.InterviewRecord

	strategy scoring.Strategy
	recorder Recorder
	log      *zap.Logger
}

// New creates a machine in AwaitingQuestions for the given role.
func New(role string, strategy scoring.Strategy, recorder Recorder) *Machine {
	return &Machine{
		role:     role,
		state:    StateAwaitingQuestions,
		strategy: strategy,
		recorder: recorder,
		log:      zap.L(),
	}
}

// Begin supplies the question list and starts asking. An empty list is a
// valid terminal case: the run completes immediately with zero answers and
// readiness 0, and the empty record is still submitted.
func (m *Machine) Begin(ctx context.Context, questions []string) error {
	if m.state != StateAwaitingQuestions {
		return eris.Errorf("session: begin in state %s", m.state)
	}
	m.questions = questions
	if len(questions) == 0 {
		m.complete(ctx)
		return nil
	}
	m.state = StateAsking
	return nil
}

// State returns the current lifecycle state.
func (m *Machine) State() State { return m.state }

// Role returns the role this session practices for.
func (m *Machine) Role() string { return m.role }

// Questions returns the fixed question list for the run.
func (m *Machine) Questions() []string { return m.questions }

// CurrentIndex returns the zero-based index of the question being asked.
func (m *Machine) CurrentIndex() int { return m.index }

// CurrentQuestion returns the question awaiting an answer, if any.
func (m *Machine) CurrentQuestion() (string, bool) {
	if m.state != StateAsking {
		return "", false
	}
	return m.questions[m.index], true
}

// SetTranscript stores the latest capture result awaiting confirmation.
// A later capture replaces an earlier one for the same question.
func (m *Machine) SetTranscript(text string) {
	m.pending = text
}

// Transcript returns the pending capture result.
func (m *Machine) Transcript() string { return m.pending }

// Answers returns the accumulated answer statistics.
func (m *Machine) Answers() []AnswerStat { return m.answers }

// Next confirms the pending transcript as the answer to the current
// question: it is scored, appended, and the machine advances. After the last
// question the overall readiness is computed, the state becomes Complete,
// and the full record is submitted exactly once.
func (m *Machine) Next(ctx context.Context) error {
	if m.state != StateAsking {
		return eris.Errorf("session: next in state %s", m.state)
	}

	answer := m.pending
	scores := m.strategy.ScoreAnswer(m.questions[m.index], answer)
	m.answers = append(m.answers, AnswerStat{Answer: answer, Scores: scores})
	m.pending = ""

	if m.index+1 < len(m.questions) {
		m.index++
		return nil
	}
	m.index++
	m.complete(ctx)
	return nil
}

func (m *Machine) complete(ctx context.Context) {
	scores := make([]model.ScoreBreakdown, len(m.answers))
	answers := make([]string, len(m.answers))
	for i, a := range m.answers {
		answers[i] = a.Answer
		scores[i] = a.Scores
	}
	m.readiness = m.strategy.Readiness(scores)
	m.state = StateComplete

	m.record = model.InterviewRecord{
		Role:      m.role,
		Questions: m.questions,
		Answers:   answers,
		Scores:    scores,
		Readiness: m.readiness,
		Date:      time.Now().UTC(),
	}

	if err := m.recorder.Record(ctx, m.record); err != nil {
		m.log.Error("interview submission failed",
			zap.String("role", m.role),
			zap.Int("answers", len(m.answers)),
			zap.Error(err),
		)
	}
}

// Readiness returns the overall score; meaningful once Complete.
func (m *Machine) Readiness() int { return m.readiness }

// Result returns the assembled record; meaningful once Complete.
func (m *Machine) Result() model.InterviewRecord { return m.record }

// Averages returns the integer-rounded mean of each metric across the
// accumulated answers. An empty accumulator yields zeros.
func (m *Machine) Averages() model.ScoreBreakdown {
	n := len(m.answers)
	if n == 0 {
		return model.ScoreBreakdown{}
	}
	var sum model.ScoreBreakdown
	for _, a := range m.answers {
		sum.Clarity += a.Scores.Clarity
		sum.Relevance += a.Scores.Relevance
		sum.Confidence += a.Scores.Confidence
	}
	return model.ScoreBreakdown{
		Clarity:    roundDiv(sum.Clarity, n),
		Relevance:  roundDiv(sum.Relevance, n),
		Confidence: roundDiv(sum.Confidence, n),
	}
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
