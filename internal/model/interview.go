package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// ScoreBreakdown holds the per-answer metric percentages.
type ScoreBreakdown struct {
	Clarity    int `json:"clarity"`
	Relevance  int `json:"relevance"`
	Confidence int `json:"confidence"`
}

// Clamp returns a copy with every metric forced into [0,100].
func (s ScoreBreakdown) Clamp() ScoreBreakdown {
	return ScoreBreakdown{
		Clarity:    clampPercent(s.Clarity),
		Relevance:  clampPercent(s.Relevance),
		Confidence: clampPercent(s.Confidence),
	}
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// InterviewRecord is one completed practice session as persisted on the
// user's profile. Questions, Answers and Scores are index-aligned.
type InterviewRecord struct {
	Role      string           `json:"role"`
	Questions []string         `json:"questions"`
	Answers   []string         `json:"answers"`
	Scores    []ScoreBreakdown `json:"scores"`
	Readiness int              `json:"readiness"`
	Date      time.Time        `json:"date"`
}

// Validate checks the record shape before it reaches the store: a role must
// be present, the three sequences must be index-aligned, and readiness must
// be a percentage. Zero-question records are valid (a run with no questions
// completes immediately).
func (r *InterviewRecord) Validate() error {
	if r.Role == "" {
		return eris.New("interview record: role is required")
	}
	if len(r.Questions) != len(r.Answers) || len(r.Questions) != len(r.Scores) {
		return eris.Errorf("interview record: misaligned sequences (%d questions, %d answers, %d scores)",
			len(r.Questions), len(r.Answers), len(r.Scores))
	}
	if r.Readiness < 0 || r.Readiness > 100 {
		return eris.Errorf("interview record: readiness %d out of range", r.Readiness)
	}
	for i, s := range r.Scores {
		if s != s.Clamp() {
			return eris.Errorf("interview record: score %d out of range", i)
		}
	}
	return nil
}
