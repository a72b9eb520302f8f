package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mockmate/interview-cli/internal/model"
)

func TestFormatSessions(t *testing.T) {
	t.Parallel()

	records := []model.InterviewRecord{
		{
			Role:      "Data Analyst",
			Questions: []string{"Q1", "Q2"},
			Answers:   []string{"A1", "A2"},
			Scores:    make([]model.ScoreBreakdown, 2),
			Readiness: 82,
			Date:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			Role:      "UX Designer",
			Questions: []string{"Q1"},
			Answers:   []string{"A1"},
			Scores:    make([]model.ScoreBreakdown, 1),
			Readiness: 64,
			Date:      time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		},
	}

	var out strings.Builder
	formatSessions(&out, records)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "DATE")
	assert.Contains(t, lines[0], "READINESS")
	assert.Contains(t, lines[1], "2024-03-01")
	assert.Contains(t, lines[1], "Data Analyst")
	assert.Contains(t, lines[1], "82%")
	assert.Contains(t, lines[2], "2024-01-15")
	assert.Contains(t, lines[2], "64%")
}
