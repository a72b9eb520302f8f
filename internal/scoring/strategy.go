// Package scoring isolates answer evaluation behind a strategy interface so
// the placeholder logic can be swapped for a real evaluator without touching
// the session state machine.
package scoring

import (
	"math/rand/v2"
	"time"

	"github.com/mockmate/interview-cli/internal/config"
	"github.com/mockmate/interview-cli/internal/model"
)

// Strategy evaluates answers and overall session readiness.
type Strategy interface {
	// ScoreAnswer produces the per-answer metric percentages.
	ScoreAnswer(question, answer string) model.ScoreBreakdown

	// Readiness produces the single aggregate percentage for a completed
	// session. An empty score list means a zero-question run and yields 0.
	Readiness(scores []model.ScoreBreakdown) int
}

// RandomStrategy draws every metric uniformly from the configured ranges.
// It stands in for a real evaluator; the ranges default to [70,90] per
// metric and [60,95] for readiness.
type RandomStrategy struct {
	cfg config.ScoringConfig
	rng *rand.Rand
}

// NewRandom creates a RandomStrategy seeded from the clock.
func NewRandom(cfg config.ScoringConfig) *RandomStrategy {
	now := uint64(time.Now().UnixNano())
	return NewRandomWithSource(cfg, rand.New(rand.NewPCG(now, now>>32)))
}

// NewRandomWithSource creates a RandomStrategy with an explicit source,
// used by tests that need deterministic draws.
func NewRandomWithSource(cfg config.ScoringConfig, rng *rand.Rand) *RandomStrategy {
	if cfg.MetricMax < cfg.MetricMin {
		cfg.MetricMax = cfg.MetricMin
	}
	if cfg.ReadinessMax < cfg.ReadinessMin {
		cfg.ReadinessMax = cfg.ReadinessMin
	}
	return &RandomStrategy{cfg: cfg, rng: rng}
}

func (s *RandomStrategy) ScoreAnswer(question, answer string) model.ScoreBreakdown {
	return model.ScoreBreakdown{
		Clarity:    s.draw(s.cfg.MetricMin, s.cfg.MetricMax),
		Relevance:  s.draw(s.cfg.MetricMin, s.cfg.MetricMax),
		Confidence: s.draw(s.cfg.MetricMin, s.cfg.MetricMax),
	}
}

func (s *RandomStrategy) Readiness(scores []model.ScoreBreakdown) int {
	if len(scores) == 0 {
		return 0
	}
	return s.draw(s.cfg.ReadinessMin, s.cfg.ReadinessMax)
}

func (s *RandomStrategy) draw(min, max int) int {
	return min + s.rng.IntN(max-min+1)
}
