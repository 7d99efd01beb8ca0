package risk

import (
	"fmt"
	"math"
)

// Level thresholds partitioning [0,100]. A score at or above the threshold
// carries the level.
const (
	levelCriticalMin = 80
	levelHighMin     = 60
	levelMediumMin   = 40
)

// Assessment is the bounded risk score with its derived level and the
// multiplier that produced it.
type Assessment struct {
	Score      int              `json:"score"`
	Level      Severity         `json:"level"`
	Multiplier StressMultiplier `json:"multiplier"`
}

// LevelForScore derives the discrete risk level from a 0-100 score:
// Critical >= 80, High >= 60, Medium >= 40, Low otherwise.
func LevelForScore(score int) Severity {
	switch {
	case score >= levelCriticalMin:
		return SeverityCritical
	case score >= levelHighMin:
		return SeverityHigh
	case score >= levelMediumMin:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Score combines the factor vector and stress multiplier into a bounded
// score: raw = sum(weight * presence), scaled = raw * multiplier,
// score = min(100, round(scaled)). A raw sum outside [0, weight total]
// signals corrupt table data and fails with ErrInvariantViolation rather
// than returning an out-of-range value.
func Score(t *Taxonomy, v FactorVector, m StressMultiplier) (*Assessment, error) {
	raw := v.RawScore()

	if raw < 0 {
		return nil, fmt.Errorf("%w: negative raw score %.2f", ErrInvariantViolation, raw)
	}
	if maxRaw := float64(t.WeightTotal()); raw > maxRaw {
		return nil, fmt.Errorf("%w: raw score %.2f exceeds weight total %.0f", ErrInvariantViolation, raw, maxRaw)
	}

	scaled := raw * m.Value
	score := int(math.Round(scaled))
	if score > 100 {
		score = 100
	}

	return &Assessment{
		Score:      score,
		Level:      LevelForScore(score),
		Multiplier: m,
	}, nil
}
