package risk

import (
	"context"
	"log/slog"
	"time"
)

// Provenance tags how a stress multiplier was obtained.
type Provenance string

const (
	ProvenanceMeasured        Provenance = "measured"
	ProvenanceDefaultFallback Provenance = "default-fallback"
)

// Multiplier bounds. Provider values outside the band are clamped.
const (
	MultiplierMin     = 1.0
	MultiplierMax     = 2.0
	MultiplierDefault = 1.0
)

// StressMultiplier is an external, bounded scalar representing
// macro-economic conditions that amplify computed risk.
type StressMultiplier struct {
	Value      float64    `json:"value"`
	Provenance Provenance `json:"provenance"`
}

// DefaultMultiplier is the value substituted when no provider is available.
func DefaultMultiplier() StressMultiplier {
	return StressMultiplier{Value: MultiplierDefault, Provenance: ProvenanceDefaultFallback}
}

// StressProvider supplies the economic stress multiplier. Implementations
// live outside the core; the engine only consumes this interface.
type StressProvider interface {
	GetMultiplier(ctx context.Context) (StressMultiplier, error)
}

// StaticProvider returns a fixed multiplier. Used in tests and as the
// network-free default implementation.
type StaticProvider struct {
	Value float64
}

func (p StaticProvider) GetMultiplier(_ context.Context) (StressMultiplier, error) {
	return StressMultiplier{Value: p.Value, Provenance: ProvenanceMeasured}, nil
}

// ClampMultiplier forces a value into [MultiplierMin, MultiplierMax].
func ClampMultiplier(v float64) float64 {
	if v < MultiplierMin {
		return MultiplierMin
	}
	if v > MultiplierMax {
		return MultiplierMax
	}
	return v
}

// ResolveMultiplier obtains the stress multiplier from the provider under a
// bounded timeout. A nil provider, provider error, or timeout yields the
// default multiplier tagged default-fallback; provider failure never aborts
// an assessment.
func ResolveMultiplier(ctx context.Context, p StressProvider, timeout time.Duration) StressMultiplier {
	if p == nil {
		return DefaultMultiplier()
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	m, err := p.GetMultiplier(ctx)
	if err != nil {
		slog.Warn("stress provider unavailable, using default multiplier", "error", err)
		return DefaultMultiplier()
	}

	m.Value = ClampMultiplier(m.Value)
	if m.Provenance == "" {
		m.Provenance = ProvenanceMeasured
	}
	return m
}
