package risk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_BoundedForAllMultipliers(t *testing.T) {
	tax := DefaultTaxonomy()
	vector := fullVector(tax)

	for _, m := range []float64{1.0, 1.25, 1.5, 1.75, 2.0} {
		a, err := Score(tax, vector, StressMultiplier{Value: m, Provenance: ProvenanceMeasured})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, a.Score, 0)
		assert.LessOrEqual(t, a.Score, 100)
	}
}

func TestScore_Clamping(t *testing.T) {
	tax := DefaultTaxonomy()
	vector := fullVector(tax)

	// raw 90 * 1.5 = 135, clamped to 100
	a, err := Score(tax, vector, StressMultiplier{Value: 1.5, Provenance: ProvenanceMeasured})
	require.NoError(t, err)
	assert.Equal(t, 100, a.Score)
	assert.Equal(t, SeverityCritical, a.Level)
}

func TestScore_EmptyVector(t *testing.T) {
	tax := DefaultTaxonomy()
	a, err := Score(tax, FactorVector{}, DefaultMultiplier())
	require.NoError(t, err)
	assert.Zero(t, a.Score)
	assert.Equal(t, SeverityLow, a.Level)
}

func TestScore_Monotonicity(t *testing.T) {
	tax := DefaultTaxonomy()
	m := StressMultiplier{Value: 1.2, Provenance: ProvenanceMeasured}

	vector := FactorVector{
		{ID: FactorDriftMonitoring, Weight: 25, Presence: 1},
	}
	base, err := Score(tax, vector, m)
	require.NoError(t, err)

	// adding a previously-absent factor never decreases the score
	vector = append(vector, Factor{ID: FactorDataLineage, Weight: 20, Presence: 1})
	grown, err := Score(tax, vector, m)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, grown.Score, base.Score)
}

func TestScore_NegativeRawIsInvariantViolation(t *testing.T) {
	tax := DefaultTaxonomy()
	vector := FactorVector{{ID: FactorDataLineage, Weight: -20, Presence: 1}}

	_, err := Score(tax, vector, DefaultMultiplier())
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestScore_ExcessRawIsInvariantViolation(t *testing.T) {
	tax := DefaultTaxonomy()
	vector := FactorVector{{ID: FactorDataLineage, Weight: 500, Presence: 1}}

	_, err := Score(tax, vector, DefaultMultiplier())
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestLevelForScore_Thresholds(t *testing.T) {
	assert.Equal(t, SeverityLow, LevelForScore(0))
	assert.Equal(t, SeverityLow, LevelForScore(39))
	assert.Equal(t, SeverityMedium, LevelForScore(40))
	assert.Equal(t, SeverityMedium, LevelForScore(59))
	assert.Equal(t, SeverityHigh, LevelForScore(60))
	assert.Equal(t, SeverityHigh, LevelForScore(79))
	assert.Equal(t, SeverityCritical, LevelForScore(80))
	assert.Equal(t, SeverityCritical, LevelForScore(100))
}

func TestResolveMultiplier_NilProvider(t *testing.T) {
	m := ResolveMultiplier(context.Background(), nil, 0)
	assert.Equal(t, MultiplierDefault, m.Value)
	assert.Equal(t, ProvenanceDefaultFallback, m.Provenance)
}

func TestResolveMultiplier_ClampsOutOfRange(t *testing.T) {
	m := ResolveMultiplier(context.Background(), StaticProvider{Value: 7.5}, 0)
	assert.Equal(t, MultiplierMax, m.Value)
	assert.Equal(t, ProvenanceMeasured, m.Provenance)

	m = ResolveMultiplier(context.Background(), StaticProvider{Value: 0.2}, 0)
	assert.Equal(t, MultiplierMin, m.Value)
}

func TestResolveMultiplier_ProviderError(t *testing.T) {
	m := ResolveMultiplier(context.Background(), failingProvider{}, 0)
	assert.Equal(t, MultiplierDefault, m.Value)
	assert.Equal(t, ProvenanceDefaultFallback, m.Provenance)
}

type failingProvider struct{}

func (failingProvider) GetMultiplier(_ context.Context) (StressMultiplier, error) {
	return StressMultiplier{}, ErrProviderUnavailable
}

func fullVector(tax *Taxonomy) FactorVector {
	v := make(FactorVector, 0, len(tax.Factors))
	for _, def := range tax.Factors {
		v = append(v, Factor{ID: def.ID, Weight: def.Weight, Presence: 1})
	}
	return v
}
