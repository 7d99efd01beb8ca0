package risk

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario: undocumented deep learning system with high-risk dependencies
// under elevated economic stress. Every factor triggers; the clamped score
// lands on 100/Critical.
func TestAssess_HighRiskSystem(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:          "churn-predictor",
		ModelType:           ModelDeepNeuralNetwork,
		DeploymentEnv:       EnvAWS,
		DataSources:         []string{},
		ThirdPartyLibraries: []string{"tensorflow", "pytorch"},
	}

	res, err := Assess(context.Background(), tax, d, StaticProvider{Value: 1.5}, 0)
	require.NoError(t, err)

	assert.Equal(t, 100, res.OverallRiskScore)
	assert.Equal(t, SeverityCritical, res.RiskLevel)
	assert.Equal(t, 1.5, res.Multiplier)
	assert.Equal(t, ProvenanceMeasured, res.MultiplierProvenance)
	assert.NotEmpty(t, res.ComplianceGaps)
	assert.NotEmpty(t, res.RecommendedActions)

	for _, f := range res.Factors {
		assert.Positive(t, f.Presence, "factor %s should trigger", f.ID)
	}
}

// Scenario: well-classified linear model with documented lineage and a
// single medium-risk dependency under normal conditions scores in the
// Low band with no critical gaps.
func TestAssess_LowRiskSystem(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:          "pricing-model",
		ModelType:           ModelLinearRegression,
		DeploymentEnv:       EnvOnPremise,
		DataSources:         []string{"internal_db_documented"},
		ThirdPartyLibraries: []string{"numpy"},
	}

	res, err := Assess(context.Background(), tax, d, StaticProvider{Value: 1.0}, 0)
	require.NoError(t, err)

	assert.Equal(t, SeverityLow, res.RiskLevel)
	assert.Less(t, res.OverallRiskScore, 40)
	for _, g := range res.ComplianceGaps {
		assert.NotEqual(t, SeverityCritical, g.Severity)
	}
}

func TestAssess_FullyDocumentedSystemHasNoGaps(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:      "audited-model",
		ModelType:       ModelGradientBoosting,
		DeploymentEnv:   EnvAzure,
		DataSources:     []string{"curated_dataset"},
		DriftMonitoring: boolPtr(true),
		DataEncryption:  boolPtr(true),
		AccessControls:  boolPtr(true),
	}

	res, err := Assess(context.Background(), tax, d, StaticProvider{Value: 1.0}, 0)
	require.NoError(t, err)

	assert.Zero(t, res.OverallRiskScore)
	assert.Equal(t, SeverityLow, res.RiskLevel)
	assert.Empty(t, res.ComplianceGaps)
	assert.Empty(t, res.RecommendedActions)
}

func TestAssess_InvalidDescriptorRejectedBeforeScoring(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:    "",
		ModelType:     ModelRandomForest,
		DeploymentEnv: EnvAWS,
	}

	_, err := Assess(context.Background(), tax, d, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestAssess_NilProviderFallsBack(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:    "m",
		ModelType:     ModelNeuralNetwork,
		DeploymentEnv: EnvGCP,
		DataSources:   []string{"scraped_web"},
	}

	res, err := Assess(context.Background(), tax, d, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, MultiplierDefault, res.Multiplier)
	assert.Equal(t, ProvenanceDefaultFallback, res.MultiplierProvenance)
}

func TestAssess_Deterministic(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:          "m",
		ModelType:           ModelDeepNeuralNetwork,
		DeploymentEnv:       EnvHybrid,
		DataSources:         []string{"vendor_feed"},
		ThirdPartyLibraries: []string{"pytorch", "pandas", "leftpad"},
	}

	r1, err := Assess(context.Background(), tax, d, StaticProvider{Value: 1.3}, 0)
	require.NoError(t, err)
	r2, err := Assess(context.Background(), tax, d, StaticProvider{Value: 1.3}, 0)
	require.NoError(t, err)

	b1, err := json.Marshal(r1)
	require.NoError(t, err)
	b2, err := json.Marshal(r2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestResult_WireRoundTrip(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:          "round-trip",
		ModelType:           ModelNeuralNetwork,
		DeploymentEnv:       EnvAWS,
		DataSources:         []string{},
		ThirdPartyLibraries: []string{"tensorflow"},
	}

	res, err := Assess(context.Background(), tax, d, StaticProvider{Value: 1.2}, 0)
	require.NoError(t, err)

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var parsed Result
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Equal(t, *res, parsed)
}

func TestAssess_GapsMatchActions(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:          "m",
		ModelType:           ModelDeepNeuralNetwork,
		DeploymentEnv:       EnvAWS,
		DataSources:         []string{},
		ThirdPartyLibraries: []string{"tensorflow"},
	}

	res, err := Assess(context.Background(), tax, d, nil, 0)
	require.NoError(t, err)

	gapCats := make(map[string]bool)
	for _, g := range res.ComplianceGaps {
		gapCats[g.Category] = true
	}

	assert.Len(t, res.RecommendedActions, len(res.ComplianceGaps))
	for _, a := range res.RecommendedActions {
		assert.True(t, gapCats[a.Category], "action for %s has no matching gap", a.Category)
	}
}
