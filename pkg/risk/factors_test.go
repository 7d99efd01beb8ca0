package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestExtract_AllFactorsPresent(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:          "fraud-detector",
		ModelType:           ModelDeepNeuralNetwork,
		DeploymentEnv:       EnvAWS,
		DataSources:         []string{},
		ThirdPartyLibraries: []string{"tensorflow", "pytorch"},
	}

	vector, types := Extract(tax, d)
	require.Len(t, vector, len(tax.Factors))

	byID := make(map[string]Factor)
	for _, f := range vector {
		byID[f.ID] = f
	}

	assert.Equal(t, 1.0, byID[FactorDataLineage].Presence)
	assert.Equal(t, 1.0, byID[FactorExplainability].Presence)
	assert.Equal(t, 1.0, byID[FactorDriftMonitoring].Presence)
	assert.InDelta(t, 0.3, byID[FactorThirdParty].Presence, 0.001) // 2 high-risk libs = 6 points / 20
	assert.Equal(t, 1.0, byID[FactorDataSecurity].Presence)

	assert.Contains(t, types, RiskTrainingDataPoisoning)
	assert.Contains(t, types, RiskSupplyChainCompromise)
	assert.Contains(t, types, RiskModelDrift)
	assert.Contains(t, types, RiskModelInversion)
	assert.Contains(t, types, RiskInsufficientDataProtection)
}

func TestExtract_WellDocumentedSystem(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:          "scoring-model",
		ModelType:           ModelLinearRegression,
		DeploymentEnv:       EnvOnPremise,
		DataSources:         []string{"internal_db_documented"},
		ThirdPartyLibraries: []string{},
		DriftMonitoring:     boolPtr(true),
		DataEncryption:      boolPtr(true),
		AccessControls:      boolPtr(true),
	}

	vector, types := Extract(tax, d)
	assert.Zero(t, vector.RawScore())
	assert.Empty(t, types)
}

func TestExtract_FailClosedOnMissingControls(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:    "undocumented",
		ModelType:     ModelLinearRegression,
		DeploymentEnv: EnvOnPremise,
		DataSources:   []string{"internal_db_documented"},
	}

	vector, types := Extract(tax, d)

	byID := make(map[string]Factor)
	for _, f := range vector {
		byID[f.ID] = f
	}

	// absence of control documentation means the risk is present
	assert.Equal(t, 1.0, byID[FactorDriftMonitoring].Presence)
	assert.Equal(t, 1.0, byID[FactorDataSecurity].Presence)
	assert.Contains(t, types, RiskModelDrift)
	assert.Contains(t, types, RiskInsufficientDataProtection)
}

func TestExtract_UnclassifiedModelIsBlackBox(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:    "mystery",
		ModelType:     ModelUnclassified,
		DeploymentEnv: EnvEdge,
		DataSources:   []string{"curated_dataset"},
	}

	vector, _ := Extract(tax, d)
	for _, f := range vector {
		if f.ID == FactorExplainability {
			assert.Equal(t, 1.0, f.Presence)
		}
	}
}

func TestExtract_LineageRecognizedBySuffix(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:    "m",
		ModelType:     ModelRandomForest,
		DeploymentEnv: EnvGCP,
		DataSources:   []string{"sales_pipeline_documented"},
	}

	vector, _ := Extract(tax, d)
	for _, f := range vector {
		if f.ID == FactorDataLineage {
			assert.Zero(t, f.Presence)
		}
	}
}

func TestExtract_ThirdPartyGrading(t *testing.T) {
	tax := DefaultTaxonomy()
	weight := tax.FactorWeight(FactorThirdParty)

	// one medium-risk lib scores 1 point
	p, _, high := thirdPartyPresence(tax, []string{"numpy"}, weight)
	assert.InDelta(t, 0.05, p, 0.001)
	assert.False(t, high)

	// unknown libs count 1 point each
	p, _, high = thirdPartyPresence(tax, []string{"leftpad"}, weight)
	assert.InDelta(t, 0.05, p, 0.001)
	assert.False(t, high)

	// high-risk lib flags supply chain exposure
	_, _, high = thirdPartyPresence(tax, []string{"tensorflow"}, weight)
	assert.True(t, high)

	// dependency count surcharge, capped at 1.0
	many := make([]string, 12)
	for i := range many {
		many[i] = "tensorflow"
	}
	p, _, _ = thirdPartyPresence(tax, many, weight)
	assert.Equal(t, 1.0, p)

	// no libraries means no signal
	p, _, high = thirdPartyPresence(tax, nil, weight)
	assert.Zero(t, p)
	assert.False(t, high)
}

func TestExtract_Deterministic(t *testing.T) {
	tax := DefaultTaxonomy()
	d := &SystemDescriptor{
		SystemName:          "m",
		ModelType:           ModelNeuralNetwork,
		DeploymentEnv:       EnvHybrid,
		DataSources:         []string{"scraped_web"},
		ThirdPartyLibraries: []string{"pytorch", "numpy"},
	}

	v1, t1 := Extract(tax, d)
	v2, t2 := Extract(tax, d)
	assert.Equal(t, v1, v2)
	assert.Equal(t, t1, t2)
}
