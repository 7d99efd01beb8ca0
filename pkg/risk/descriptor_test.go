package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_Validate(t *testing.T) {
	d := &SystemDescriptor{
		SystemName:    "credit-risk-model",
		ModelType:     ModelRandomForest,
		DeploymentEnv: EnvAWS,
	}
	assert.NoError(t, d.Validate())
}

func TestDescriptor_Validate_MissingName(t *testing.T) {
	d := &SystemDescriptor{
		SystemName:    "  ",
		ModelType:     ModelRandomForest,
		DeploymentEnv: EnvAWS,
	}
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestDescriptor_Validate_UnknownModelType(t *testing.T) {
	d := &SystemDescriptor{
		SystemName:    "m",
		ModelType:     ModelType("QuantumForest"),
		DeploymentEnv: EnvGCP,
	}
	assert.ErrorIs(t, d.Validate(), ErrInvalidDescriptor)
}

func TestDescriptor_Validate_UnknownEnv(t *testing.T) {
	d := &SystemDescriptor{
		SystemName:    "m",
		ModelType:     ModelLinearRegression,
		DeploymentEnv: DeploymentEnv("mainframe"),
	}
	assert.ErrorIs(t, d.Validate(), ErrInvalidDescriptor)
}

func TestDescriptor_Validate_Nil(t *testing.T) {
	var d *SystemDescriptor
	assert.ErrorIs(t, d.Validate(), ErrInvalidDescriptor)
}

func TestParseModelType(t *testing.T) {
	m, ok := ParseModelType("DeepNeuralNetwork")
	assert.True(t, ok)
	assert.Equal(t, ModelDeepNeuralNetwork, m)

	m, ok = ParseModelType("something_else")
	assert.False(t, ok)
	assert.Equal(t, ModelUnclassified, m)
}

func TestParseDeploymentEnv(t *testing.T) {
	assert.Equal(t, EnvAWS, ParseDeploymentEnv(" AWS "))
	assert.Equal(t, EnvOnPremise, ParseDeploymentEnv("on_premise"))
	// unknown spellings collapse to the explicit unclassified variant
	assert.Equal(t, EnvUnclassified, ParseDeploymentEnv("my-datacenter"))
}
