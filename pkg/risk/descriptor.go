package risk

import (
	"fmt"
	"strings"
)

// ModelType is the closed enumeration of supported ML model families.
type ModelType string

const (
	ModelLinearRegression  ModelType = "LinearRegression"
	ModelRandomForest      ModelType = "RandomForest"
	ModelGradientBoosting  ModelType = "GradientBoosting"
	ModelNeuralNetwork     ModelType = "NeuralNetwork"
	ModelDeepNeuralNetwork ModelType = "DeepNeuralNetwork"

	// ModelUnclassified is the explicit variant for model families outside
	// the known set. Scored fail-closed, never treated as a free string.
	ModelUnclassified ModelType = "Unclassified"
)

// DeploymentEnv is the closed enumeration of deployment environments.
type DeploymentEnv string

const (
	EnvAWS          DeploymentEnv = "aws"
	EnvGCP          DeploymentEnv = "gcp"
	EnvAzure        DeploymentEnv = "azure"
	EnvOnPremise    DeploymentEnv = "on_premise"
	EnvEdge         DeploymentEnv = "edge"
	EnvHybrid       DeploymentEnv = "hybrid"
	EnvUnclassified DeploymentEnv = "unclassified"
)

var modelTypes = map[ModelType]bool{
	ModelLinearRegression:  true,
	ModelRandomForest:      true,
	ModelGradientBoosting:  true,
	ModelNeuralNetwork:     true,
	ModelDeepNeuralNetwork: true,
	ModelUnclassified:      true,
}

var deploymentEnvs = map[DeploymentEnv]bool{
	EnvAWS:          true,
	EnvGCP:          true,
	EnvAzure:        true,
	EnvOnPremise:    true,
	EnvEdge:         true,
	EnvHybrid:       true,
	EnvUnclassified: true,
}

// ParseModelType maps a wire string to the closed model type enumeration.
// Returns false when the value is outside the known set.
func ParseModelType(s string) (ModelType, bool) {
	m := ModelType(strings.TrimSpace(s))
	if modelTypes[m] {
		return m, true
	}
	return ModelUnclassified, false
}

// ParseDeploymentEnv maps a wire string to the environment enumeration.
// Unknown spellings collapse to EnvUnclassified so extraction rules stay
// exhaustive and cannot silently no-op on an unrecognized value.
func ParseDeploymentEnv(s string) DeploymentEnv {
	e := DeploymentEnv(strings.ToLower(strings.TrimSpace(s)))
	if deploymentEnvs[e] {
		return e
	}
	return EnvUnclassified
}

// SystemDescriptor describes one deployed AI/ML system to be assessed.
//
// The three control booleans come from the assessed system's own
// documentation. A nil pointer means the information was not supplied,
// which the extractor treats as the risk being present (fail-closed):
// missing documentation is itself a control gap.
type SystemDescriptor struct {
	SystemName           string        `json:"system_name" yaml:"system_name"`
	ModelType            ModelType     `json:"model_type" yaml:"model_type"`
	DeploymentEnv        DeploymentEnv `json:"deployment_environment" yaml:"deployment_environment"`
	DataSources          []string      `json:"data_sources" yaml:"data_sources"`
	ThirdPartyLibraries  []string      `json:"third_party_libraries" yaml:"third_party_libraries"`
	DriftMonitoring      *bool         `json:"drift_monitoring_enabled,omitempty" yaml:"drift_monitoring_enabled,omitempty"`
	DataEncryption       *bool         `json:"data_encryption,omitempty" yaml:"data_encryption,omitempty"`
	AccessControls       *bool         `json:"access_controls,omitempty" yaml:"access_controls,omitempty"`
}

// Validate checks the descriptor against the closed enumerations before any
// extraction or scoring runs. All failures wrap ErrInvalidDescriptor.
func (d *SystemDescriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: descriptor is nil", ErrInvalidDescriptor)
	}
	if strings.TrimSpace(d.SystemName) == "" {
		return fmt.Errorf("%w: system_name is required", ErrInvalidDescriptor)
	}
	if !modelTypes[d.ModelType] {
		return fmt.Errorf("%w: model_type %q is not in the known set", ErrInvalidDescriptor, d.ModelType)
	}
	if !deploymentEnvs[d.DeploymentEnv] {
		return fmt.Errorf("%w: deployment_environment %q is not in the known set", ErrInvalidDescriptor, d.DeploymentEnv)
	}
	return nil
}
