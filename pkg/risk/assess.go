// Package risk implements the risk scoring and compliance gap engine: a
// pure, synchronous function family that turns an AI system descriptor
// into a bounded risk score, a deduplicated set of NIST CSF gaps, and a
// prioritized remediation plan. All lookup data lives in the immutable
// Taxonomy built once at process start; the only external capability is
// the injected StressProvider.
package risk

import (
	"context"
	"time"
)

// Result is the immutable value object produced by one assessment call.
// Its JSON shape is the wire format consumed by the transport, persistence,
// and report collaborators.
type Result struct {
	SystemName           string        `json:"system_name"`
	ModelType            ModelType     `json:"model_type"`
	DeploymentEnv        DeploymentEnv `json:"deployment_environment"`
	OverallRiskScore     int           `json:"overall_risk_score"`
	RiskLevel            Severity      `json:"risk_level"`
	Multiplier           float64       `json:"stress_multiplier"`
	MultiplierProvenance Provenance    `json:"multiplier_provenance"`
	Factors              FactorVector  `json:"risk_factors"`
	ComplianceGaps       []Gap         `json:"csf_compliance_gaps"`
	RecommendedActions   Plan          `json:"recommended_actions"`
}

// Assess runs the full pipeline: validation, factor extraction, multiplier
// resolution, scoring, compliance mapping, and plan generation. It performs
// no I/O beyond the bounded provider call and mutates nothing; identical
// inputs always produce an identical result.
func Assess(ctx context.Context, t *Taxonomy, d *SystemDescriptor, p StressProvider, providerTimeout time.Duration) (*Result, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	vector, riskTypes := Extract(t, d)
	multiplier := ResolveMultiplier(ctx, p, providerTimeout)

	assessment, err := Score(t, vector, multiplier)
	if err != nil {
		return nil, err
	}

	gaps, err := MapRisks(t, riskTypes)
	if err != nil {
		return nil, err
	}

	return &Result{
		SystemName:           d.SystemName,
		ModelType:            d.ModelType,
		DeploymentEnv:        d.DeploymentEnv,
		OverallRiskScore:     assessment.Score,
		RiskLevel:            assessment.Level,
		Multiplier:           assessment.Multiplier.Value,
		MultiplierProvenance: assessment.Multiplier.Provenance,
		Factors:              vector,
		ComplianceGaps:       gaps,
		RecommendedActions:   GeneratePlan(t, gaps),
	}, nil
}
