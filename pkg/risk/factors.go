package risk

import (
	"fmt"
	"sort"
	"strings"
)

// Factor is one entry of the FactorVector: a fixed, weighted condition with
// its computed presence for a single assessment.
type Factor struct {
	ID        string  `json:"id"`
	Weight    int     `json:"weight"`
	Presence  float64 `json:"presence"`
	Rationale string  `json:"rationale,omitempty"`
}

// Contribution is the factor's share of the raw score.
func (f Factor) Contribution() float64 {
	return float64(f.Weight) * f.Presence
}

// FactorVector is the ordered set of factors for one assessment, one entry
// per definition in the static tables.
type FactorVector []Factor

// RawScore is the weighted sum of factor presence before the stress
// multiplier is applied.
func (v FactorVector) RawScore() float64 {
	var raw float64
	for _, f := range v {
		raw += f.Contribution()
	}
	return raw
}

// Per-library risk points used to grade third-party dependency presence.
const (
	libPointsHigh    = 3
	libPointsMedium  = 1
	libPointsUnknown = 1

	depCountSurchargeLarge = 5
	depCountSurchargeSmall = 2
	depCountThresholdLarge = 10
	depCountThresholdSmall = 5
)

// Extract derives the factor vector and the set of triggered risk types
// from a validated descriptor. Extraction is deterministic and never fails
// on a well-typed descriptor: absent control information defaults to the
// risk being present. Callers must run Validate first.
func Extract(t *Taxonomy, d *SystemDescriptor) (FactorVector, []string) {
	vector := make(FactorVector, 0, len(t.Factors))
	triggered := make(map[string]bool)

	for _, def := range t.Factors {
		f := Factor{ID: def.ID, Weight: def.Weight}

		switch def.ID {
		case FactorDataLineage:
			f.Presence, f.Rationale = lineagePresence(t, d.DataSources)
			if f.Presence > 0 {
				triggered[RiskDataLineageOpacity] = true
				triggered[RiskTrainingDataPoisoning] = true
			}
		case FactorExplainability:
			f.Presence, f.Rationale = explainabilityPresence(d.ModelType)
			if f.Presence > 0 {
				triggered[RiskModelInversion] = true
				triggered[RiskAdversarialExamples] = true
			}
		case FactorDriftMonitoring:
			if d.DriftMonitoring == nil {
				f.Presence = 1
				f.Rationale = "drift_monitoring_enabled not documented"
			} else if !*d.DriftMonitoring {
				f.Presence = 1
				f.Rationale = "drift monitoring disabled"
			}
			if f.Presence > 0 {
				triggered[RiskModelDrift] = true
			}
		case FactorThirdParty:
			var highRisk bool
			f.Presence, f.Rationale, highRisk = thirdPartyPresence(t, d.ThirdPartyLibraries, def.Weight)
			if f.Presence > 0 {
				triggered[RiskUnvettedDependencies] = true
			}
			if highRisk {
				triggered[RiskSupplyChainCompromise] = true
			}
		case FactorDataSecurity:
			f.Presence, f.Rationale = dataSecurityPresence(d)
			if f.Presence > 0 {
				triggered[RiskInsufficientDataProtection] = true
			}
		}

		vector = append(vector, f)
	}

	types := make([]string, 0, len(triggered))
	for rt := range triggered {
		types = append(types, rt)
	}
	sort.Strings(types)

	return vector, types
}

func lineagePresence(t *Taxonomy, sources []string) (float64, string) {
	if len(sources) == 0 {
		return 1, "no data sources declared"
	}
	for _, s := range sources {
		key := strings.ToLower(strings.TrimSpace(s))
		if t.RecognizedSources[key] || strings.HasSuffix(key, "_documented") {
			return 0, ""
		}
	}
	return 1, fmt.Sprintf("none of %d data sources carries a recognized lineage tag", len(sources))
}

func explainabilityPresence(m ModelType) (float64, string) {
	switch m {
	case ModelNeuralNetwork, ModelDeepNeuralNetwork:
		return 1, fmt.Sprintf("black-box model type %s", m)
	case ModelUnclassified:
		return 1, "model type unclassified"
	}
	return 0, ""
}

// thirdPartyPresence grades dependency risk on a point scale: 3 points per
// high-risk library, 1 per medium-risk or unknown library, plus a surcharge
// for large dependency counts. Presence is the point total normalized by
// the factor weight, capped at 1.
func thirdPartyPresence(t *Taxonomy, libs []string, weight int) (float64, string, bool) {
	if len(libs) == 0 {
		return 0, "", false
	}

	points := 0
	highRisk := false
	for _, lib := range libs {
		switch t.LibraryRisk[strings.ToLower(strings.TrimSpace(lib))] {
		case LibraryRiskHigh:
			points += libPointsHigh
			highRisk = true
		case LibraryRiskMedium:
			points += libPointsMedium
		default:
			points += libPointsUnknown
		}
	}

	if len(libs) > depCountThresholdLarge {
		points += depCountSurchargeLarge
	} else if len(libs) > depCountThresholdSmall {
		points += depCountSurchargeSmall
	}

	presence := float64(points) / float64(weight)
	if presence > 1 {
		presence = 1
	}

	return presence, fmt.Sprintf("%d third-party libraries scored %d risk points", len(libs), points), highRisk
}

// dataSecurityPresence splits the factor between encryption (0.6) and
// access controls (0.4), each contributing when missing or undocumented.
func dataSecurityPresence(d *SystemDescriptor) (float64, string) {
	var presence float64
	var reasons []string

	if d.DataEncryption == nil {
		presence += 0.6
		reasons = append(reasons, "data_encryption not documented")
	} else if !*d.DataEncryption {
		presence += 0.6
		reasons = append(reasons, "data encryption disabled")
	}

	if d.AccessControls == nil {
		presence += 0.4
		reasons = append(reasons, "access_controls not documented")
	} else if !*d.AccessControls {
		presence += 0.4
		reasons = append(reasons, "access controls disabled")
	}

	return presence, strings.Join(reasons, "; ")
}
