// Package report renders a stored or freshly computed assessment into a
// compliance report: executive summary, per-function gap analysis, phased
// remediation roadmap, budget band, and projected risk reduction.
package report

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/aiscm/aictl/pkg/risk"
)

const (
	reportType      = "NIST CSF 2.0 AI Risk Assessment"
	standardVersion = "NIST CSF 2.0"

	// contingency band applied to the summed action plan cost
	costContingencyMin = 0.6
	costContingencyMax = 1.2

	// floor for the projected score after remediation
	minProjectedScore = 15
	// remediation never removes more than this share of the current score
	maxReductionShare = 0.6
)

// CSF function codes in canonical framework order.
var functionOrder = []string{"GOVERN", "IDENTIFY", "PROTECT", "DETECT", "RESPOND", "RECOVER"}

var functionByPrefix = map[string]string{
	"GV": "GOVERN",
	"ID": "IDENTIFY",
	"PR": "PROTECT",
	"DE": "DETECT",
	"RS": "RESPOND",
	"RC": "RECOVER",
}

type Metadata struct {
	Organization    string    `json:"organization" yaml:"organization"`
	ReportType      string    `json:"report_type" yaml:"report_type"`
	GeneratedAt     time.Time `json:"generated_date" yaml:"generated_date"`
	StandardVersion string    `json:"standard_version" yaml:"standard_version"`
}

type ExecutiveSummary struct {
	SystemName       string        `json:"system_name" yaml:"system_name"`
	OverallRiskScore int           `json:"overall_risk_score" yaml:"overall_risk_score"`
	RiskLevel        risk.Severity `json:"risk_level" yaml:"risk_level"`
	TotalGaps        int           `json:"total_gaps_identified" yaml:"total_gaps_identified"`
	CriticalGaps     int           `json:"critical_gaps" yaml:"critical_gaps"`
	HighGaps         int           `json:"high_priority_gaps" yaml:"high_priority_gaps"`
	MediumGaps       int           `json:"medium_priority_gaps" yaml:"medium_priority_gaps"`
	LowGaps          int           `json:"low_priority_gaps" yaml:"low_priority_gaps"`
}

// FunctionCompliance reports gap pressure on one CSF function.
type FunctionCompliance struct {
	Function   string   `json:"function" yaml:"function"`
	Gaps       int      `json:"gaps" yaml:"gaps"`
	Categories []string `json:"categories" yaml:"categories"`
	Status     string   `json:"status" yaml:"status"`
}

// Phase is one remediation window of the roadmap. Phases are fixed by
// severity: critical first, low last.
type Phase struct {
	Name     string        `json:"name" yaml:"name"`
	Timeline string        `json:"timeline" yaml:"timeline"`
	Priority risk.Severity `json:"priority" yaml:"priority"`
	Actions  []risk.Action `json:"actions" yaml:"actions"`
}

// Reduction projects the score after the full plan is implemented.
type Reduction struct {
	CurrentScore       int           `json:"current_risk_score" yaml:"current_risk_score"`
	ProjectedScore     int           `json:"projected_risk_score" yaml:"projected_risk_score"`
	EstimatedReduction int           `json:"estimated_reduction" yaml:"estimated_reduction"`
	ReductionPercent   string        `json:"reduction_percentage" yaml:"reduction_percentage"`
	TargetRiskLevel    risk.Severity `json:"target_risk_level" yaml:"target_risk_level"`
}

type Report struct {
	Metadata             Metadata             `json:"report_metadata" yaml:"report_metadata"`
	Summary              ExecutiveSummary     `json:"executive_summary" yaml:"executive_summary"`
	ComplianceByFunction []FunctionCompliance `json:"compliance_by_function" yaml:"compliance_by_function"`
	Gaps                 []risk.Gap           `json:"csf_compliance_gaps" yaml:"csf_compliance_gaps"`
	Roadmap              []Phase              `json:"remediation_roadmap" yaml:"remediation_roadmap"`
	EstimatedCost        risk.CostRange       `json:"estimated_total_cost" yaml:"estimated_total_cost"`
	RiskReduction        Reduction            `json:"risk_reduction_projection" yaml:"risk_reduction_projection"`
}

// Build assembles a report from one assessment result. It reads the result
// and writes nothing, so the same input always yields the same report apart
// from the generation timestamp.
func Build(organization string, r *risk.Result) (*Report, error) {
	if organization == "" {
		return nil, errors.New("organization required")
	}
	if r == nil {
		return nil, errors.New("assessment result required")
	}

	return &Report{
		Metadata: Metadata{
			Organization:    organization,
			ReportType:      reportType,
			GeneratedAt:     time.Now().UTC(),
			StandardVersion: standardVersion,
		},
		Summary:              summarize(r),
		ComplianceByFunction: analyzeByFunction(r.ComplianceGaps),
		Gaps:                 r.ComplianceGaps,
		Roadmap:              buildRoadmap(r.RecommendedActions),
		EstimatedCost:        costBand(r.RecommendedActions),
		RiskReduction:        projectReduction(r.ComplianceGaps, r.OverallRiskScore),
	}, nil
}

func summarize(r *risk.Result) ExecutiveSummary {
	s := ExecutiveSummary{
		SystemName:       r.SystemName,
		OverallRiskScore: r.OverallRiskScore,
		RiskLevel:        r.RiskLevel,
		TotalGaps:        len(r.ComplianceGaps),
	}
	for _, g := range r.ComplianceGaps {
		switch g.Severity {
		case risk.SeverityCritical:
			s.CriticalGaps++
		case risk.SeverityHigh:
			s.HighGaps++
		case risk.SeverityMedium:
			s.MediumGaps++
		default:
			s.LowGaps++
		}
	}
	return s
}

func analyzeByFunction(gaps []risk.Gap) []FunctionCompliance {
	byFunction := make(map[string][]string)
	for _, g := range gaps {
		if len(g.Category) < 2 {
			continue
		}
		fn, ok := functionByPrefix[g.Category[:2]]
		if !ok {
			continue
		}
		byFunction[fn] = append(byFunction[fn], g.Category)
	}

	out := make([]FunctionCompliance, 0, len(functionOrder))
	for _, fn := range functionOrder {
		cats := byFunction[fn]
		out = append(out, FunctionCompliance{
			Function:   fn,
			Gaps:       len(cats),
			Categories: cats,
			Status:     complianceStatus(len(cats)),
		})
	}
	return out
}

func complianceStatus(gapCount int) string {
	switch {
	case gapCount == 0:
		return "Compliant"
	case gapCount <= 2:
		return "Minor Issues"
	default:
		return "Needs Attention"
	}
}

func buildRoadmap(plan risk.Plan) []Phase {
	phases := []Phase{
		{Name: "phase_1_critical", Timeline: "0-30 days", Priority: risk.SeverityCritical},
		{Name: "phase_2_high", Timeline: "30-90 days", Priority: risk.SeverityHigh},
		{Name: "phase_3_medium", Timeline: "90-180 days", Priority: risk.SeverityMedium},
		{Name: "phase_4_low", Timeline: "180+ days", Priority: risk.SeverityLow},
	}

	index := map[risk.Severity]int{
		risk.SeverityCritical: 0,
		risk.SeverityHigh:     1,
		risk.SeverityMedium:   2,
		risk.SeverityLow:      3,
	}

	for _, a := range plan {
		i, ok := index[a.Severity]
		if !ok {
			i = 3
		}
		phases[i].Actions = append(phases[i].Actions, a)
	}
	return phases
}

func costBand(plan risk.Plan) risk.CostRange {
	total := plan.TotalCost()
	return risk.CostRange{
		Min:      int(float64(total.Min) * costContingencyMin),
		Max:      int(float64(total.Max) * costContingencyMax),
		Currency: total.Currency,
	}
}

func projectReduction(gaps []risk.Gap, score int) Reduction {
	var points float64
	for _, g := range gaps {
		switch g.Severity {
		case risk.SeverityCritical:
			points += 20
		case risk.SeverityHigh:
			points += 15
		case risk.SeverityMedium:
			points += 10
		default:
			points += 5
		}
	}

	reduction := points
	if limit := float64(score) * maxReductionShare; reduction > limit {
		reduction = limit
	}

	projected := score - int(reduction)
	if len(gaps) > 0 && projected < minProjectedScore {
		projected = minProjectedScore
		reduction = float64(score - projected)
		if reduction < 0 {
			reduction = 0
		}
	}

	percent := "0%"
	if score > 0 {
		percent = fmt.Sprintf("%d%%", int(reduction/float64(score)*100))
	}

	return Reduction{
		CurrentScore:       score,
		ProjectedScore:     projected,
		EstimatedReduction: int(reduction),
		ReductionPercent:   percent,
		TargetRiskLevel:    risk.LevelForScore(projected),
	}
}
