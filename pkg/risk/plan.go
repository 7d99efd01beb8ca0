package risk

import (
	"fmt"
	"sort"
)

// ReferenceGeneric marks actions synthesized from the fallback template so
// consumers can distinguish curated from generic recommendations.
const ReferenceGeneric = "generic"

// Action is one remediation step of the plan, tied to a single gap category
// and annotated with cost and timeline estimates.
type Action struct {
	Category     string        `json:"category"`
	Description  string        `json:"description"`
	Severity     Severity      `json:"severity"`
	CostEstimate CostRange     `json:"cost_estimate"`
	Timeline     TimelineRange `json:"timeline"`
	Reference    string        `json:"reference"`
}

// Plan is the ordered remediation sequence: one action per distinct gap
// category, sorted by severity descending then category id ascending.
type Plan []Action

// TotalCost returns the summed cost band across all actions.
func (p Plan) TotalCost() CostRange {
	total := CostRange{Currency: "USD"}
	for _, a := range p {
		total.Min += a.CostEstimate.Min
		total.Max += a.CostEstimate.Max
	}
	return total
}

// GeneratePlan maps compliance gaps to remediation actions. Gaps with a
// curated template get its description, effort-based cost band, and NIST
// reference; gaps without one get a generic action derived from the gap's
// own description with the widest configured cost and timeline defaults.
// No action is dropped and no category appears twice. An empty gap list
// produces an empty plan.
func GeneratePlan(t *Taxonomy, gaps []Gap) Plan {
	plan := make(Plan, 0, len(gaps))

	for _, g := range gaps {
		if tmpl, ok := t.Templates[g.Category]; ok {
			plan = append(plan, Action{
				Category:     g.Category,
				Description:  tmpl.Description,
				Severity:     g.Severity,
				CostEstimate: t.Costs[tmpl.Effort],
				Timeline:     tmpl.Timeline,
				Reference:    tmpl.Reference,
			})
			continue
		}

		plan = append(plan, Action{
			Category:     g.Category,
			Description:  fmt.Sprintf("Remediate control gap: %s", g.Description),
			Severity:     g.Severity,
			CostEstimate: t.GenericCost,
			Timeline:     t.GenericTimeline,
			Reference:    ReferenceGeneric,
		})
	}

	sort.Slice(plan, func(i, j int) bool {
		if plan[i].Severity.Rank() != plan[j].Severity.Rank() {
			return plan[i].Severity.Rank() > plan[j].Severity.Rank()
		}
		return plan[i].Category < plan[j].Category
	})

	return plan
}
