package risk

import (
	"fmt"
	"sort"
	"strings"
)

// Gap is one taxonomy category identified as inadequately addressed by the
// assessed system. Within one assessment, category ids are unique; when
// multiple risk types map to the same category the gap carries the maximum
// severity among them and the concatenated rationales.
type Gap struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Rationale   string   `json:"rationale,omitempty"`
}

// MappedCategory is one entry of a mapping-exploration lookup result.
type MappedCategory struct {
	Category    string      `json:"category"`
	Function    CSFFunction `json:"function"`
	Description string      `json:"description"`
	Severity    Severity    `json:"severity"`
}

// MapRisks resolves the supplied risk types against the mapping table and
// returns the deduplicated compliance gaps sorted by category id ascending,
// so output is reproducible regardless of input order. An unknown risk type
// fails with ErrNotFound; the mapper never invents a mapping.
func MapRisks(t *Taxonomy, riskTypes []string) ([]Gap, error) {
	merged := make(map[string]*Gap)
	rationales := make(map[string][]string)

	for _, rt := range riskTypes {
		def, ok := t.RiskTypes[rt]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, rt)
		}

		for _, ref := range def.Mappings {
			cat, ok := t.Categories[ref.Category]
			if !ok {
				return nil, fmt.Errorf("%w: mapping for %q references unknown category %q",
					ErrInvariantViolation, rt, ref.Category)
			}

			if g, exists := merged[ref.Category]; exists {
				g.Severity = MaxSeverity(g.Severity, ref.Severity)
			} else {
				merged[ref.Category] = &Gap{
					Category:    cat.ID,
					Description: cat.Description,
					Severity:    ref.Severity,
				}
			}
			rationales[ref.Category] = append(rationales[ref.Category], def.Description)
		}
	}

	gaps := make([]Gap, 0, len(merged))
	for id, g := range merged {
		sort.Strings(rationales[id])
		g.Rationale = strings.Join(rationales[id], "; ")
		gaps = append(gaps, *g)
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i].Category < gaps[j].Category })

	if err := verifyUniqueCategories(gaps); err != nil {
		return nil, err
	}
	return gaps, nil
}

// Lookup returns the static category mappings for one risk type. A
// recognized risk type with no mappings yields an empty list, not an
// error; an unrecognized risk type fails with ErrNotFound.
func Lookup(t *Taxonomy, riskType string) ([]MappedCategory, error) {
	def, ok := t.RiskTypes[riskType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, riskType)
	}

	out := make([]MappedCategory, 0, len(def.Mappings))
	for _, ref := range def.Mappings {
		cat := t.Categories[ref.Category]
		out = append(out, MappedCategory{
			Category:    ref.Category,
			Function:    cat.Function,
			Description: cat.Description,
			Severity:    ref.Severity,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })

	return out, nil
}

// RiskTypeDescription returns the catalog description for a risk type.
func RiskTypeDescription(t *Taxonomy, riskType string) (string, error) {
	def, ok := t.RiskTypes[riskType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, riskType)
	}
	return def.Description, nil
}

func verifyUniqueCategories(gaps []Gap) error {
	seen := make(map[string]bool, len(gaps))
	for _, g := range gaps {
		if seen[g.Category] {
			return fmt.Errorf("%w: duplicate category %q survived mapping resolution",
				ErrInvariantViolation, g.Category)
		}
		seen[g.Category] = true
	}
	return nil
}
