package cli

import (
	"fmt"

	urfave "github.com/urfave/cli/v2"

	"github.com/aiscm/aictl/pkg/risk"
)

var (
	lookupCmd = &urfave.Command{
		Name:            "lookup",
		HideHelpCommand: true,
		Usage:           "Show the CSF categories mapped to a risk type",
		ArgsUsage:       "<risk-type>",
		Action:          cmdLookup,
	}
)

type lookupResult struct {
	RiskType    string                `json:"risk_type" yaml:"risk_type"`
	Description string                `json:"description" yaml:"description"`
	Categories  []risk.MappedCategory `json:"csf_categories" yaml:"csf_categories"`
}

func cmdLookup(c *urfave.Context) error {
	riskType := c.Args().First()
	if riskType == "" {
		return fmt.Errorf("risk type argument required, e.g. %s lookup model_drift", appName)
	}

	cfg := getConfig(c)

	categories, err := risk.Lookup(cfg.Taxonomy, riskType)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", riskType, err)
	}

	desc, err := risk.RiskTypeDescription(cfg.Taxonomy, riskType)
	if err != nil {
		return fmt.Errorf("describing %q: %w", riskType, err)
	}

	return encode(lookupResult{
		RiskType:    riskType,
		Description: desc,
		Categories:  categories,
	})
}
