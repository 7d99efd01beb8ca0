package cli

import (
	"fmt"

	urfave "github.com/urfave/cli/v2"

	"github.com/aiscm/aictl/pkg/report"
	"github.com/aiscm/aictl/pkg/risk"
)

var (
	orgFlag = &urfave.StringFlag{
		Name:     "org",
		Usage:    "Organization name stamped on the report",
		Required: true,
	}

	reportCmd = &urfave.Command{
		Name:            "report",
		HideHelpCommand: true,
		Usage:           "Assess a system and render a full compliance report",
		Action:          cmdReport,
		Flags: []urfave.Flag{
			orgFlag,
			fileFlag,
			nameFlag,
			modelFlag,
			envFlag,
			sourceFlag,
			libFlag,
			driftFlag,
			encryptionFlag,
			accessFlag,
		},
	}
)

func cmdReport(c *urfave.Context) error {
	descriptors, err := descriptorsFromContext(c)
	if err != nil {
		return err
	}

	cfg := getConfig(c)
	reports := make([]*report.Report, 0, len(descriptors))

	for _, d := range descriptors {
		r, err := risk.Assess(c.Context, cfg.Taxonomy, d, cfg.Provider, cfg.providerTimeout())
		if err != nil {
			return fmt.Errorf("assessing %q: %w", d.SystemName, err)
		}

		rep, err := report.Build(c.String(orgFlag.Name), r)
		if err != nil {
			return fmt.Errorf("building report for %q: %w", d.SystemName, err)
		}
		reports = append(reports, rep)
	}

	if len(reports) == 1 {
		return encode(reports[0])
	}
	return encode(reports)
}
