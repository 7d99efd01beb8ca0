package cli

import (
	"fmt"

	urfave "github.com/urfave/cli/v2"

	"github.com/aiscm/aictl/pkg/data"
)

var (
	systemFlag = &urfave.StringFlag{
		Name:  "system",
		Usage: "Filter history by system name",
	}

	levelFlag = &urfave.StringFlag{
		Name:  "level",
		Usage: "Filter history by risk level [Low, Medium, High, Critical]",
	}

	limitFlag = &urfave.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of rows to return",
	}

	historyCmd = &urfave.Command{
		Name:            "history",
		HideHelpCommand: true,
		Usage:           "List stored assessments, newest first",
		Action:          cmdHistory,
		Flags: []urfave.Flag{
			systemFlag,
			levelFlag,
			limitFlag,
		},
		Subcommands: []*urfave.Command{
			{
				Name:   "summary",
				Usage:  "Aggregate counts over the stored assessments",
				Action: cmdHistorySummary,
			},
		},
	}
)

func cmdHistory(c *urfave.Context) error {
	cfg := getConfig(c)

	list, err := data.GetAssessments(cfg.DB, &data.AssessmentQuery{
		SystemName: c.String(systemFlag.Name),
		Level:      c.String(levelFlag.Name),
		Limit:      c.Int(limitFlag.Name),
	})
	if err != nil {
		return fmt.Errorf("querying history: %w", err)
	}

	return encode(list)
}

func cmdHistorySummary(c *urfave.Context) error {
	cfg := getConfig(c)

	s, err := data.GetSummary(cfg.DB)
	if err != nil {
		return fmt.Errorf("summarizing history: %w", err)
	}

	return encode(s)
}
