// Package cli wires the risk engine, persistence, and HTTP surface into a
// single command line application.
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/aiscm/aictl/pkg/config"
	"github.com/aiscm/aictl/pkg/data"
	"github.com/aiscm/aictl/pkg/logging"
	"github.com/aiscm/aictl/pkg/risk"
	"github.com/aiscm/aictl/pkg/stress"
)

const (
	appName      = "aictl"
	appDirName   = ".aictl"
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	dbFilePathFlag = &urfave.StringFlag{
		Name:  "db",
		Usage: "Path to the Sqlite database file",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Home     string
	Conf     *config.Config
	DB       *sql.DB
	Taxonomy *risk.Taxonomy
	Provider risk.StressProvider
}

func (a *appConfig) providerTimeout() time.Duration {
	return time.Duration(a.Conf.ProviderTimeoutSec) * time.Second
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 appName,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "Risk scoring and NIST CSF gap analysis for AI/ML systems",
		Flags: []urfave.Flag{
			debugFlag,
			dbFilePathFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			assessCmd,
			lookupCmd,
			historyCmd,
			reportCmd,
			authCmd,
			serverCmd,
		},
		Before: func(c *urfave.Context) error {
			if c.Bool(debugFlag.Name) {
				logging.SetDefaultCLILogger("debug")
			}

			f := c.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}

			home, _, err := config.GetOrCreateHomeDir(appDirName)
			if err != nil {
				return fmt.Errorf("resolving app dir: %w", err)
			}

			conf, err := config.ReadOrCreate(home)
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}

			dbPath := c.String(dbFilePathFlag.Name)
			if dbPath == "" {
				dbPath = path.Join(home, conf.DBFileName)
			}

			if err := data.Init(dbPath); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}

			db, err := data.GetDB(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Home:     home,
				Conf:     conf,
				DB:       db,
				Taxonomy: risk.DefaultTaxonomy(),
				Provider: makeProvider(c.Context, home, conf),
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.DB != nil {
				cfg.DB.Close()
			}
			return nil
		},
	}
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}

func makeProvider(ctx context.Context, home string, conf *config.Config) risk.StressProvider {
	if conf.StressProviderURL == "" {
		return nil
	}

	key, err := getProviderKey(home)
	if err != nil {
		slog.Debug("no provider api key stored", "error", err)
	}

	ttl := time.Duration(conf.CacheTTLMinutes) * time.Minute
	return stress.New(ctx, conf.StressProviderURL, key, ttl)
}
